package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:denylist:"

// Denylist records revoked token ids until the token would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist stores revoked ids as keys whose TTL is the remaining token lifetime.
type RedisDenylist struct {
	cache *redis.Client
	now   func() time.Time
}

// NewRedisDenylist builds a Redis-backed denylist.
func NewRedisDenylist(cache *redis.Client) *RedisDenylist {
	return &RedisDenylist{cache: cache, now: time.Now}
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return d.cache.Set(ctx, denylistPrefix+tokenID, "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := d.cache.Exists(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type denyEntry struct {
	tokenID   string
	expiresAt time.Time
}

// MemoryDenylist keeps revoked ids in an append-only arena with an index from
// token id to arena slot. Expired entries are compacted away on Revoke.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries []denyEntry
	index   map[string]int
	now     func() time.Time
}

// NewMemoryDenylist builds an in-process denylist.
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{index: make(map[string]int), now: time.Now}
}

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	now := d.now()
	if tokenID == "" || !expiresAt.After(now) {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.compact(now)
	if i, ok := d.index[tokenID]; ok {
		d.entries[i].expiresAt = expiresAt
		return nil
	}
	d.index[tokenID] = len(d.entries)
	d.entries = append(d.entries, denyEntry{tokenID: tokenID, expiresAt: expiresAt})
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, ok := d.index[tokenID]
	if !ok {
		return false, nil
	}
	return d.entries[i].expiresAt.After(d.now()), nil
}

func (d *MemoryDenylist) compact(now time.Time) {
	kept := d.entries[:0]
	for _, e := range d.entries {
		if e.expiresAt.After(now) {
			d.index[e.tokenID] = len(kept)
			kept = append(kept, e)
		} else {
			delete(d.index, e.tokenID)
		}
	}
	d.entries = kept
}
