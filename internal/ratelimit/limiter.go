// Package ratelimit provides fixed-window attempt counters keyed by an
// arbitrary string, typically the client source address.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
	redisKeyPrefix     = "rl:login:"
	sweepThreshold     = 1024
)

// Limiter decides whether another attempt for key is allowed. Each call
// counts as an attempt.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts attempts with INCR. The window TTL is set in the same
// transaction that creates the counter, so a counter never outlives its window.
type RedisLimiter struct {
	cache  *redis.Client
	max    int
	window time.Duration
}

// NewRedisLimiter builds a Redis-backed limiter.
func NewRedisLimiter(cache *redis.Client, max int, window time.Duration) *RedisLimiter {
	if max <= 0 {
		max = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &RedisLimiter{cache: cache, max: max, window: window}
}

// Allow increments the counter for key and reports whether it is within the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	rk := redisKeyPrefix + key
	var incr *redis.IntCmd
	_, err := l.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, rk, 0, l.window)
		incr = pipe.Incr(ctx, rk)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(l.max), nil
}

type window struct {
	count   int
	started time.Time
}

// MemoryLimiter keeps counters in process. It stands in for Redis when the
// server runs without one and is only correct for a single instance.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter builds an in-process limiter.
func NewMemoryLimiter(max int, win time.Duration) *MemoryLimiter {
	if max <= 0 {
		max = defaultMaxAttempts
	}
	if win <= 0 {
		win = defaultWindow
	}
	return &MemoryLimiter{windows: make(map[string]*window), max: max, window: win, now: time.Now}
}

// Allow increments the counter for key and reports whether it is within the limit.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.windows) >= sweepThreshold {
		l.sweep(now)
	}

	w, ok := l.windows[key]
	if !ok || now.Sub(w.started) >= l.window {
		w = &window{started: now}
		l.windows[key] = w
	}
	w.count++
	return w.count <= l.max, nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.started) >= l.window {
			delete(l.windows, key)
		}
	}
}
