package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveEntries(d *MemoryDenylist) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	d := NewMemoryDenylist()
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, d.Revoke(ctx, "b", now.Add(time.Hour)))
	require.NoError(t, d.Revoke(ctx, "stale", now.Add(-time.Second)))

	revoked, err := d.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, _ = d.IsRevoked(ctx, "stale")
	assert.False(t, revoked)
	assert.Equal(t, 2, liveEntries(d))

	now = now.Add(2 * time.Minute)
	revoked, _ = d.IsRevoked(ctx, "a")
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "c", now.Add(time.Hour)))
	assert.Equal(t, 2, liveEntries(d))
	revoked, _ = d.IsRevoked(ctx, "b")
	assert.True(t, revoked)
	revoked, _ = d.IsRevoked(ctx, "c")
	assert.True(t, revoked)
}

func TestRedisDenylist(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	d := NewRedisDenylist(client)

	require.NoError(t, d.Revoke(ctx, "tok", time.Now().Add(10*time.Minute)))
	revoked, err := d.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL(denylistPrefix + "tok")
	assert.True(t, ttl > 9*time.Minute && ttl <= 10*time.Minute, "ttl %v", ttl)

	mr.FastForward(11 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = d.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)
}
