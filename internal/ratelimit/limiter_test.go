package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exhaust(t *testing.T, l Limiter, key string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ok, err := l.Allow(context.Background(), key)
		require.NoError(t, err)
		require.True(t, ok, "attempt %d should be allowed", i+1)
	}
}

func TestMemoryLimiterWindow(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(5, 15*time.Minute)
	l.now = func() time.Time { return clock }
	ctx := context.Background()

	exhaust(t, l, "10.0.0.1", 5)

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "6th attempt must be throttled")

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "other sources are counted separately")

	clock = clock.Add(15 * time.Minute)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "a new window starts after expiry")
}

func TestMemoryLimiterSweep(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return clock }

	for i := 0; i < sweepThreshold; i++ {
		_, _ = l.Allow(context.Background(), time.Duration(i).String())
	}
	clock = clock.Add(2 * time.Minute)
	_, _ = l.Allow(context.Background(), "fresh")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.windows, 1)
}

func TestRedisLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	l := NewRedisLimiter(cache, 5, 15*time.Minute)
	ctx := context.Background()

	exhaust(t, l, "10.0.0.1", 5)
	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 15*time.Minute, mr.TTL(redisKeyPrefix+"10.0.0.1"))

	mr.FastForward(15 * time.Minute)
	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiterSurfacesErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer cache.Close()
	mr.Close()

	_, err = NewRedisLimiter(cache, 5, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestRedisLimiterWindowIsFixed(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	l := NewRedisLimiter(cache, 5, 15*time.Minute)
	ctx := context.Background()
	rk := redisKeyPrefix + "10.0.0.9"

	exhaust(t, l, "10.0.0.9", 1)
	assert.Equal(t, 15*time.Minute, mr.TTL(rk))

	mr.FastForward(5 * time.Minute)
	exhaust(t, l, "10.0.0.9", 1)
	assert.Equal(t, 10*time.Minute, mr.TTL(rk), "later attempts must not extend the window")

	count, err := cache.Get(ctx, rk).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
