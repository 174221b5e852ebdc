package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)

	cache, err := NewRedisCache(RedisCacheConfig{
		Address:      "redis://" + s.Addr(),
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return cache, s
}

func TestNewRedisCache(t *testing.T) {
	t.Run("invalid URL", func(t *testing.T) {
		cache, err := NewRedisCache(RedisCacheConfig{
			Address: "invalid://url:with:malformed:format",
		})

		assert.Error(t, err)
		assert.Nil(t, cache)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})

	t.Run("unreachable server", func(t *testing.T) {
		cache, err := NewRedisCache(RedisCacheConfig{
			Address:    "redis://nonexistent-redis-server:6379/0",
			MaxRetries: 1,
		})

		assert.Error(t, err)
		assert.Nil(t, cache)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})

	t.Run("successful connection", func(t *testing.T) {
		cache, _ := newTestRedisCache(t)

		stats := cache.Stats()
		assert.Equal(t, tracker.CacheTypeRedis, stats.Type)
	})

	t.Run("connection with password", func(t *testing.T) {
		s := miniredis.RunT(t)
		s.RequireAuth("secret")

		cache, err := NewRedisCache(RedisCacheConfig{
			Address:  "redis://" + s.Addr(),
			Password: "secret",
		})

		require.NoError(t, err)
		defer func() { _ = cache.Close() }()
	})
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	value := []byte(`{"display_name":"A B"}`)
	err := cache.Set(ctx, "users:u1", value, time.Hour)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "users:u1")
	assert.NoError(t, err)
	assert.Equal(t, value, retrieved)
}

func TestRedisCache_Get_KeyNotFound(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	retrieved, err := cache.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, tracker.ErrCacheKeyNotFound)
	assert.Nil(t, retrieved)
}

func TestRedisCache_TTLExpiration(t *testing.T) {
	cache, s := newTestRedisCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "expiring", []byte("v"), time.Minute)
	require.NoError(t, err)

	s.FastForward(2 * time.Minute)

	_, err = cache.Get(ctx, "expiring")
	assert.ErrorIs(t, err, tracker.ErrCacheKeyNotFound)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, cache.Delete(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, tracker.ErrCacheKeyNotFound)
}

func TestRedisCache_Exists(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	assert.False(t, cache.Exists(ctx, "absent"))

	require.NoError(t, cache.Set(ctx, "present", []byte("v"), 0))
	assert.True(t, cache.Exists(ctx, "present"))
}

func TestRedisCache_Stats(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	assert.Equal(t, tracker.CacheTypeRedis, stats.Type)
	assert.Equal(t, int64(1), stats.Keys)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}
