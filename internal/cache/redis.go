package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// RedisCache implements the tracker.Cache interface using Redis, giving the
// document cache durability across process restarts.
type RedisCache struct {
	client *redis.Client
	stats  tracker.CacheStats
}

// RedisCacheConfig represents Redis cache configuration
type RedisCacheConfig struct {
	Address      string `yaml:"address" default:"localhost:6379"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db" default:"0"`
	MaxRetries   int    `yaml:"max_retries" default:"3"`
	PoolSize     int    `yaml:"pool_size" default:"10"`
	MinIdleConns int    `yaml:"min_idle_conns" default:"5"`
}

// NewRedisCache creates a new Redis cache instance and verifies the
// connection before returning it
func NewRedisCache(config RedisCacheConfig) (*RedisCache, error) {
	opt, err := redis.ParseURL(config.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if config.Password != "" {
		opt.Password = config.Password
	}
	opt.DB = config.DB
	opt.MaxRetries = config.MaxRetries
	opt.PoolSize = config.PoolSize
	opt.MinIdleConns = config.MinIdleConns

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		stats: tracker.CacheStats{
			Type:        tracker.CacheTypeRedis,
			LastUpdated: time.Now(),
		},
	}, nil
}

// Get retrieves a value by key
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.stats.Misses++
			return nil, tracker.ErrCacheKeyNotFound
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	c.stats.Hits++
	return value, nil
}

// Set stores a value with TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	c.stats.LastUpdated = time.Now()
	return nil
}

// Delete removes a key from the cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	c.stats.LastUpdated = time.Now()
	return nil
}

// Exists checks if a key exists
func (c *RedisCache) Exists(ctx context.Context, key string) bool {
	count, err := c.client.Exists(ctx, key).Result()
	return err == nil && count > 0
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Stats returns cache statistics
func (c *RedisCache) Stats() tracker.CacheStats {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := c.stats
	if keys, err := c.client.DBSize(ctx).Result(); err == nil {
		stats.Keys = keys
	}

	return stats
}
