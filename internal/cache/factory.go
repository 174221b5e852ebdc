package cache

import (
	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// NewCache creates a cache based on the provided configuration.
// Redis failures fall back to the in-memory cache so that bootstrap can
// always attach some document cache.
func NewCache(config tracker.CacheConfig, logger tracker.Logger) (tracker.Cache, error) {
	switch config.Type {
	case tracker.CacheTypeRedis:
		return createRedisCache(config, logger)

	case tracker.CacheTypeMemory:
		return createMemoryCache(config, logger)

	default:
		logger.Warn("unknown cache type, defaulting to memory", "type", config.Type)
		return createMemoryCache(config, logger)
	}
}

func createRedisCache(config tracker.CacheConfig, logger tracker.Logger) (tracker.Cache, error) {
	if config.RedisURL == "" {
		logger.Info("Redis URL not configured, falling back to memory cache")
		return createMemoryCache(config, logger)
	}

	logger.Info("attempting to connect to Redis", "url", config.RedisURL, "db", config.RedisDB)

	redisCache, err := NewRedisCache(RedisCacheConfig{
		Address:      config.RedisURL,
		Password:     config.RedisPassword,
		DB:           config.RedisDB,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	if err != nil {
		logger.Warn("failed to connect to Redis, falling back to memory cache", "error", err)
		return createMemoryCache(config, logger)
	}

	logger.Info("Redis cache initialized")
	return redisCache, nil
}

func createMemoryCache(config tracker.CacheConfig, logger tracker.Logger) (tracker.Cache, error) {
	logger.Info("initializing memory cache",
		"max_keys", config.MaxKeys,
		"cleanup_interval", config.CleanupInterval)

	return NewMemoryCache(MemoryCacheConfig{
		MaxKeys:         config.MaxKeys,
		CleanupInterval: config.CleanupInterval,
	})
}
