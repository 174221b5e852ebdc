package cache

import (
	"context"
	"sync"
	"time"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// MemoryCache implements the tracker.Cache interface with in-process storage.
// It is the fallback when no Redis backend is configured or reachable.
type MemoryCache struct {
	mu       sync.RWMutex
	data     map[string]memoryEntry
	maxKeys  int
	stats    tracker.CacheStats
	interval time.Duration
	stopOnce sync.Once
	stop     chan struct{}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCacheConfig represents configuration for the in-memory cache
type MemoryCacheConfig struct {
	MaxKeys         int           `yaml:"max_keys" default:"1000"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" default:"10m"`
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup
// goroutine
func NewMemoryCache(config MemoryCacheConfig) (*MemoryCache, error) {
	if config.MaxKeys <= 0 {
		config.MaxKeys = 1000
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 10 * time.Minute
	}

	c := &MemoryCache{
		data:     make(map[string]memoryEntry),
		maxKeys:  config.MaxKeys,
		interval: config.CleanupInterval,
		stop:     make(chan struct{}),
		stats: tracker.CacheStats{
			Type:        tracker.CacheTypeMemory,
			LastUpdated: time.Now(),
		},
	}

	go c.runCleanup()

	return c, nil
}

// Get retrieves a value by key. Expired entries count as misses and are left
// for the janitor.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.data[key]
	if !exists || entry.expired(time.Now()) {
		c.stats.Misses++
		return nil, tracker.ErrCacheKeyNotFound
	}

	c.stats.Hits++
	return entry.value, nil
}

// Set stores a value with TTL. TTL of 0 means no expiration.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict an arbitrary key when full and the key is new
	if len(c.data) >= c.maxKeys {
		if _, exists := c.data[key]; !exists {
			for k := range c.data {
				delete(c.data, k)
				break
			}
		}
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.data[key] = memoryEntry{value: value, expiresAt: expiresAt}
	c.stats.LastUpdated = time.Now()

	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; exists {
		delete(c.data, key)
		c.stats.LastUpdated = time.Now()
	}

	return nil
}

// Exists checks if a live key exists
func (c *MemoryCache) Exists(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[key]
	return exists && !entry.expired(time.Now())
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() tracker.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Keys = int64(len(c.data))
	return stats
}

func (c *MemoryCache) runCleanup() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) cleanup() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.data {
		if entry.expired(now) {
			delete(c.data, key)
		}
	}
}
