package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// Metrics implements the tracker.Metrics interface with in-memory counters
type Metrics struct {
	// Counters
	initAttempts int64
	initReused   int64
	initFailures int64
	cacheHits    int64
	cacheMisses  int64
	storeErrors  int64

	// Gauges
	cachedKeys int64

	mu sync.RWMutex
	// Last observed durations; enough for the diagnostics snapshot
	initDuration  time.Duration
	fetchDuration time.Duration
	handleStatus  map[string]bool
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		handleStatus: make(map[string]bool),
	}
}

// IncInitAttempts increments the initialization attempts counter
func (m *Metrics) IncInitAttempts(result string) {
	atomic.AddInt64(&m.initAttempts, 1)
	switch result {
	case "reused":
		atomic.AddInt64(&m.initReused, 1)
	case "failure":
		atomic.AddInt64(&m.initFailures, 1)
	}
}

// IncCacheHits increments the document cache hits counter
func (m *Metrics) IncCacheHits(collection string) {
	atomic.AddInt64(&m.cacheHits, 1)
}

// IncCacheMisses increments the document cache misses counter
func (m *Metrics) IncCacheMisses(collection string) {
	atomic.AddInt64(&m.cacheMisses, 1)
}

// IncStoreErrors increments the store errors counter
func (m *Metrics) IncStoreErrors(collection string, code string) {
	atomic.AddInt64(&m.storeErrors, 1)
}

// ObserveInitDuration records the bootstrap initialization duration
func (m *Metrics) ObserveInitDuration(duration time.Duration) {
	m.mu.Lock()
	m.initDuration = duration
	m.mu.Unlock()
}

// ObserveDocumentFetchDuration records a document fetch duration
func (m *Metrics) ObserveDocumentFetchDuration(collection string, duration time.Duration) {
	m.mu.Lock()
	m.fetchDuration = duration
	m.mu.Unlock()
}

// SetHandleStatus records the health of a remote handle
func (m *Metrics) SetHandleStatus(handle string, healthy bool) {
	m.mu.Lock()
	m.handleStatus[handle] = healthy
	m.mu.Unlock()
}

// SetCachedKeys sets the cached keys gauge
func (m *Metrics) SetCachedKeys(count int) {
	atomic.StoreInt64(&m.cachedKeys, int64(count))
}

// GetStats returns a snapshot of the current metrics for the diagnostics
// endpoint
func (m *Metrics) GetStats() map[string]any {
	m.mu.RLock()
	handles := make(map[string]bool, len(m.handleStatus))
	for k, v := range m.handleStatus {
		handles[k] = v
	}
	initDuration := m.initDuration
	fetchDuration := m.fetchDuration
	m.mu.RUnlock()

	return map[string]any{
		"init_attempts":     atomic.LoadInt64(&m.initAttempts),
		"init_reused":       atomic.LoadInt64(&m.initReused),
		"init_failures":     atomic.LoadInt64(&m.initFailures),
		"cache_hits":        atomic.LoadInt64(&m.cacheHits),
		"cache_misses":      atomic.LoadInt64(&m.cacheMisses),
		"store_errors":      atomic.LoadInt64(&m.storeErrors),
		"cached_keys":       atomic.LoadInt64(&m.cachedKeys),
		"init_duration_ns":  initDuration.Nanoseconds(),
		"fetch_duration_ns": fetchDuration.Nanoseconds(),
		"handles":           handles,
	}
}

var _ tracker.Metrics = (*Metrics)(nil)
