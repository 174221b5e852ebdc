package tracker

import "time"

// Metrics interface for monitoring the bootstrap and store layers
type Metrics interface {
	// Counter metrics
	IncInitAttempts(result string) // result: "success", "failure", "reused"
	IncCacheHits(collection string)
	IncCacheMisses(collection string)
	IncStoreErrors(collection string, code string)

	// Histogram metrics
	ObserveInitDuration(duration time.Duration)
	ObserveDocumentFetchDuration(collection string, duration time.Duration)

	// Gauge metrics
	SetHandleStatus(handle string, healthy bool)
	SetCachedKeys(count int)
}
