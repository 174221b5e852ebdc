// Package store wraps the Firestore handle with collection-scoped document
// access. Reads go through the best-effort local cache when one was attached
// during bootstrap; without a cache every operation goes straight to the
// backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
	"github.com/MacMbizo/disciplineApp-sub001/pkg/keylock"
)

// defaultDocumentTTL bounds how stale a cached document may get
const defaultDocumentTTL = time.Hour

// Store provides collection-scoped CRUD over the document database
type Store struct {
	client  *firestore.Client
	cache   tracker.Cache
	locks   *keylock.Manager
	logger  tracker.Logger
	metrics tracker.Metrics
	ttl     time.Duration

	// Backend operations, replaceable in tests
	fetch  func(ctx context.Context, col tracker.Collection, id string) (map[string]any, error)
	write  func(ctx context.Context, col tracker.Collection, id string, data map[string]any) error
	remove func(ctx context.Context, col tracker.Collection, id string) error
}

// New creates a store over the given Firestore client. cache may be nil when
// the bootstrap could not attach the document cache; the store then operates
// online-only.
func New(client *firestore.Client, cache tracker.Cache, logger tracker.Logger, metrics tracker.Metrics) *Store {
	s := &Store{
		client:  client,
		cache:   cache,
		locks:   keylock.New(),
		logger:  logger.With("component", "store"),
		metrics: metrics,
		ttl:     defaultDocumentTTL,
	}

	s.fetch = s.fetchDocument
	s.write = s.writeDocument
	s.remove = s.removeDocument

	return s
}

// Collection returns the Firestore collection reference for a known
// collection. Collaborator services address storage through this accessor.
func (s *Store) Collection(col tracker.Collection) *firestore.CollectionRef {
	return s.client.Collection(col.String())
}

// GetDocument reads a document, serving it from the local cache when
// possible. Concurrent reads of the same document share one backend fetch.
func (s *Store) GetDocument(ctx context.Context, col tracker.Collection, id string) (map[string]any, error) {
	key := cacheKey(col, id)

	if s.cache != nil {
		s.locks.Lock(key)
		defer s.locks.Unlock(key)

		if data := s.cachedDocument(ctx, key, col); data != nil {
			return data, nil
		}
	}

	start := time.Now()
	data, err := s.fetch(ctx, col, id)
	s.metrics.ObserveDocumentFetchDuration(col.String(), time.Since(start))

	if err != nil {
		mapped := tracker.MapFirestoreError(err)
		if code := tracker.FirestoreErrorCode(mapped); code != "" {
			s.metrics.IncStoreErrors(col.String(), code)
		}
		return nil, mapped
	}

	if s.cache != nil {
		s.cacheDocument(ctx, key, data)
	}

	return data, nil
}

// SetDocument writes a document and invalidates its cache entry
func (s *Store) SetDocument(ctx context.Context, col tracker.Collection, id string, data map[string]any) error {
	if err := s.write(ctx, col, id, data); err != nil {
		mapped := tracker.MapFirestoreError(err)
		if code := tracker.FirestoreErrorCode(mapped); code != "" {
			s.metrics.IncStoreErrors(col.String(), code)
		}
		return mapped
	}

	s.invalidate(ctx, col, id)
	return nil
}

// DeleteDocument deletes a document and invalidates its cache entry
func (s *Store) DeleteDocument(ctx context.Context, col tracker.Collection, id string) error {
	if err := s.remove(ctx, col, id); err != nil {
		mapped := tracker.MapFirestoreError(err)
		if code := tracker.FirestoreErrorCode(mapped); code != "" {
			s.metrics.IncStoreErrors(col.String(), code)
		}
		return mapped
	}

	s.invalidate(ctx, col, id)
	return nil
}

// Health reports whether the store holds a usable database handle
func (s *Store) Health(ctx context.Context) error {
	if s.client == nil {
		return tracker.ErrNotInitialized
	}
	return nil
}

// Close closes the underlying Firestore client
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) fetchDocument(ctx context.Context, col tracker.Collection, id string) (map[string]any, error) {
	snap, err := s.client.Collection(col.String()).Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Data(), nil
}

func (s *Store) writeDocument(ctx context.Context, col tracker.Collection, id string, data map[string]any) error {
	_, err := s.client.Collection(col.String()).Doc(id).Set(ctx, data)
	return err
}

func (s *Store) removeDocument(ctx context.Context, col tracker.Collection, id string) error {
	_, err := s.client.Collection(col.String()).Doc(id).Delete(ctx)
	return err
}

// cachedDocument returns the cached document or nil on any miss or decode
// problem. Cache trouble is never surfaced to the caller.
func (s *Store) cachedDocument(ctx context.Context, key string, col tracker.Collection) map[string]any {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, tracker.ErrCacheKeyNotFound) {
			s.logger.Debug("document cache get failed", "key", key, "error", err)
		}
		s.metrics.IncCacheMisses(col.String())
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Debug("document cache decode failed", "key", key, "error", err)
		s.metrics.IncCacheMisses(col.String())
		return nil
	}

	s.metrics.IncCacheHits(col.String())
	return data
}

func (s *Store) cacheDocument(ctx context.Context, key string, data map[string]any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Debug("document cache encode failed", "key", key, "error", err)
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Debug("document cache set failed", "key", key, "error", err)
	}
}

func (s *Store) invalidate(ctx context.Context, col tracker.Collection, id string) {
	if s.cache == nil {
		return
	}

	key := cacheKey(col, id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Debug("document cache invalidate failed", "key", key, "error", err)
	}
}

func cacheKey(col tracker.Collection, id string) string {
	return fmt.Sprintf("%s:%s", col, id)
}
