package store

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MacMbizo/disciplineApp-sub001/internal/cache"
	"github.com/MacMbizo/disciplineApp-sub001/internal/testutil"
	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

type StoreTestSuite struct {
	suite.Suite
	ctx context.Context

	store    *Store
	memCache *cache.MemoryCache

	backend     map[string]map[string]any
	fetchCalls  int64
	writeCalls  int64
	removeCalls int64
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = make(map[string]map[string]any)
	s.fetchCalls, s.writeCalls, s.removeCalls = 0, 0, 0

	memCache, err := cache.NewMemoryCache(cache.MemoryCacheConfig{})
	s.Require().NoError(err)
	s.memCache = memCache

	s.store = s.newFakeStore(memCache)
}

func (s *StoreTestSuite) TearDownTest() {
	if s.memCache != nil {
		_ = s.memCache.Close()
	}
}

// newFakeStore wires backend hooks over an in-memory document map
func (s *StoreTestSuite) newFakeStore(c tracker.Cache) *Store {
	st := New(nil, c, testutil.NopLogger{}, testutil.NopMetrics{})

	st.fetch = func(ctx context.Context, col tracker.Collection, id string) (map[string]any, error) {
		atomic.AddInt64(&s.fetchCalls, 1)
		data, ok := s.backend[cacheKey(col, id)]
		if !ok {
			return nil, status.Error(codes.NotFound, "missing document")
		}
		return data, nil
	}
	st.write = func(ctx context.Context, col tracker.Collection, id string, data map[string]any) error {
		atomic.AddInt64(&s.writeCalls, 1)
		s.backend[cacheKey(col, id)] = data
		return nil
	}
	st.remove = func(ctx context.Context, col tracker.Collection, id string) error {
		atomic.AddInt64(&s.removeCalls, 1)
		delete(s.backend, cacheKey(col, id))
		return nil
	}

	return st
}

func (s *StoreTestSuite) TestGetDocument() {
	s.backend["users:u1"] = map[string]any{"display_name": "A B"}

	data, err := s.store.GetDocument(s.ctx, tracker.CollectionUsers, "u1")

	s.Require().NoError(err)
	s.Equal("A B", data["display_name"])
}

func (s *StoreTestSuite) TestGetDocument_ReadThroughCache() {
	s.backend["users:u1"] = map[string]any{"display_name": "A B"}

	first, err := s.store.GetDocument(s.ctx, tracker.CollectionUsers, "u1")
	s.Require().NoError(err)

	second, err := s.store.GetDocument(s.ctx, tracker.CollectionUsers, "u1")
	s.Require().NoError(err)

	s.Equal(first, second)
	// The second read is served from cache
	s.Equal(int64(1), atomic.LoadInt64(&s.fetchCalls))
}

func (s *StoreTestSuite) TestGetDocument_NotFound() {
	_, err := s.store.GetDocument(s.ctx, tracker.CollectionStudents, "missing")

	s.ErrorIs(err, tracker.ErrDocumentNotFound)
}

func (s *StoreTestSuite) TestGetDocument_ErrorMapping() {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.PermissionDenied, tracker.ErrPermissionDenied},
		{codes.ResourceExhausted, tracker.ErrResourceExhausted},
		{codes.Unauthenticated, tracker.ErrUnauthenticated},
	}

	for _, tt := range tests {
		st := s.newFakeStore(nil)
		rpcErr := status.Error(tt.code, "backend says no")
		st.fetch = func(ctx context.Context, col tracker.Collection, id string) (map[string]any, error) {
			return nil, rpcErr
		}

		_, err := st.GetDocument(s.ctx, tracker.CollectionIncidents, "i1")
		s.ErrorIs(err, tt.want)
	}
}

func (s *StoreTestSuite) TestSetDocument_InvalidatesCache() {
	s.backend["users:u1"] = map[string]any{"display_name": "A B"}

	_, err := s.store.GetDocument(s.ctx, tracker.CollectionUsers, "u1")
	s.Require().NoError(err)

	err = s.store.SetDocument(s.ctx, tracker.CollectionUsers, "u1", map[string]any{"display_name": "C D"})
	s.Require().NoError(err)

	data, err := s.store.GetDocument(s.ctx, tracker.CollectionUsers, "u1")
	s.Require().NoError(err)
	s.Equal("C D", data["display_name"])
	s.Equal(int64(2), atomic.LoadInt64(&s.fetchCalls))
}

func (s *StoreTestSuite) TestDeleteDocument() {
	s.backend["incidents:i1"] = map[string]any{"severity": "low"}

	err := s.store.DeleteDocument(s.ctx, tracker.CollectionIncidents, "i1")
	s.Require().NoError(err)

	_, err = s.store.GetDocument(s.ctx, tracker.CollectionIncidents, "i1")
	s.ErrorIs(err, tracker.ErrDocumentNotFound)
}

func (s *StoreTestSuite) TestWithoutCache_FullyUsable() {
	st := s.newFakeStore(nil)
	s.backend["users:u1"] = map[string]any{"display_name": "A B"}

	for i := 0; i < 3; i++ {
		data, err := st.GetDocument(s.ctx, tracker.CollectionUsers, "u1")
		s.Require().NoError(err)
		s.Equal("A B", data["display_name"])
	}

	// Without a cache every read hits the backend
	s.Equal(int64(3), atomic.LoadInt64(&s.fetchCalls))

	s.NoError(st.SetDocument(s.ctx, tracker.CollectionUsers, "u2", map[string]any{"display_name": "C D"}))
	s.NoError(st.DeleteDocument(s.ctx, tracker.CollectionUsers, "u2"))
}

func (s *StoreTestSuite) TestFailingCache_ReadsStillWork() {
	st := s.newFakeStore(testutil.FailingCache{})
	s.backend["schools:s1"] = map[string]any{"name": "Northside High"}

	data, err := st.GetDocument(s.ctx, tracker.CollectionSchools, "s1")

	s.Require().NoError(err)
	s.Equal("Northside High", data["name"])

	// Writes survive a broken cache too
	s.NoError(st.SetDocument(s.ctx, tracker.CollectionSchools, "s1", map[string]any{"name": "Southside High"}))
}

func (s *StoreTestSuite) TestHealth() {
	s.ErrorIs(s.store.Health(s.ctx), tracker.ErrNotInitialized)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
