// Package testutil provides common utilities and helpers for testing
package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// ErrCacheDown is returned by FailingCache for every operation
var ErrCacheDown = errors.New("cache backend unavailable")

// TestProfile creates a basic Profile for testing
func TestProfile() tracker.Profile {
	return tracker.Profile{
		UID:         "test-user-123",
		Email:       "test@example.com",
		DisplayName: "Test User",
	}
}

// TestFirebaseConfig creates a valid FirebaseConfig for testing
func TestFirebaseConfig() *tracker.FirebaseConfig {
	return &tracker.FirebaseConfig{
		APIKey:            "AIzaTestKey",
		AuthDomain:        "discipline-test.firebaseapp.com",
		ProjectID:         "discipline-test",
		StorageBucket:     "discipline-test.appspot.com",
		MessagingSenderID: "1234567890",
		AppID:             "1:1234567890:web:abcdef",
	}
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(msg string, keysAndValues ...any) {}
func (NopLogger) Info(msg string, keysAndValues ...any)  {}
func (NopLogger) Warn(msg string, keysAndValues ...any)  {}
func (NopLogger) Error(msg string, keysAndValues ...any) {}
func (l NopLogger) With(keysAndValues ...any) tracker.Logger {
	return l
}

// NopMetrics discards everything
type NopMetrics struct{}

func (NopMetrics) IncInitAttempts(result string)                                          {}
func (NopMetrics) IncCacheHits(collection string)                                         {}
func (NopMetrics) IncCacheMisses(collection string)                                       {}
func (NopMetrics) IncStoreErrors(collection string, code string)                          {}
func (NopMetrics) ObserveInitDuration(duration time.Duration)                             {}
func (NopMetrics) ObserveDocumentFetchDuration(collection string, duration time.Duration) {}
func (NopMetrics) SetHandleStatus(handle string, healthy bool)                            {}
func (NopMetrics) SetCachedKeys(count int)                                                {}

// MockCache is a mock implementation of tracker.Cache for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCache) Stats() tracker.CacheStats {
	args := m.Called()
	return args.Get(0).(tracker.CacheStats)
}

// FailingCache fails every operation, simulating an unusable persistence
// backend
type FailingCache struct{}

func (FailingCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrCacheDown
}

func (FailingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return ErrCacheDown
}

func (FailingCache) Delete(ctx context.Context, key string) error {
	return ErrCacheDown
}

func (FailingCache) Exists(ctx context.Context, key string) bool {
	return false
}

func (FailingCache) Close() error {
	return nil
}

func (FailingCache) Stats() tracker.CacheStats {
	return tracker.CacheStats{}
}
