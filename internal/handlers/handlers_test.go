package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacMbizo/disciplineApp-sub001/internal/testutil"
	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// stubBootstrap is a canned BootstrapStatus for handler tests
type stubBootstrap struct {
	initialized bool
	apps        int
	cacheReady  bool
	handles     map[string]error
}

func (s *stubBootstrap) Initialized() bool { return s.initialized }
func (s *stubBootstrap) AppCount() int     { return s.apps }
func (s *stubBootstrap) CacheReady() bool  { return s.cacheReady }
func (s *stubBootstrap) Health(ctx context.Context) map[string]error {
	return s.handles
}

// stubStats is a canned StatsSource for handler tests
type stubStats struct {
	stats map[string]any
}

func (s *stubStats) GetStats() map[string]any { return s.stats }

func TestHealthStatus_String(t *testing.T) {
	tests := []struct {
		name     string
		status   HealthStatus
		expected string
	}{
		{
			name:     "Healthy status",
			status:   HealthStatusHealthy,
			expected: "healthy",
		},
		{
			name:     "Unhealthy status",
			status:   HealthStatusUnhealthy,
			expected: "unhealthy",
		},
		{
			name:     "Degraded status",
			status:   HealthStatusDegraded,
			expected: "degraded",
		},
		{
			name:     "Unknown status",
			status:   HealthStatus(999),
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestHealthStatus_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(HealthStatusDegraded)
	require.NoError(t, err)
	assert.Equal(t, `"degraded"`, string(data))
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		bootstrap      *stubBootstrap
		expectedCode   int
		expectedStatus string
	}{
		{
			name: "All handles healthy",
			bootstrap: &stubBootstrap{
				initialized: true,
				apps:        1,
				cacheReady:  true,
				handles: map[string]error{
					"auth":  nil,
					"store": nil,
				},
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "healthy",
		},
		{
			name: "One handle unhealthy",
			bootstrap: &stubBootstrap{
				initialized: true,
				apps:        1,
				handles: map[string]error{
					"auth":  nil,
					"store": errors.New("database unavailable"),
				},
			},
			expectedCode:   http.StatusOK,
			expectedStatus: "degraded",
		},
		{
			name: "All handles unhealthy",
			bootstrap: &stubBootstrap{
				initialized: true,
				apps:        1,
				handles: map[string]error{
					"auth":  errors.New("auth unavailable"),
					"store": errors.New("database unavailable"),
				},
			},
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "unhealthy",
		},
		{
			name: "Not initialized",
			bootstrap: &stubBootstrap{
				initialized: false,
				handles: map[string]error{
					"auth": nil,
				},
			},
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(tt.bootstrap, nil, testutil.NopLogger{}, nil)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()

			h.HealthHandler(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedStatus, body.Status.String())
			assert.Equal(t, tt.bootstrap.initialized, body.Initialized)
			assert.Equal(t, tt.bootstrap.apps, body.Apps)
			assert.Equal(t, tt.bootstrap.cacheReady, body.DocumentCache)
			assert.Len(t, body.Handles, len(tt.bootstrap.handles))
		})
	}
}

func TestHealthHandler_ReportsHandleErrors(t *testing.T) {
	bootstrap := &stubBootstrap{
		initialized: true,
		apps:        1,
		handles: map[string]error{
			"auth":  nil,
			"store": errors.New("database unavailable"),
		},
	}
	h := NewHandlers(bootstrap, nil, testutil.NopLogger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthHandler(rec, req)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Handles["auth"])
	assert.Equal(t, "database unavailable", body.Handles["store"])
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandlers(&stubBootstrap{}, nil, testutil.NopLogger{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	h.HealthHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatsHandler(t *testing.T) {
	cache := &testutil.MockCache{}
	cache.On("Stats").Return(tracker.CacheStats{Hits: 5, Misses: 1, Keys: 2})

	stats := &stubStats{stats: map[string]any{"init_attempts_success": int64(1)}}

	h := NewHandlers(&stubBootstrap{initialized: true}, cache, testutil.NopLogger{}, stats)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	h.StatsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "cache")
	assert.Contains(t, body, "metrics")

	cache.AssertExpectations(t)
}

func TestStatsHandler_WithoutCacheOrMetrics(t *testing.T) {
	h := NewHandlers(&stubBootstrap{}, nil, testutil.NopLogger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	h.StatsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "cache")
	assert.NotContains(t, body, "metrics")
}

func TestStatsHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandlers(&stubBootstrap{}, nil, testutil.NopLogger{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/stats", nil)
	rec := httptest.NewRecorder()

	h.StatsHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
