package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// BootstrapStatus is the view of the session bootstrap the diagnostics
// endpoints need
type BootstrapStatus interface {
	Initialized() bool
	AppCount() int
	CacheReady() bool
	Health(ctx context.Context) map[string]error
}

// StatsSource exposes a metrics snapshot for the stats endpoint
type StatsSource interface {
	GetStats() map[string]any
}

// HealthStatus represents health check status
type HealthStatus int

const (
	HealthStatusHealthy HealthStatus = iota
	HealthStatusUnhealthy
	HealthStatusDegraded
)

// String returns the string representation of the health status
func (h HealthStatus) String() string {
	switch h {
	case HealthStatusHealthy:
		return "healthy"
	case HealthStatusUnhealthy:
		return "unhealthy"
	case HealthStatusDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler
func (h HealthStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (h *HealthStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "healthy":
		*h = HealthStatusHealthy
	case "unhealthy":
		*h = HealthStatusUnhealthy
	case "degraded":
		*h = HealthStatusDegraded
	default:
		return fmt.Errorf("unknown health status %q", s)
	}
	return nil
}

// Handlers contains the diagnostic HTTP handlers with shared dependencies
type Handlers struct {
	bootstrap BootstrapStatus
	cache     tracker.Cache
	logger    tracker.Logger
	stats     StatsSource
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(bootstrap BootstrapStatus, cache tracker.Cache, logger tracker.Logger, stats StatsSource) *Handlers {
	return &Handlers{
		bootstrap: bootstrap,
		cache:     cache,
		logger:    logger.With("component", "handlers"),
		stats:     stats,
	}
}

// healthResponse is the body of GET /health
type healthResponse struct {
	Status        HealthStatus      `json:"status"`
	Initialized   bool              `json:"initialized"`
	Apps          int               `json:"apps"`
	DocumentCache bool              `json:"document_cache"`
	Handles       map[string]string `json:"handles"`
}

// HealthHandler handles GET /health requests, reporting the initialization
// state of the bootstrap and the health of each remote handle
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	handleErrs := h.bootstrap.Health(r.Context())

	resp := healthResponse{
		Status:        HealthStatusHealthy,
		Initialized:   h.bootstrap.Initialized(),
		Apps:          h.bootstrap.AppCount(),
		DocumentCache: h.bootstrap.CacheReady(),
		Handles:       make(map[string]string, len(handleErrs)),
	}

	unhealthy := 0
	for handle, err := range handleErrs {
		if err != nil {
			resp.Handles[handle] = err.Error()
			unhealthy++
		} else {
			resp.Handles[handle] = "ok"
		}
	}

	statusCode := http.StatusOK
	switch {
	case !resp.Initialized || unhealthy == len(handleErrs):
		resp.Status = HealthStatusUnhealthy
		statusCode = http.StatusServiceUnavailable
	case unhealthy > 0:
		resp.Status = HealthStatusDegraded
	}

	h.writeJSON(w, statusCode, resp)
}

// StatsHandler handles GET /stats requests with cache and metrics snapshots
func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body := map[string]any{}
	if h.cache != nil {
		body["cache"] = h.cache.Stats()
	}
	if h.stats != nil {
		body["metrics"] = h.stats.GetStats()
	}

	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
