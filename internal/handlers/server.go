package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// Server is the diagnostics HTTP server. It only serves operational
// endpoints; no application traffic goes through it.
type Server struct {
	httpServer *http.Server
	config     *tracker.Config
	bootstrap  BootstrapStatus
	cache      tracker.Cache
	logger     tracker.Logger
	stats      StatsSource
}

// NewServer creates a new diagnostics server
func NewServer(config *tracker.Config, bootstrap BootstrapStatus, cache tracker.Cache, logger tracker.Logger, stats StatsSource) *Server {
	return &Server{
		config:    config,
		bootstrap: bootstrap,
		cache:     cache,
		logger:    logger.With("component", "server"),
		stats:     stats,
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	mux := http.NewServeMux()

	h := NewHandlers(s.bootstrap, s.cache, s.logger, s.stats)

	mux.Handle("/health", s.withMiddleware(http.HandlerFunc(h.HealthHandler)))
	mux.Handle("/stats", s.withMiddleware(http.HandlerFunc(h.StatsHandler)))

	addr := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:           addr,
		Handler:        mux,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	s.logger.Info("starting diagnostics server", "address", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("diagnostics server failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping diagnostics server")

	if s.httpServer == nil {
		return nil
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("graceful shutdown failed, forcing close", "error", err)
		if closeErr := s.httpServer.Close(); closeErr != nil {
			return closeErr
		}
		return err
	}

	s.logger.Info("diagnostics server stopped")
	return nil
}

func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	// Applied in reverse order: last applied runs first
	handler = s.withLogging(handler)
	handler = s.withSecurityHeaders(handler)

	return handler
}

func (s *Server) withLogging(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		handler.ServeHTTP(wrapper, r)

		s.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr)
	})
}

func (s *Server) withSecurityHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")

		handler.ServeHTTP(w, r)
	})
}

// responseWrapper captures the status code for logging
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
