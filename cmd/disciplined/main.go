package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MacMbizo/disciplineApp-sub001/internal/bootstrap"
	"github.com/MacMbizo/disciplineApp-sub001/internal/cache"
	"github.com/MacMbizo/disciplineApp-sub001/internal/config"
	"github.com/MacMbizo/disciplineApp-sub001/internal/handlers"
	"github.com/MacMbizo/disciplineApp-sub001/internal/logging"
	"github.com/MacMbizo/disciplineApp-sub001/internal/metrics"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to configuration file")
		envPrefix  = flag.String("env-prefix", "DISCIPLINE", "Environment variable prefix")
	)
	flag.Parse()

	// Load main configuration
	mainConfig, err := config.NewLoader(*configFile, *envPrefix).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration loading failed: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewLogger(mainConfig.Logging)
	defer logger.Info("shutting down")

	logger.Info("starting discipline tracker backend", "version", "0.1.0")

	// Initialize metrics
	metricsInstance := metrics.NewMetrics()

	// Initialize document cache (Redis with memory fallback)
	cacheInstance, err := cache.NewCache(mainConfig.Cache, logger)
	if err != nil {
		logger.Error("failed to create cache", "error", err)
		os.Exit(1)
	}
	defer cacheInstance.Close()

	// Construct and run the session bootstrap. Anything other than the
	// best-effort cache attach failing here is fatal.
	sessionBootstrap := bootstrap.New(cacheInstance, logger, metricsInstance)

	firebaseLoader := config.NewEnvConfigLoader(*envPrefix, nil)
	if err := sessionBootstrap.LoadConfig(firebaseLoader); err != nil {
		logger.Error("failed to load firebase config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sessionBootstrap.Initialize(ctx); err != nil {
		logger.Error("session bootstrap failed", "error", err)
		os.Exit(1)
	}

	// Start diagnostics server
	server := handlers.NewServer(mainConfig, sessionBootstrap, cacheInstance, logger, metricsInstance)

	serverErrors := make(chan error, 1)
	if mainConfig.Server.Enabled {
		go func() {
			serverErrors <- server.Start()
		}()
	}

	// Wait for interrupt signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", "error", err)
	case sig := <-interrupt:
		logger.Info("received interrupt signal", "signal", sig)
	}

	// Graceful shutdown
	logger.Info("starting graceful shutdown")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), mainConfig.Server.ShutdownTimeout)
	defer shutdownCancel()

	shutdownComplete := make(chan error, 1)

	go func() {
		if err := server.Stop(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
			shutdownComplete <- err
			return
		}

		if err := sessionBootstrap.Close(); err != nil {
			logger.Error("bootstrap shutdown error", "error", err)
			shutdownComplete <- err
			return
		}

		shutdownComplete <- nil
	}()

	select {
	case err := <-shutdownComplete:
		if err != nil {
			logger.Error("shutdown failed", "error", err)
		} else {
			logger.Info("shutdown complete")
		}
	case <-shutdownCtx.Done():
		logger.Error("shutdown timeout exceeded, forcing exit")
	}
}
