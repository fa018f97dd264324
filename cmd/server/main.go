package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/itunescache/itunescache/internal/config"
	"github.com/itunescache/itunescache/internal/constants"
	"github.com/itunescache/itunescache/internal/domain"
	httpapp "github.com/itunescache/itunescache/internal/http"
	"github.com/itunescache/itunescache/internal/httpclient"
	"github.com/itunescache/itunescache/internal/itunes"
	"github.com/itunescache/itunescache/internal/logger"
	"github.com/itunescache/itunescache/internal/metrics"
	"github.com/itunescache/itunescache/internal/search"
	"github.com/itunescache/itunescache/internal/store"
	"github.com/itunescache/itunescache/internal/telemetry"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	shutdownTracing, err := telemetry.Init(context.Background(), constants.DefaultTracingService, cfg.OTelEndpoint)
	if err != nil {
		appLogger.Warn("Tracing disabled", "error", err)
	}

	metrics.Register(prometheus.DefaultRegisterer)

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck // closed on exit

	policy, err := domain.ParseCachePolicy(cfg.CachePolicy)
	if err != nil {
		appLogger.Error("Invalid cache policy", "error", err)
		os.Exit(1)
	}

	// Initialize Services
	client := itunes.NewClient(cfg.ITunesURL, httpclient.New(constants.UpstreamTimeout))
	searchService := search.NewService(db, client, appLogger.WithComponent("search"), search.Config{
		Policy:         policy,
		DefaultCountry: cfg.DefaultCountry,
	})

	// Routes
	h := httpapp.NewHandler(searchService, db, appLogger)
	router := httpapp.NewRouter(h, httpapp.RouterConfig{
		FrontendURL: cfg.FrontendURL,
		ServiceName: constants.DefaultTracingService,
	})

	// Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "policy", string(searchService.Policy()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		appLogger.Warn("Tracing shutdown failed", "error", err)
	}

	appLogger.Info("Server exiting")
}
