package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/CRM/internal/config"
	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/JonMunkholm/CRM/internal/logging"
	"github.com/JonMunkholm/CRM/internal/metrics"
	"github.com/JonMunkholm/CRM/internal/source"
	"github.com/JonMunkholm/CRM/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Source.Kind,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	ctx := context.Background()

	src, closeSource, err := source.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open customer source", "kind", cfg.Source.Kind, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	store := core.NewMemoryStore()
	store.SetLogger(logger)

	var m *metrics.Metrics
	var observer core.Observer = core.NopObserver{}
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
		m.TrackCustomers(cfg.Metrics.Namespace, func() int { return len(store.Customers()) })
		observer = m
	}

	service := core.NewService(store, src, core.ServiceOptions{
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportMaxWait:        cfg.Import.MaxWaitTime,
		HistorySize:          cfg.Import.HistorySize,
		Observer:             observer,
	})

	// The dashboard shows "Loading..." until this completes.
	loadCtx, cancelLoad := context.WithCancel(ctx)
	service.LoadAsync(loadCtx)

	server := web.NewServer(service, cfg, m)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelLoad()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active imports to complete (with timeout)
		if status := service.ImportStatus(); status.Active > 0 {
			slog.Info("waiting for imports to complete", "active", status.Active)
			if err := service.WaitForImports(shutdownCtx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			} else {
				slog.Info("all imports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		closeSource()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
