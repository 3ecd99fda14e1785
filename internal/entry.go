// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/edusosyal/hapbilgi/internal/api"
	"github.com/edusosyal/hapbilgi/internal/index"
	"github.com/edusosyal/hapbilgi/internal/kvstore"
	"github.com/edusosyal/hapbilgi/internal/mcpserver"
	"github.com/edusosyal/hapbilgi/internal/remote"
	"github.com/edusosyal/hapbilgi/internal/sse"
	"github.com/edusosyal/hapbilgi/internal/tips"
)

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_path", cfg.Store.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("remote_enabled", cfg.Remote.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, db, kv, err := buildCore(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// SSE broker. Per-record events flow through the store watcher so
	// external writes are covered too; the service only reports resets,
	// which the watcher cannot distinguish from plain deletions.
	broker := sse.NewBroker(2 * time.Second)
	svc.OnChange(func(kind, id string) {
		if kind == "reset" {
			broker.PublishTipEvent(kind, id)
		}
	})

	// Optional backend pass-through.
	var rc *remote.Client
	if cfg.Remote.Enabled() {
		token := cfg.Remote.Token
		rc = remote.NewClient(cfg.Remote.BaseURL, func() (string, error) { return token, nil }, cfg.Remote.Timeout)
	}

	apiRouter := api.NewRouter(svc, db, rc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, http.HandlerFunc(broker.ServeHTTP))

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start the store watcher with SSE fan-out.
	g.Go(func() error {
		if err := index.Watch(gCtx, db, kv, kv.Root(), tips.KeyPrefix, logger, func(kind, id string) {
			broker.PublishTipEvent(kind, id)
		}); err != nil {
			logger.Warn("watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP stdio server against the same local store and
// index the HTTP surface uses. Logs go to stderr so stdout stays a clean
// protocol channel.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svc, db, _, err := buildCore(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	return mcpserver.New(svc, db).ServeStdio()
}

// buildCore wires the store, index, and service shared by the HTTP and
// MCP entry points, running an initial index sync.
func buildCore(cfg *Config, logger *slog.Logger) (*tips.Service, *index.DB, *kvstore.FS, error) {
	if err := os.MkdirAll(cfg.Store.Path, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create store dir: %w", err)
	}

	kv, err := kvstore.NewFS(cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init store: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init index: %w", err)
	}

	if err := index.Sync(db, kv, tips.KeyPrefix, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	return tips.NewService(tips.NewStore(kv, logger), db, logger), db, kv, nil
}
