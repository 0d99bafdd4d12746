package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/stagedoor/greenroom/internal/api"
	"github.com/stagedoor/greenroom/internal/api/admin"
	"github.com/stagedoor/greenroom/internal/api/awards"
	"github.com/stagedoor/greenroom/internal/api/members"
	"github.com/stagedoor/greenroom/internal/api/productions"
	"github.com/stagedoor/greenroom/internal/api/products"
	"github.com/stagedoor/greenroom/internal/api/ui"
	"github.com/stagedoor/greenroom/internal/config"
	"github.com/stagedoor/greenroom/internal/database"
	"github.com/stagedoor/greenroom/internal/metrics"
	"github.com/stagedoor/greenroom/internal/seed"
	"github.com/stagedoor/greenroom/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	db, d, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db, d); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	catalog := seed.Builtin()
	if cfg.Catalog != "" {
		overlay, err := seed.LoadOverlay(ctx, cfg.Catalog, seed.S3Options{
			Region:    cfg.CatalogS3Region,
			Endpoint:  cfg.CatalogS3Endpoint,
			AccessKey: cfg.CatalogS3AccessKey,
			SecretKey: cfg.CatalogS3SecretKey,
		})
		if err != nil {
			return fmt.Errorf("load catalog overlay: %w", err)
		}
		catalog = seed.Merge(catalog, overlay)
	}

	m := metrics.New()

	if _, err := seed.Run(ctx, db, d, catalog, m); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	s := store.New(db, d)

	mux := http.NewServeMux()

	// CMS API routes
	productions.RegisterRoutes(mux, s)
	members.RegisterRoutes(mux, s)
	awards.RegisterRoutes(mux, s)
	products.RegisterRoutes(mux, s)

	// Admin API
	admin.RegisterRoutes(mux, s.DB, d, catalog, m)

	// Web UI
	ui.RegisterRoutes(mux)

	// Operational endpoints
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", m.Handler())

	// Catch-all: return 404 in the standard error envelope.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.AuthToken, cfg.AdminToken),
		api.Observe(m),
		api.JSONContentType(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting greenroom server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
