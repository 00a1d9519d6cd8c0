package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "meta-ads-proxy/internal/adapter/http"
	"meta-ads-proxy/internal/adapter/memstore"
	"meta-ads-proxy/internal/adapter/meta"
	"meta-ads-proxy/internal/adapter/postgres"
	"meta-ads-proxy/internal/adapter/usecase"
	"meta-ads-proxy/internal/config"
	"meta-ads-proxy/internal/core/port"
	"meta-ads-proxy/internal/db"
)

// main loads configuration, picks the session store (in-memory by default,
// PostgreSQL when configured), wires the OAuth and campaign use cases and
// serves HTTP until a termination signal arrives.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, opts)
		default:
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
		logger = slog.New(handler)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store port.SessionStore = memstore.New()
	if cfg.Psql.Enabled {
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				os.Exit(1)
			}
			logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		store = postgres.NewSessionRepository(pool)
		logger.Info("using postgres session store")
	}

	client := meta.NewClient(cfg.Meta)
	authUC := usecase.NewAuthUseCase(store, client, logger)
	campaignUC := usecase.NewCampaignUseCase(authUC, store, client, logger)

	handler := httpadapter.NewHandler(authUC, campaignUC, httpadapter.Options{
		FrontendURL:      cfg.Meta.FrontendURL,
		DefaultAccountID: cfg.Meta.DefaultAccountID,
		SecureCookies:    cfg.HTTP.SecureCookies,
	}, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
