package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ryanbastic/classtrak/internal/api"
	"github.com/ryanbastic/classtrak/internal/config"
	"github.com/ryanbastic/classtrak/internal/metrics"
	"github.com/ryanbastic/classtrak/internal/storage"
)

func main() {
	cfg := config.Load()

	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.LogLevel)}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("invalid DATABASE_URL", "error", err)
		os.Exit(1)
	}
	if cfg.DBMaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.DBMaxConns)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database", "max_conns", pool.Config().MaxConns)

	if cfg.AutoMigrate {
		if err := storage.RunMigrations(ctx, pool); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations complete")
	}

	prometheus.MustRegister(metrics.NewPoolCollector(map[string]*pgxpool.Pool{"postgres": pool}))

	store := storage.NewPostgresStore(pool, cfg.QueryTimeout)
	backends := map[string]api.Pinger{"postgres": store}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewServer(logger, metrics.InstrumentStore(store), backends, cfg.ReadyTimeout),
	}

	go func() {
		logger.Info("starting HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	cancel()

	logger.Info("shutdown complete")
}
