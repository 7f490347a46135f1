// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yuedu HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL, Redis and object storage.
//  4. Run database migrations (idempotent).
//  5. Wire the library, heartbeat and settings services.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/yuedu/internal/api"
	"github.com/taibuivan/yuedu/internal/core/book"
	"github.com/taibuivan/yuedu/internal/library/progress"
	"github.com/taibuivan/yuedu/internal/library/settings"
	"github.com/taibuivan/yuedu/internal/platform/config"
	"github.com/taibuivan/yuedu/internal/platform/constants"
	"github.com/taibuivan/yuedu/internal/platform/migration"
	"github.com/taibuivan/yuedu/internal/platform/objectstore"
	pgstore "github.com/taibuivan/yuedu/internal/platform/postgres"
	redisstore "github.com/taibuivan/yuedu/internal/platform/redis"
	"github.com/taibuivan/yuedu/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int64("max_upload_bytes", cfg.MaxUploadBytes),
	)

	// Misconfigured backends should fail startup quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Backing Services ───────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	objects, err := objectstore.NewMinioStore(startupCtx, objectstore.Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	}, log)
	must(log, err, "connect to object storage")

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Identity ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPubKeyPath, cfg.JWTIssuer)
	must(log, err, "initialize token verifier")

	// ── 6. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Database: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		Cache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		Storage:  objects.Ping,
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	// The guard only needs the repository, so heartbeats can check book
	// access before the book service exists.
	bookRepository := book.NewBookRepository(pool)
	bookGuard := book.NewGuard(bookRepository)

	progressService := progress.NewService(progress.NewProgressRepository(pool), bookGuard, log)
	settingsService := settings.NewService(settings.NewSettingsRepository(pool), log)

	texts := book.NewCachedTextStore(book.NewObjectTextStore(objects), rdb, cfg.ContentCacheTTL, log)
	bookService := book.NewService(bookRepository, bookGuard, texts, progressService, book.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowGB18030:   cfg.AllowGB18030,
	}, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      book.NewHandler(bookService),
		Progress:  progress.NewHandler(progressService),
		Settings:  settings.NewHandler(settingsService),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger every entry of the process goes through.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only for startup wiring; request paths return their errors.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
