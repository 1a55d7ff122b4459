// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

// Command api is the entry point for the Kritika HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/dmaksimov/kritika/internal/api"
	"github.com/dmaksimov/kritika/internal/catalog/category"
	"github.com/dmaksimov/kritika/internal/catalog/genre"
	"github.com/dmaksimov/kritika/internal/catalog/title"
	"github.com/dmaksimov/kritika/internal/feedback/comment"
	"github.com/dmaksimov/kritika/internal/feedback/review"
	"github.com/dmaksimov/kritika/internal/mail"
	"github.com/dmaksimov/kritika/internal/platform/config"
	"github.com/dmaksimov/kritika/internal/platform/constants"
	"github.com/dmaksimov/kritika/internal/platform/migration"
	pgstore "github.com/dmaksimov/kritika/internal/platform/postgres"
	redisstore "github.com/dmaksimov/kritika/internal/platform/redis"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/internal/users/account"
	"github.com/dmaksimov/kritika/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "kritika"))
	slog.SetDefault(log)

	log.Info("[Kritika] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "kritika"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Outbound Mail ──────────────────────────────────────────────────
	// With a broker configured, confirmation codes go through the durable
	// mail queue and cmd/mailer delivers them. Without one (local dev),
	// messages are logged instead.
	var mailer mail.Mailer
	if cfg.AMQPURL != "" {
		publisher, err := mail.NewPublisher(cfg.AMQPURL, log)
		must(log, err, "connect to message broker")
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				log.Error("amqp close error", slog.Any("error", cerr))
			}
		}()
		mailer = publisher
	} else {
		log.Warn("amqp_url_not_set_using_log_mailer")
		mailer = mail.NewLogMailer(log)
	}

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	codeRepository := auth.NewCodeRepository(rdb)

	authService := auth.NewService(userRepository, codeRepository, jwtSvc, mailer)
	accountService := account.NewService(userRepository, log)

	categoryRepository := category.NewPostgresRepository(pool)
	genreRepository := genre.NewPostgresRepository(pool)
	titleRepository := title.NewPostgresRepository(pool)

	categoryService := category.NewService(categoryRepository)
	genreService := genre.NewService(genreRepository)
	titleService := title.NewService(titleRepository, categoryRepository, genreRepository)

	reviewRepository := review.NewPostgresRepository(pool)
	commentRepository := comment.NewPostgresRepository(pool)

	reviewService := review.NewService(reviewRepository, titleRepository)
	commentService := comment.NewService(commentRepository, reviewRepository)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Category:  category.NewHandler(categoryService),
		Genre:     genre.NewHandler(genreService),
		Title:     title.NewHandler(titleService),
		Review:    review.NewHandler(reviewService),
		Comment:   comment.NewHandler(commentService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
