// Copyright (c) 2026 BoiBritto. All rights reserved.

// Command api is the entry point for the BoiBritto HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the identity verifier (provider public key + claim cache).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/SillyCatto/boibritto-sub001/internal/api"
	"github.com/SillyCatto/boibritto-sub001/internal/blog"
	"github.com/SillyCatto/boibritto-sub001/internal/collection"
	"github.com/SillyCatto/boibritto-sub001/internal/discussion"
	"github.com/SillyCatto/boibritto-sub001/internal/identity"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/config"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/constants"
	"github.com/SillyCatto/boibritto-sub001/internal/platform/migration"
	pgstore "github.com/SillyCatto/boibritto-sub001/internal/platform/postgres"
	redisstore "github.com/SillyCatto/boibritto-sub001/internal/platform/redis"
	"github.com/SillyCatto/boibritto-sub001/internal/readinglist"
	"github.com/SillyCatto/boibritto-sub001/internal/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[BoiBritto] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
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

	// Application context: lives for the whole process and is cancelled on
	// shutdown so background workers (rate limiter cleanup) stop cleanly.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

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

	// ── 6. Identity Verifier ──────────────────────────────────────────────
	claimCache := identity.NewRedisClaimCache(rdb)
	verifier, err := identity.NewVerifier(cfg.IdentityPubKeyPath, cfg.IdentityIssuer, claimCache, log)
	must(log, err, "initialize identity verifier")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := user.NewRepository(pool)
	userService := user.NewService(userRepository, log)
	userHandler := user.NewHandler(userService)

	readingListRepository := readinglist.NewRepository(pool)
	readingListService := readinglist.NewService(readingListRepository, log)
	readingListHandler := readinglist.NewHandler(readingListService)

	collectionRepository := collection.NewRepository(pool)
	collectionService := collection.NewService(collectionRepository, log)
	collectionHandler := collection.NewHandler(collectionService)

	blogRepository := blog.NewBlogRepository(pool)
	chapterRepository := blog.NewChapterRepository(pool)
	blogService := blog.NewService(blogRepository, chapterRepository, log)
	blogHandler := blog.NewHandler(blogService)

	discussionRepository := discussion.NewDiscussionRepository(pool)
	commentRepository := discussion.NewCommentRepository(pool)
	discussionService := discussion.NewService(discussionRepository, commentRepository, log)
	discussionHandler := discussion.NewHandler(discussionService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		User:        userHandler,
		ReadingList: readingListHandler,
		Collection:  collectionHandler,
		Blog:        blogHandler,
		Discussion:  discussionHandler,
	}

	server := api.NewServer(appCtx, cfg, log, verifier, userService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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

	appCancel()

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
