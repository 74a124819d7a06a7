// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Sixcities HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and an optional .env).
//  3. Connect to PostgreSQL through the connection supervisor.
//  4. Connect to Redis when configured.
//  5. Run database migrations (idempotent).
//  6. Wire services and HTTP handlers.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/sixcities/internal/api"
	"github.com/taibuivan/sixcities/internal/platform/config"
	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/metrics"
	"github.com/taibuivan/sixcities/internal/platform/migration"
	pgstore "github.com/taibuivan/sixcities/internal/platform/postgres"
	redisstore "github.com/taibuivan/sixcities/internal/platform/redis"
	"github.com/taibuivan/sixcities/internal/platform/sec"
	"github.com/taibuivan/sixcities/internal/rental/aggregate"
	"github.com/taibuivan/sixcities/internal/rental/comment"
	"github.com/taibuivan/sixcities/internal/rental/offer"
	"github.com/taibuivan/sixcities/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("revocation_store", cfg.RevocationStore),
		slog.Bool("aggregation_serialize", cfg.AggregationSerialize),
	)

	m := metrics.New()

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	supervisor := pgstore.NewSupervisor(pgstore.NewPool, pgstore.DefaultRetryPolicy, log)
	if err := supervisor.Connect(startupCtx, cfg.DatabaseDSN()); err != nil {
		m.ConnectFailed()
		must(log, err, "connect to postgres")
	}
	defer func() {
		if err := supervisor.Disconnect(); err != nil {
			log.Error("postgres_disconnect_failed", slog.Any("error", err))
		}
	}()

	pool, err := supervisor.Conn()
	must(log, err, "acquire postgres pool")
	pgstore.LogStats(log, pool)

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseDSN(), cfg.MigrationPath, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, constants.AuthIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	must(log, err, "initialize token service")

	var revoked sec.RevocationSet = sec.NewMemoryRevocationSet()
	if cfg.RevocationStore == config.RevocationStoreRedis {
		revoked = sec.NewRedisRevocationSet(rdb)
	}

	// ── 7. Health handlers ────────────────────────────────────────────────
	healthDeps := api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
	}
	if rdb != nil {
		healthDeps.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	if err := os.MkdirAll(cfg.UploadDirectory, 0o755); err != nil {
		must(log, err, "create upload directory")
	}

	authService := auth.NewService(auth.NewUserRepository(pool), tokens, revoked, m)
	engine := aggregate.NewEngine(aggregate.NewStore(pool), cfg.AggregationSerialize, m)
	offerService := offer.NewService(offer.NewRepository(pool), engine)
	commentService := comment.NewService(comment.NewRepository(pool), engine)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Users:     auth.NewHandler(authService, cfg.UploadDirectory),
		Offers:    offer.NewHandler(offerService, cfg.UploadDirectory),
		Comments:  comment.NewHandler(commentService, offerService),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Security{Verifier: tokens, Revoked: revoked}, m, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		return
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger every entry of the process goes through.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
