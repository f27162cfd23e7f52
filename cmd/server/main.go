// Seal Hub server entry point. Wires configuration, PostgreSQL, Redis, the
// application handlers, and the HTTP server, then runs until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/seal-hub/seal-progress-hub/config"
	"github.com/seal-hub/seal-progress-hub/internal/application/command"
	"github.com/seal-hub/seal-progress-hub/internal/application/query"
	"github.com/seal-hub/seal-progress-hub/internal/domain/leaderboard"
	"github.com/seal-hub/seal-progress-hub/internal/domain/notification"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
	"github.com/seal-hub/seal-progress-hub/internal/infrastructure/persistence/memory"
	"github.com/seal-hub/seal-progress-hub/internal/infrastructure/persistence/postgres"
	"github.com/seal-hub/seal-progress-hub/internal/infrastructure/persistence/redis"
	httpiface "github.com/seal-hub/seal-progress-hub/internal/interface/http"
	"github.com/seal-hub/seal-progress-hub/pkg/logger"
	"github.com/seal-hub/seal-progress-hub/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().Fatal("configuration error", logger.Err(err))
	}

	log := logger.New(logger.Options{
		Output: os.Stdout,
		Level:  logger.ParseLevel(cfg.App.LogLevel),
	}).With(logger.String("app", cfg.App.Name))

	log.Info("starting",
		logger.String("environment", string(cfg.App.Environment)),
		logger.Bool("redis_disabled", cfg.Redis.Disabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── PostgreSQL ────────────────────────────────────────────────────────────

	var conn *postgres.Connection
	connectCfg := retry.DefaultConfig()
	connectCfg.MaxAttempts = cfg.Database.ConnectAttempts
	connectCfg.InitialDelay = time.Second
	connectCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warn("postgres connect failed, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Err(err),
		)
	}
	err = retry.Do(ctx, connectCfg, func(ctx context.Context) error {
		var connErr error
		conn, connErr = postgres.NewConnection(ctx, cfg.Database.URL)
		return connErr
	})
	if err != nil {
		log.Fatal("postgres connection failed", logger.Err(err))
	}
	defer conn.Close()

	if err := postgres.Migrate(ctx, conn); err != nil {
		log.Fatal("migrations failed", logger.Err(err))
	}

	catalogRepo := postgres.NewCatalogRepository(conn)
	progressRepo := postgres.NewProgressRepository(conn)
	profileRepo := postgres.NewProfileRepository(conn)

	// ── Redis (or in-memory fallbacks for development) ────────────────────────

	var (
		redisClient *goredis.Client
		sessions    user.SessionStore
		flags       notification.FlagStore
		lbCache     leaderboard.Cache
	)
	if cfg.Redis.Disabled {
		log.Warn("redis disabled, using in-memory sessions and flags")
		sessions = memory.NewSessionStore()
		flags = memory.NewFlagStore()
	} else {
		redisCfg := redis.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		err = retry.Do(ctx, connectCfg, func(ctx context.Context) error {
			var redisErr error
			redisClient, redisErr = redis.NewClient(ctx, redisCfg)
			return redisErr
		})
		if err != nil {
			log.Fatal("redis connection failed", logger.Err(err))
		}
		defer func() { _ = redisClient.Close() }()

		sessions = redis.NewSessionStore(redisClient)
		flags = redis.NewFlagStore(redisClient)
		if cfg.Features.LeaderboardCache {
			lbCache = redis.NewLeaderboardCache(redisClient)
		}
	}

	gate := notification.NewGate(flags, cfg.Features.NotifyEveryTime)
	if cfg.Features.NotifyEveryTime {
		log.Warn("earned-notification de-duplication is disabled (FEATURE_NOTIFY_EVERY_TIME)")
	}

	// ── Application handlers ──────────────────────────────────────────────────

	deps := httpiface.Dependencies{
		RegisterUser:       command.NewRegisterUserHandler(profileRepo, sessions),
		LoginUser:          command.NewLoginUserHandler(profileRepo, sessions),
		CompleteObjective:  command.NewCompleteObjectiveHandler(catalogRepo, progressRepo, lbCache),
		ConsumeEarnedNotif: command.NewConsumeEarnedNotificationHandler(catalogRepo, progressRepo, gate),

		ListSeals:      query.NewListSealsHandler(catalogRepo, progressRepo),
		GetSeal:        query.NewGetSealHandler(catalogRepo, progressRepo),
		GetUserStats:   query.NewGetUserStatsHandler(catalogRepo, progressRepo, profileRepo),
		GetLeaderboard: query.NewGetLeaderboardHandler(catalogRepo, progressRepo, profileRepo, lbCache),

		Sessions: sessions,
		Pinger:   conn,
		Logger:   log,
	}

	server := httpiface.NewServer(httpiface.Config{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, deps)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal("server failed", logger.Err(err))
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Err(err))
	}
	log.Info("stopped")
}
