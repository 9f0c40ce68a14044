package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"aurora/web/internal/cache"
	"aurora/web/internal/config"
	"aurora/web/internal/handlers"
	"aurora/web/internal/jobs"
	"aurora/web/internal/log"
	"aurora/web/internal/notify"
	"aurora/web/internal/server"
	"aurora/web/internal/service"
	"aurora/web/internal/storage"
	"aurora/web/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := store.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	recordStore, err := store.NewPostgresStore(ctx, dbPool)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init record store")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBuckets(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure buckets failed")
	}

	users := service.NewUsers(recordStore)
	authService := service.NewAuthService(users, service.NewStoreVerifier(users), cfg, logger)
	adminService := service.NewAdminService(recordStore, service.StaticAdminCredentials{
		Email:    cfg.Security.AdminEmail,
		Password: cfg.Security.AdminPassword,
	}, cfg, logger)

	events := cache.NewEvents(redisClient)
	applicationService := service.NewApplicationService(recordStore, adminService, events, logger)
	appealService := service.NewAppealService(recordStore, adminService, events, logger)
	newsService := service.NewNewsService(recordStore)
	priceService := service.NewPriceService(recordStore)
	voteService := service.NewVoteService(recordStore, cache.NewCooldowns(redisClient), cfg)
	statusService := service.NewStatusService(cfg, logger)
	profileService := service.NewProfileService(recordStore, users, objectStore)

	handlerSet := handlers.NewHandlerSet(logger, cfg, handlers.Deps{
		Auth:         authService,
		Admin:        adminService,
		Users:        users,
		Applications: applicationService,
		Appeals:      appealService,
		News:         newsService,
		Prices:       priceService,
		Votes:        voteService,
		Status:       statusService,
		Profile:      profileService,
		DB:           dbPool,
		Cache:        redisClient,
	})
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(statusService, applicationService, appealService, cfg.Status.RefreshInterval, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	notifyCtx, stopNotify := context.WithCancel(ctx)
	consumer := notify.NewConsumer(redisClient, logger)
	go func() {
		if err := consumer.Start(notifyCtx); err != nil && notifyCtx.Err() == nil {
			logger.Error().Err(err).Msg("submission consumer stopped")
		}
	}()

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, stopNotify, dbPool, redisClient)
}

func waitForShutdown(
	logger zerolog.Logger,
	srv *server.HTTPServer,
	scheduler *jobs.Scheduler,
	stopNotify context.CancelFunc,
	db *pgxpool.Pool,
	redisClient *redis.Client,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	stopNotify()
	select {
	case <-scheduler.Stop().Done():
	case <-time.After(5 * time.Second):
		logger.Warn().Msg("scheduler jobs did not drain in time")
	}

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
