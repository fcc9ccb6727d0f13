package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dogwalk/marketplace/internal/api"
	"github.com/dogwalk/marketplace/internal/infrastructure/config"
	mongodb "github.com/dogwalk/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/dogwalk/marketplace/internal/infrastructure/db/redis"
	"github.com/dogwalk/marketplace/internal/infrastructure/sweep"
	"github.com/dogwalk/marketplace/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.Env == "development", os.Stdout)

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

	redisClient, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	dogRepo := mongodb.NewDogRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		dogRepo.EnsureIndexes,
		jobRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Warn().Err(err).Msg("index creation failed")
		}
	}

	sessions := redisdb.NewSessionStore(redisClient)

	e := api.NewRouter(cfg, db, sessions, redisClient, log)

	sweeper := sweep.New(jobRepo, cfg.SweepSchedule, log)
	if err := sweeper.Start(); err != nil {
		log.Error().Err(err).Msg("overdue sweeper failed to start")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-stopCtx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sweeper.Stop()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if err := sessions.Close(); err != nil {
		log.Error().Err(err).Msg("session store close error")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect error")
	}

	log.Info().Msg("server exited cleanly")
}
