package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenstreet/ledger-api/internal/api"
	"github.com/greenstreet/ledger-api/internal/core/service"
	"github.com/greenstreet/ledger-api/internal/infrastructure/config"
	mongodb "github.com/greenstreet/ledger-api/internal/infrastructure/db/mongo"
	redisdb "github.com/greenstreet/ledger-api/internal/infrastructure/db/redis"
	"github.com/greenstreet/ledger-api/internal/infrastructure/email"
	"github.com/greenstreet/ledger-api/internal/infrastructure/jobs"
	"github.com/greenstreet/ledger-api/internal/infrastructure/queue"
	"github.com/greenstreet/ledger-api/pkg/logger"
)

// @title        Ledger API
// @version      1.0
// @description  Multi-tenant transaction ledger with session-based authentication.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	sessionRepo := mongodb.NewSessionRepository(db)
	identityRepo := mongodb.NewIdentityRepository(db)
	if err := sessionRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("session indexes failed")
	}
	if err := identityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("identity indexes failed")
	}

	tokens := service.NewTokenService(sessionRepo, cfg.RefreshTTL, log)

	sweeper := jobs.NewCleanupSweeper(tokens, cfg.CleanupInterval, log)
	go sweeper.Run(ctx)

	dispatcher := queue.NewMailDispatcher(4, email.NewLogMailer(log), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, tokens, dispatcher, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
