package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	mongodb "go.mongodb.org/mongo-driver/mongo"

	"github.com/tailorhub/marketplace/internal/api"
	"github.com/tailorhub/marketplace/internal/core/ports"
	"github.com/tailorhub/marketplace/internal/infrastructure/db/mongo"
	"github.com/tailorhub/marketplace/internal/infrastructure/db/redis"
	"github.com/tailorhub/marketplace/internal/infrastructure/email"
	"github.com/tailorhub/marketplace/internal/infrastructure/storage"
	"github.com/tailorhub/marketplace/internal/pkg/config"
	"github.com/tailorhub/marketplace/pkg/logger"
)

// @title           TailorHub API
// @version         1.0
// @description     Marketplace backend for tailoring jobs, services and orders.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongodb")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	store, err := storage.NewObjectStore(storage.Config{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		UseSSL:        cfg.Storage.UseSSL,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Msg("ensure bucket failed")
	}

	ensureIndexes(ctx, db, log)

	var sender ports.CodeSender
	smtpCfg := email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
	if smtpCfg.Validate() == nil {
		sender = email.NewSMTPSender(smtpCfg, log)
	} else {
		log.Warn().Msg("smtp not configured, logging verification codes instead")
		sender = email.NewLogSender(log)
	}

	e := api.NewRouter(api.Dependencies{
		Mongo:      db,
		Redis:      rdb,
		Storage:    store,
		CodeSender: sender,
		JWTSecret:  cfg.JWTSecret,
		AIUpstream: cfg.AI.UpstreamURL,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect error")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}

	log.Info().Msg("server exited cleanly")
}

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

func ensureIndexes(ctx context.Context, db *mongodb.Database, log zerolog.Logger) {
	repos := []indexEnsurer{
		mongo.NewUserRepository(db),
		mongo.NewJobRepository(db),
		mongo.NewServiceRepository(db),
		mongo.NewOrderRepository(db),
		mongo.NewSocialRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("ensure indexes failed")
		}
	}
}
