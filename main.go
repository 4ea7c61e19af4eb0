package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/portfolioparser/internal/cache"
	"github.com/muhammadolammi/portfolioparser/internal/database"
	"github.com/muhammadolammi/portfolioparser/internal/logger"
	"github.com/muhammadolammi/portfolioparser/internal/storage"
	"github.com/streadway/amqp"
)

func main() {
	_ = godotenv.Load()
	cfg, err := LoadConfig()
	logger.Init(cfg.Log)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening db")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("error connecting to db")
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating upload store")
	}

	svc := &Service{
		Store:          store,
		DB:             database.New(db),
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	if cfg.RedisURL != "" {
		parseCache, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("error creating parse cache")
		}
		defer parseCache.Close()
		if err := parseCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, results will not be cached until it is back")
		}
		svc.Cache = parseCache
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("error connecting to RabbitMQ")
	}
	defer conn.Close()
	publisher, err := newAMQPPublisher(conn)
	if err != nil {
		logger.Fatal().Err(err).Msg("error setting up RabbitMQ topology")
	}

	h := newServer(cfg, &API{Service: svc, Publisher: publisher, BaseURL: cfg.PortfolioBaseURL})
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := h.Run(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	workerConfig := WorkerConfig{
		RabbitMQURL: cfg.RabbitMQURL,
		Service:     svc,
		Publisher:   publisher,
	}
	logger.Info().Int("workers", cfg.WorkerCount).Msg("starting consumer worker pool")
	if err := workerConfig.StartConsumerWorkerPool(ctx, cfg.WorkerCount); err != nil {
		logger.Error().Err(err).Msg("worker pool stopped")
	}

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	logger.Info().Msg("shutdown complete")
}

func newStore(ctx context.Context, cfg Config) (storage.Store, error) {
	if cfg.StorageProvider == "r2" {
		return storage.NewR2Store(ctx, cfg.R2)
	}
	return storage.NewDiskStore(cfg.UploadDir)
}
