package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadolammi/portfolioparser/internal/logger"
	"github.com/muhammadolammi/portfolioparser/internal/storage"
)

type Config struct {
	DBURL            string
	RabbitMQURL      string
	StorageProvider  string // r2 or disk
	UploadDir        string
	R2               storage.R2Config
	RedisURL         string // empty disables the parse cache
	CacheTTL         time.Duration
	HTTPAddr         string
	WorkerCount      int
	MaxUploadBytes   int64
	PortfolioBaseURL string
	Log              logger.Config
}

// LoadConfig reads the environment. godotenv has already merged any .env
// file into it by the time this runs.
func LoadConfig() (Config, error) {
	cfg := Config{
		DBURL:            os.Getenv("DB_URL"),
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		StorageProvider:  strings.ToLower(envOr("STORAGE_PROVIDER", "disk")),
		UploadDir:        envOr("UPLOAD_DIR", "uploads"),
		RedisURL:         os.Getenv("REDIS_URL"),
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		PortfolioBaseURL: envOr("PORTFOLIO_BASE_URL", "http://localhost:8080"),
		R2: storage.R2Config{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
			Prefix:    os.Getenv("R2_PREFIX"),
		},
		Log: logger.Config{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
	}

	var errs []error
	if cfg.DBURL == "" {
		errs = append(errs, errors.New("empty DB_URL in environment"))
	}
	if cfg.RabbitMQURL == "" {
		errs = append(errs, errors.New("empty RABBITMQ_URL in environment"))
	}

	switch cfg.StorageProvider {
	case "disk":
	case "r2":
		for name, v := range map[string]string{
			"R2_ACCOUNT_ID": cfg.R2.AccountID,
			"R2_BUCKET":     cfg.R2.Bucket,
			"R2_ACCESS_KEY": cfg.R2.AccessKey,
			"R2_SECRET_KEY": cfg.R2.SecretKey,
		} {
			if v == "" {
				errs = append(errs, fmt.Errorf("empty %s in environment", name))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_PROVIDER %q", cfg.StorageProvider))
	}

	var err error
	if cfg.CacheTTL, err = time.ParseDuration(envOr("CACHE_TTL", "24h")); err != nil {
		errs = append(errs, fmt.Errorf("invalid CACHE_TTL: %w", err))
	}
	if cfg.WorkerCount, err = strconv.Atoi(envOr("WORKER_COUNT", "3")); err != nil || cfg.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("invalid WORKER_COUNT %q", os.Getenv("WORKER_COUNT")))
	}
	if cfg.MaxUploadBytes, err = strconv.ParseInt(envOr("MAX_UPLOAD_BYTES", "10485760"), 10, 64); err != nil || cfg.MaxUploadBytes < 1 {
		errs = append(errs, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", os.Getenv("MAX_UPLOAD_BYTES")))
	}

	return cfg, errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
