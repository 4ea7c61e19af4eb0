// Package cache remembers parse results by document content hash. Parsing
// is deterministic, so identical bytes always map to the same result.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/muhammadolammi/portfolioparser/internal/resume"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfolio:parsed:"

// ErrMiss is returned by Get when nothing is cached for the hash.
var ErrMiss = errors.New("cache miss")

type ParseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects using a redis:// URL.
func New(url string, ttl time.Duration) (*ParseCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return NewWithClient(redis.NewClient(opts), ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *ParseCache {
	return &ParseCache{client: client, ttl: ttl}
}

// ContentHash is the cache key component for a document.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *ParseCache) Get(ctx context.Context, hash string) (resume.PortfolioData, error) {
	var data resume.PortfolioData
	raw, err := c.client.Get(ctx, keyPrefix+hash).Bytes()
	if errors.Is(err, redis.Nil) {
		return data, ErrMiss
	}
	if err != nil {
		return data, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("decode cached result: %w", err)
	}
	return data, nil
}

func (c *ParseCache) Set(ctx context.Context, hash string, data resume.PortfolioData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+hash, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *ParseCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ParseCache) Close() error {
	return c.client.Close()
}
