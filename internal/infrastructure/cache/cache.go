// Package cache stores raw provider search results keyed by search parameters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// keyPrefix namespaces search result keys.
const keyPrefix = "offers:"

// Cache stores provider search results.
// A miss is reported as (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, bool, error)
	Set(ctx context.Context, params domain.SearchParams, result *domain.SearchResult) error
	Close() error
}

// RedisConfig holds the connection settings for RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// DefaultRedisConfig returns local development defaults.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: "localhost:6379",
		TTL:  5 * time.Minute,
	}
}

// RedisCache stores JSON-encoded results in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultRedisConfig().TTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, bool, error) {
	data, err := c.client.Get(ctx, Key(params)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &result, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, params domain.SearchParams, result *domain.SearchResult) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode search result: %w", err)
	}
	if err := c.client.Set(ctx, Key(params), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close implements Cache.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoOpCache never stores anything. It is used when caching is disabled.
type NoOpCache struct{}

// NewNoOpCache creates a NoOpCache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get implements Cache; it always misses.
func (NoOpCache) Get(context.Context, domain.SearchParams) (*domain.SearchResult, bool, error) {
	return nil, false, nil
}

// Set implements Cache; it discards the result.
func (NoOpCache) Set(context.Context, domain.SearchParams, *domain.SearchResult) error {
	return nil
}

// Close implements Cache.
func (NoOpCache) Close() error {
	return nil
}

// Key returns the Redis key for params: a prefix plus the SHA-256 of the
// normalised parameter string.
func Key(params domain.SearchParams) string {
	sum := sha256.Sum256([]byte(params.CacheKey()))
	return keyPrefix + hex.EncodeToString(sum[:])
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*NoOpCache)(nil)
)
