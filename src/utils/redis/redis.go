package redis_utils

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"investmanager/src/config"
	"investmanager/src/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ErrKeyNotFound is returned by Get when the key is absent or expired.
var ErrKeyNotFound = errors.New("key does not exist")

// RedisHandler encapsulates the Redis client and provides utility methods.
type RedisHandler struct {
	client *redis.Client
}

// NewRedisHandler initializes a new Redis handler.
func NewRedisHandler(ctx context.Context, cfg config.RedisConfig) (*RedisHandler, error) {
	opts := &redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisHandler{client: client}, nil
}

// NewRedisHandlerFromClient wraps an existing client.
func NewRedisHandlerFromClient(client *redis.Client) *RedisHandler {
	return &RedisHandler{client: client}
}

// Set stores a key-value pair in Redis with an optional expiration.
func (r *RedisHandler) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	return r.client.Set(ctx, key, data, expiration).Err()
}

// Get retrieves and deserializes the value of a key from Redis into the provided result.
func (r *RedisHandler) Get(ctx context.Context, key string, result interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	} else if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal([]byte(data), result); err != nil {
		return fmt.Errorf("failed to deserialize value: %w", err)
	}
	return nil
}

// Close closes the Redis client connection.
func (r *RedisHandler) Close() error {
	return r.client.Close()
}

// RateCache stores resolved rates in Redis so API and worker processes share them.
// Redis failures are reported as misses.
type RateCache struct {
	handler *RedisHandler
	prefix  string
}

func NewRateCache(handler *RedisHandler) *RateCache {
	return &RateCache{handler: handler, prefix: "rates:"}
}

func (c *RateCache) Get(ctx context.Context, key string) (decimal.Decimal, bool) {
	var value decimal.Decimal
	if err := c.handler.Get(ctx, c.prefix+key, &value); err != nil {
		return decimal.Zero, false
	}
	return value, true
}

func (c *RateCache) Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) {
	if err := c.handler.Set(ctx, c.prefix+key, value, ttl); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithField("key", key).Warn("failed to cache rate in redis")
	}
}
