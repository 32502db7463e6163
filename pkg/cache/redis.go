package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const backendRedis = "redis"

// RedisCache is a Cache shared across instances through Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string // redis://[:password@]host:port/db
	KeyPrefix string
	Logger    *zap.Logger
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, cfg *RedisConfig) (*RedisCache, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	cfg.Logger.Info("redis-cache-connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))

	return newRedisCache(client, cfg.KeyPrefix, cfg.Logger), nil
}

func newRedisCache(client *redis.Client, prefix string, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (r *RedisCache) key(key string) string {
	return r.prefix + key
}

// Get retrieves a value. Connection errors count as misses.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		CacheMissesTotal.WithLabelValues(backendRedis).Inc()
		if !errors.Is(err, redis.Nil) {
			CacheErrorsTotal.WithLabelValues(backendRedis, "get").Inc()
			r.logger.Warn("cache-get-failed", zap.String("key", key), zap.Error(err))
		} else {
			r.logger.Debug("cache-miss", zap.String("key", key))
		}
		return nil, false
	}

	CacheHitsTotal.WithLabelValues(backendRedis).Inc()
	r.logger.Debug("cache-hit", zap.String("key", key))
	return data, true
}

// Set stores a value with a TTL.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		CacheErrorsTotal.WithLabelValues(backendRedis, "set").Inc()
		r.logger.Warn("cache-set-failed", zap.String("key", key), zap.Error(err))
		return false
	}

	CacheSetsTotal.WithLabelValues(backendRedis).Inc()
	r.logger.Debug("cache-set",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("ttl", ttl))
	return true
}

// Delete removes a value.
func (r *RedisCache) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		CacheErrorsTotal.WithLabelValues(backendRedis, "delete").Inc()
		r.logger.Warn("cache-delete-failed", zap.String("key", key), zap.Error(err))
		return
	}
	CacheDeletesTotal.WithLabelValues(backendRedis).Inc()
}

// Ping reports whether Redis is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client connection pool.
func (r *RedisCache) Close() error {
	r.logger.Info("cache-closed", zap.String("backend", backendRedis))
	return r.client.Close()
}
