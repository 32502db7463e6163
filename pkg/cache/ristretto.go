package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

const backendMemory = "memory"

// RistrettoCache is an in-process Cache backed by Ristretto.
type RistrettoCache struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// RistrettoConfig holds configuration for Ristretto cache.
type RistrettoConfig struct {
	NumCounters int64 // keys tracked for admission, ~10x max items
	MaxCost     int64 // total payload bytes
	BufferItems int64
	Logger      *zap.Logger
}

// NewRistrettoCache creates a new Ristretto-backed cache.
func NewRistrettoCache(cfg *RistrettoConfig) (*RistrettoCache, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{
		cache:  cache,
		logger: cfg.Logger,
	}, nil
}

// Get retrieves a value from the cache.
func (r *RistrettoCache) Get(_ context.Context, key string) ([]byte, bool) {
	value, found := r.cache.Get(key)
	data, ok := value.([]byte)
	if !found || !ok {
		CacheMissesTotal.WithLabelValues(backendMemory).Inc()
		r.logger.Debug("cache-miss", zap.String("key", key))
		return nil, false
	}

	CacheHitsTotal.WithLabelValues(backendMemory).Inc()
	r.logger.Debug("cache-hit", zap.String("key", key))
	return data, true
}

// Set stores a value with a TTL. The cost of an entry is its size in bytes.
func (r *RistrettoCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	success := r.cache.SetWithTTL(key, value, int64(len(value)), ttl)
	if success {
		CacheSetsTotal.WithLabelValues(backendMemory).Inc()
		r.logger.Debug("cache-set",
			zap.String("key", key),
			zap.Int("bytes", len(value)),
			zap.Duration("ttl", ttl))
	}
	return success
}

// Delete removes a value from the cache.
func (r *RistrettoCache) Delete(_ context.Context, key string) {
	r.cache.Del(key)
	CacheDeletesTotal.WithLabelValues(backendMemory).Inc()
	r.logger.Debug("cache-delete", zap.String("key", key))
}

// Close closes the cache and releases resources.
func (r *RistrettoCache) Close() error {
	r.cache.Close()
	r.logger.Info("cache-closed", zap.String("backend", backendMemory))
	return nil
}

// Metrics returns Ristretto's internal metrics.
func (r *RistrettoCache) Metrics() *ristretto.Metrics {
	return r.cache.Metrics
}

// Wait blocks until pending writes have been applied.
func (r *RistrettoCache) Wait() {
	r.cache.Wait()
}
