package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/pkg/cache"
	"github.com/mselser95/betslip-validator/pkg/types"
	"go.uber.org/zap"
)

// Source is the part of the results API the cache decorates.
type Source interface {
	FetchOutcome(ctx context.Context, fixtureID int64) (*types.MatchOutcome, error)
	FetchStatistics(ctx context.Context, fixtureID int64) (*types.MatchStatistics, error)
}

// CacheConfig holds cached provider configuration.
type CacheConfig struct {
	Source Source
	Cache  cache.Cache

	// FinalTTL applies to outcomes of finished fixtures and to statistics.
	FinalTTL time.Duration
	// LiveTTL applies to outcomes still in play. Zero disables caching them.
	LiveTTL time.Duration

	Logger *zap.Logger
}

// CachedProvider serves outcomes and statistics from a cache before
// falling back to the wrapped source. Errors are never cached.
type CachedProvider struct {
	source   Source
	cache    cache.Cache
	finalTTL time.Duration
	liveTTL  time.Duration
	logger   *zap.Logger
}

// NewCachedProvider creates a new cached provider.
func NewCachedProvider(cfg *CacheConfig) (*CachedProvider, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Source == nil {
		return nil, errors.New("source cannot be nil")
	}
	if cfg.Cache == nil {
		return nil, errors.New("cache cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &CachedProvider{
		source:   cfg.Source,
		cache:    cfg.Cache,
		finalTTL: cfg.FinalTTL,
		liveTTL:  cfg.LiveTTL,
		logger:   cfg.Logger,
	}, nil
}

func outcomeKey(fixtureID int64) string {
	return fmt.Sprintf("outcome:%d", fixtureID)
}

func statisticsKey(fixtureID int64) string {
	return fmt.Sprintf("statistics:%d", fixtureID)
}

// IsFinal reports whether status is terminal.
func (c *CachedProvider) IsFinal(status string) bool {
	return IsFinal(status)
}

// FetchOutcome returns the cached outcome or fetches and caches it.
func (c *CachedProvider) FetchOutcome(ctx context.Context, fixtureID int64) (*types.MatchOutcome, error) {
	var o types.MatchOutcome
	if c.load(ctx, outcomeKey(fixtureID), &o) {
		return &o, nil
	}

	fetched, err := c.source.FetchOutcome(ctx, fixtureID)
	if err != nil {
		return nil, err
	}

	ttl := c.liveTTL
	if IsFinal(fetched.Status) {
		ttl = c.finalTTL
	}
	c.store(ctx, outcomeKey(fixtureID), fetched, ttl)

	return fetched, nil
}

// FetchStatistics returns cached statistics or fetches them. Statistics are
// stored only once the cached outcome of the fixture is final, as counters
// keep moving while the match is played.
func (c *CachedProvider) FetchStatistics(ctx context.Context, fixtureID int64) (*types.MatchStatistics, error) {
	var s types.MatchStatistics
	if c.load(ctx, statisticsKey(fixtureID), &s) {
		return &s, nil
	}

	fetched, err := c.source.FetchStatistics(ctx, fixtureID)
	if err != nil {
		return nil, err
	}

	var o types.MatchOutcome
	if c.load(ctx, outcomeKey(fixtureID), &o) && IsFinal(o.Status) {
		c.store(ctx, statisticsKey(fixtureID), fetched, c.finalTTL)
	}

	return fetched, nil
}

func (c *CachedProvider) load(ctx context.Context, key string, out interface{}) bool {
	data, ok := c.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("cache-decode-failed", zap.String("key", key), zap.Error(err))
		c.cache.Delete(ctx, key)
		return false
	}
	return true
}

func (c *CachedProvider) store(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache-encode-failed", zap.String("key", key), zap.Error(err))
		return
	}
	c.cache.Set(ctx, key, data, ttl)
}
