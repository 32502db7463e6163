package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/mselser95/betslip-validator/internal/circuitbreaker"
	"github.com/mselser95/betslip-validator/internal/provider"
	"github.com/mselser95/betslip-validator/internal/settlement"
	"github.com/mselser95/betslip-validator/pkg/cache"
	"github.com/mselser95/betslip-validator/pkg/config"
	"github.com/mselser95/betslip-validator/pkg/healthprobe"
	"github.com/mselser95/betslip-validator/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance. The provider chain is
// client -> circuit breaker -> cache -> settler, so cache hits never reach
// the breaker.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	err := cfg.RequireResultsAPI()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Initialize components
	healthChecker := setupHealthChecker()

	client, err := setupClient(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup client: %w", err)
	}

	resultCache, err := setupCache(ctx, cfg, logger, healthChecker)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	breaker, err := setupBreaker(cfg, logger, client)
	if err != nil {
		cancel()
		closeCache(resultCache, logger)
		return nil, fmt.Errorf("setup circuit breaker: %w", err)
	}

	settler, err := setupSettler(cfg, logger, breaker, resultCache)
	if err != nil {
		cancel()
		closeCache(resultCache, logger)
		return nil, fmt.Errorf("setup settler: %w", err)
	}

	resolver, err := provider.NewResolver(client, logger)
	if err != nil {
		cancel()
		closeCache(resultCache, logger)
		return nil, fmt.Errorf("setup resolver: %w", err)
	}

	httpServer := setupHTTPServer(cfg, logger, healthChecker, settler, resolver, client)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		client:        client,
		resultCache:   resultCache,
		breaker:       breaker,
		settler:       settler,
		resolver:      resolver,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupClient(cfg *config.Config, logger *zap.Logger) (*provider.Client, error) {
	return provider.NewClient(&provider.Config{
		BaseURL:        cfg.ResultsAPIURL,
		APIKey:         cfg.ResultsAPIKey,
		Timeout:        cfg.ResultsAPITimeout,
		Logger:         logger,
		MaxRetries:     cfg.ResultsAPIRetries,
		InitialBackoff: cfg.ResultsAPIRetryBackoff,
	})
}

// setupCache returns nil when caching is off. The redis backend is also
// registered as a readiness dependency.
func setupCache(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
) (cache.Cache, error) {
	switch cfg.CacheMode {
	case config.CacheModeOff:
		logger.Info("result-cache-disabled")
		return nil, nil
	case config.CacheModeRedis:
		redisCache, err := cache.NewRedisCache(ctx, &cache.RedisConfig{
			URL:       cfg.RedisURL,
			KeyPrefix: cfg.RedisKeyPrefix,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis cache: %w", err)
		}
		healthChecker.AddCheck("redis", redisCache.Ping)
		return redisCache, nil
	default:
		return cache.NewRistrettoCache(&cache.RistrettoConfig{
			NumCounters: 100000, // ~10x the entries expected to fit
			MaxCost:     cfg.CacheMaxBytes,
			BufferItems: 64,
			Logger:      logger,
		})
	}
}

func setupBreaker(cfg *config.Config, logger *zap.Logger, client *provider.Client) (*circuitbreaker.ProviderBreaker, error) {
	return circuitbreaker.New(&circuitbreaker.Config{
		Provider:         client,
		FailureThreshold: cfg.BreakerFailureThreshold,
		Cooldown:         cfg.BreakerCooldown,
		Ignore:           isAnswer,
		Logger:           logger,
	})
}

// isAnswer reports provider errors that describe the fixture rather than
// the health of the provider.
func isAnswer(err error) bool {
	return errors.Is(err, provider.ErrFixtureNotFound) || errors.Is(err, provider.ErrStatisticsUnavailable)
}

func setupSettler(
	cfg *config.Config,
	logger *zap.Logger,
	breaker *circuitbreaker.ProviderBreaker,
	resultCache cache.Cache,
) (*settlement.Settler, error) {
	var source settlement.Provider = breaker
	if resultCache != nil {
		cached, err := provider.NewCachedProvider(&provider.CacheConfig{
			Source:   breaker,
			Cache:    resultCache,
			FinalTTL: cfg.CacheFinalTTL,
			LiveTTL:  cfg.CacheLiveTTL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create cached provider: %w", err)
		}
		source = cached
	}

	return settlement.New(&settlement.Config{
		Provider:    source,
		Concurrency: cfg.SettleConcurrency,
		Logger:      logger,
	})
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	settler *settlement.Settler,
	resolver *provider.Resolver,
	client *provider.Client,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:               cfg.HTTPPort,
		Logger:             logger,
		HealthChecker:      healthChecker,
		Settler:            settler,
		Resolver:           resolver,
		Catalog:            client,
		MaxSelections:      cfg.MaxSlipSelections,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
}

func closeCache(c cache.Cache, logger *zap.Logger) {
	if c == nil {
		return
	}
	err := c.Close()
	if err != nil {
		logger.Error("cache-close-error", zap.Error(err))
	}
}
