package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// clearEnv blanks every key LoadFromEnv reads so host settings do not leak
// into assertions.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"LOG_LEVEL", "HTTP_PORT", "SHUTDOWN_TIMEOUT",
		"RESULTS_API_URL", "RESULTS_API_KEY", "API_SPORTS_KEY", "RESULTS_API_TIMEOUT",
		"RESULTS_API_RETRIES", "RESULTS_API_RETRY_BACKOFF",
		"SETTLE_CONCURRENCY", "MAX_SLIP_SELECTIONS",
		"CACHE_MODE", "CACHE_FINAL_TTL", "CACHE_LIVE_TTL", "CACHE_MAX_BYTES",
		"REDIS_URL", "REDIS_KEY_PREFIX",
		"BREAKER_FAILURE_THRESHOLD", "BREAKER_COOLDOWN", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://v3.football.api-sports.io", cfg.ResultsAPIURL)
	assert.Empty(t, cfg.ResultsAPIKey)
	assert.Equal(t, 15*time.Second, cfg.ResultsAPITimeout)
	assert.Equal(t, 2, cfg.ResultsAPIRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.ResultsAPIRetryBackoff)
	assert.Equal(t, 4, cfg.SettleConcurrency)
	assert.Equal(t, 50, cfg.MaxSlipSelections)
	assert.Equal(t, CacheModeMemory, cfg.CacheMode)
	assert.Equal(t, 24*time.Hour, cfg.CacheFinalTTL)
	assert.Equal(t, 30*time.Second, cfg.CacheLiveTTL)
	assert.Equal(t, int64(64<<20), cfg.CacheMaxBytes)
	assert.Equal(t, 5, cfg.BreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.BreakerCooldown)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESULTS_API_KEY", "primary")
	t.Setenv("API_SPORTS_KEY", "fallback")
	t.Setenv("CACHE_MODE", "REDIS")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("CACHE_LIVE_TTL", "0")
	t.Setenv("SETTLE_CONCURRENCY", "16")
	t.Setenv("RESULTS_API_RETRIES", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "primary", cfg.ResultsAPIKey)
	assert.Equal(t, CacheModeRedis, cfg.CacheMode)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, time.Duration(0), cfg.CacheLiveTTL)
	assert.Equal(t, 16, cfg.SettleConcurrency)
	assert.Equal(t, 0, cfg.ResultsAPIRetries)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnv_APISportsKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_SPORTS_KEY", "legacy")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.ResultsAPIKey)
	assert.NoError(t, cfg.RequireResultsAPI())
}

func TestLoadFromEnv_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SETTLE_CONCURRENCY", "many")
	t.Setenv("BREAKER_COOLDOWN", "soon")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.SettleConcurrency)
	assert.Equal(t, 30*time.Second, cfg.BreakerCooldown)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:                "8080",
			ResultsAPIURL:           "http://localhost",
			SettleConcurrency:       4,
			MaxSlipSelections:       50,
			CacheMode:               CacheModeMemory,
			CacheMaxBytes:           1024,
			RedisURL:                "redis://localhost:6379/0",
			BreakerFailureThreshold: 5,
			BreakerCooldown:         time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "cache-off", mutate: func(c *Config) { c.CacheMode = CacheModeOff; c.CacheMaxBytes = 0 }},
		{name: "empty-port", mutate: func(c *Config) { c.HTTPPort = "" }, wantErr: "HTTP_PORT cannot be empty"},
		{name: "empty-api-url", mutate: func(c *Config) { c.ResultsAPIURL = "" }, wantErr: "RESULTS_API_URL cannot be empty"},
		{name: "negative-retries", mutate: func(c *Config) { c.ResultsAPIRetries = -1 }, wantErr: "RESULTS_API_RETRIES cannot be negative, got -1"},
		{name: "zero-concurrency", mutate: func(c *Config) { c.SettleConcurrency = 0 }, wantErr: "SETTLE_CONCURRENCY must be positive, got 0"},
		{name: "zero-max-selections", mutate: func(c *Config) { c.MaxSlipSelections = 0 }, wantErr: "MAX_SLIP_SELECTIONS must be positive, got 0"},
		{name: "unknown-cache-mode", mutate: func(c *Config) { c.CacheMode = "disk" }, wantErr: `CACHE_MODE must be 'memory', 'redis' or 'off', got "disk"`},
		{name: "redis-without-url", mutate: func(c *Config) { c.CacheMode = CacheModeRedis; c.RedisURL = "" }, wantErr: "REDIS_URL cannot be empty when CACHE_MODE is 'redis'"},
		{name: "memory-without-size", mutate: func(c *Config) { c.CacheMaxBytes = 0 }, wantErr: "CACHE_MAX_BYTES must be positive, got 0"},
		{name: "zero-threshold", mutate: func(c *Config) { c.BreakerFailureThreshold = 0 }, wantErr: "BREAKER_FAILURE_THRESHOLD must be positive, got 0"},
		{name: "zero-cooldown", mutate: func(c *Config) { c.BreakerCooldown = 0 }, wantErr: "BREAKER_COOLDOWN must be positive, got 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRequireResultsAPI(t *testing.T) {
	cfg := &Config{}
	require.EqualError(t, cfg.RequireResultsAPI(), "RESULTS_API_KEY (or API_SPORTS_KEY) is required")
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		wantDebug bool
		wantErr   string
	}{
		{name: "debug", cfg: &Config{LogLevel: "debug"}, wantDebug: true},
		{name: "empty-is-info", cfg: &Config{}},
		{name: "warn", cfg: &Config{LogLevel: "warn"}},
		{name: "unknown-level", cfg: &Config{LogLevel: "loud"}, wantErr: `invalid log level "loud"`},
		{name: "nil-config", cfg: nil, wantErr: "config cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestNewLogger_IgnoresEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	logger, err := NewLogger(&Config{LogLevel: "error"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}
