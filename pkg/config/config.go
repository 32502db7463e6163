package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache modes.
const (
	CacheModeMemory = "memory"
	CacheModeRedis  = "redis"
	CacheModeOff    = "off"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel        string
	HTTPPort        string
	ShutdownTimeout time.Duration

	// Results API
	ResultsAPIURL          string
	ResultsAPIKey          string
	ResultsAPITimeout      time.Duration
	ResultsAPIRetries      int
	ResultsAPIRetryBackoff time.Duration

	// Settlement
	SettleConcurrency int
	MaxSlipSelections int

	// Cache
	CacheMode      string // "memory", "redis" or "off"
	CacheFinalTTL  time.Duration
	CacheLiveTTL   time.Duration
	CacheMaxBytes  int64
	RedisURL       string
	RedisKeyPrefix string

	// Circuit breaker
	BreakerFailureThreshold int
	BreakerCooldown         time.Duration

	// HTTP
	CORSAllowedOrigins []string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort:        getEnvOrDefault("HTTP_PORT", "8080"),
		ShutdownTimeout: getDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),

		// Results API defaults. API_SPORTS_KEY is accepted for existing deployments.
		ResultsAPIURL:          getEnvOrDefault("RESULTS_API_URL", "https://v3.football.api-sports.io"),
		ResultsAPIKey:          getEnvOrDefault("RESULTS_API_KEY", os.Getenv("API_SPORTS_KEY")),
		ResultsAPITimeout:      getDurationOrDefault("RESULTS_API_TIMEOUT", 15*time.Second),
		ResultsAPIRetries:      getIntOrDefault("RESULTS_API_RETRIES", 2),
		ResultsAPIRetryBackoff: getDurationOrDefault("RESULTS_API_RETRY_BACKOFF", 250*time.Millisecond),

		// Settlement defaults
		SettleConcurrency: getIntOrDefault("SETTLE_CONCURRENCY", 4),
		MaxSlipSelections: getIntOrDefault("MAX_SLIP_SELECTIONS", 50),

		// Cache defaults
		CacheMode:      strings.ToLower(getEnvOrDefault("CACHE_MODE", CacheModeMemory)),
		CacheFinalTTL:  getDurationOrDefault("CACHE_FINAL_TTL", 24*time.Hour),
		CacheLiveTTL:   getDurationOrDefault("CACHE_LIVE_TTL", 30*time.Second),
		CacheMaxBytes:  int64(getIntOrDefault("CACHE_MAX_BYTES", 64<<20)),
		RedisURL:       getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RedisKeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "betslip:"),

		// Circuit breaker defaults
		BreakerFailureThreshold: getIntOrDefault("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerCooldown:         getDurationOrDefault("BREAKER_COOLDOWN", 30*time.Second),

		CORSAllowedOrigins: getListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid. The results API key
// is not checked here because offline commands run without it.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.ResultsAPIURL == "" {
		return fmt.Errorf("RESULTS_API_URL cannot be empty")
	}

	if c.ResultsAPIRetries < 0 {
		return fmt.Errorf("RESULTS_API_RETRIES cannot be negative, got %d", c.ResultsAPIRetries)
	}

	if c.SettleConcurrency <= 0 {
		return fmt.Errorf("SETTLE_CONCURRENCY must be positive, got %d", c.SettleConcurrency)
	}

	if c.MaxSlipSelections <= 0 {
		return fmt.Errorf("MAX_SLIP_SELECTIONS must be positive, got %d", c.MaxSlipSelections)
	}

	switch c.CacheMode {
	case CacheModeMemory, CacheModeRedis, CacheModeOff:
	default:
		return fmt.Errorf("CACHE_MODE must be 'memory', 'redis' or 'off', got %q", c.CacheMode)
	}

	if c.CacheMode == CacheModeRedis && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL cannot be empty when CACHE_MODE is 'redis'")
	}

	if c.CacheMode == CacheModeMemory && c.CacheMaxBytes <= 0 {
		return fmt.Errorf("CACHE_MAX_BYTES must be positive, got %d", c.CacheMaxBytes)
	}

	if c.BreakerFailureThreshold <= 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive, got %d", c.BreakerFailureThreshold)
	}

	if c.BreakerCooldown <= 0 {
		return fmt.Errorf("BREAKER_COOLDOWN must be positive, got %v", c.BreakerCooldown)
	}

	return nil
}

// RequireResultsAPI checks the settings needed to reach the results API.
func (c *Config) RequireResultsAPI() error {
	if c.ResultsAPIKey == "" {
		return fmt.Errorf("RESULTS_API_KEY (or API_SPORTS_KEY) is required")
	}
	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getListOrDefault reads a comma-separated list, dropping empty entries.
func getListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}

	return items
}
