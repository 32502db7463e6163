package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// unreachableRedis returns a cache pointed at a port nothing listens on.
func unreachableRedis(t *testing.T) *RedisCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := newRedisCache(client, "test:", zap.NewNop())
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestNewRedisCache_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     *RedisConfig
		wantErr string
	}{
		{name: "nil-config", cfg: nil, wantErr: "config cannot be nil"},
		{name: "nil-logger", cfg: &RedisConfig{URL: "redis://localhost:6379"}, wantErr: "logger cannot be nil"},
		{name: "bad-url", cfg: &RedisConfig{URL: "http://localhost", Logger: zap.NewNop()}, wantErr: "parse redis url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedisCache(ctx, tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, &RedisConfig{
		URL:    "redis://127.0.0.1:1/0?dial_timeout=100ms&max_retries=-1",
		Logger: zap.NewNop(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
}

func TestRedisCache_BackendErrorsDegradeToMiss(t *testing.T) {
	ctx := context.Background()
	c := unreachableRedis(t)

	assert.False(t, c.Set(ctx, "fixture:1", []byte("x"), time.Minute))

	got, found := c.Get(ctx, "fixture:1")
	assert.False(t, found)
	assert.Nil(t, got)

	c.Delete(ctx, "fixture:1")
	assert.Error(t, c.Ping(ctx))
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	c := newRedisCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "betslip:", zap.NewNop())
	defer func() { _ = c.Close() }()

	assert.Equal(t, "betslip:fixture:42", c.key("fixture:42"))
}
