package cache

import (
	"context"
	"time"
)

// Cache stores encoded provider payloads under string keys. Backends never
// fail a read: any backend error is reported as a miss.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value with a TTL and reports whether it was accepted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool

	// Delete removes a key.
	Delete(ctx context.Context, key string)

	// Close releases backend resources.
	Close() error
}
