// Package cache keeps rarely changing reference lists close to the API.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value cache with per-entry expiry
type Store interface {
	// Get returns the value and true on a hit, nil and false on a miss
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Close releases the store's resources
	Close() error
}
