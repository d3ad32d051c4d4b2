// Package cache holds the time-bounded response cache fronting the global
// feed. Entries live for a fixed TTL; within it readers get the stale page
// even if posts changed underneath. There is no event invalidation, only
// expiry and an explicit clear-all used by administrative tooling and tests.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-value store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Clear drops every entry.
	Clear(ctx context.Context) error
}
