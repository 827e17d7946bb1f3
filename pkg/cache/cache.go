// Package cache stores solved coverings keyed by instance fingerprint, so
// repeated solves of the same puzzle (CLI re-runs, API traffic) skip the
// search entirely.
//
// Three backends ship: a file cache for CLI usage, a Redis cache for
// multi-instance deployments, and a null cache to disable caching. Cached
// values are opaque bytes; callers serialize solutions with pkg/io.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultTTL is how long cached solutions live. Solutions never go stale —
// the TTL only bounds disk and memory growth.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second result reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live. A non-positive ttl
	// stores the value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SolutionKey derives the cache key for a puzzle instance fingerprint.
// Keys are namespaced so other artifacts can share a backend later.
func SolutionKey(fingerprint string) string {
	return "solution:" + fingerprint
}

// Hash computes the SHA-256 hex digest of data. File cache paths and custom
// keys are built from it; the full 64-character digest is kept to rule out
// collisions.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
