// Package cache provides render-artifact caching for pedikit.
//
// Layout is cheap but the PNG/PDF conversions shell out to external tools,
// so the pipeline caches rendered artifacts keyed by a content hash of the
// dataset plus the render options. Implementations:
//   - FileCache: file-based storage for CLI usage
//   - NullCache: no-op cache for tests or --no-cache runs
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact from the dataset
// content hash, the output format, and the render option fingerprint.
func ArtifactKey(datasetHash, format string, opts ...any) string {
	parts := append([]any{datasetHash, format}, opts...)
	return hashKey("artifact", parts...)
}
