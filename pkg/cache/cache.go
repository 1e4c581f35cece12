// Package cache provides byte caching for fetched image content and parsed
// documents.
//
// Three backends are available: a file cache for CLI usage, a Redis cache for
// server deployments, and a null cache that disables caching entirely. All
// backends implement the [Cache] interface and store opaque byte slices with
// an optional TTL.
//
// Keys are generated through a [Keyer] so that CLI, API and tests agree on the
// key layout. Use [NewScopedKeyer] to namespace keys per tenant or context.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Implementations must treat expired or corrupt entries as misses rather than
// errors; callers fall back to the origin on any miss.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ImageKeyOpts parameterizes image content cache keys.
type ImageKeyOpts struct {
	// MaxBytes caps the cached payload size; different caps get different keys.
	MaxBytes int64
}

// DocumentKeyOpts parameterizes parsed-document cache keys.
type DocumentKeyOpts struct {
	// MaxDepth is the parse depth limit the tree was produced with.
	MaxDepth int
}

// Keyer generates cache keys for the different payload types.
type Keyer interface {
	// ImageKey generates a key for fetched image bytes.
	ImageKey(source string, opts ImageKeyOpts) string

	// DocumentKey generates a key for a parsed document, derived from the
	// raw input hash and parse options.
	DocumentKey(docHash string, opts DocumentKeyOpts) string
}

// DefaultKeyer is the standard key layout shared by CLI and API.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ImageKey generates a key for fetched image bytes.
func (k *DefaultKeyer) ImageKey(source string, opts ImageKeyOpts) string {
	return hashKey("image", source, opts)
}

// DocumentKey generates a key for a parsed document.
func (k *DefaultKeyer) DocumentKey(docHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", docHash, opts)
}
