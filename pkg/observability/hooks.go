// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks at
// startup to receive events about document parsing, hierarchy building, image
// fetching and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries), keeps the core library free of observability frameworks, and
// allows different backends (OpenTelemetry, Prometheus, DataDog, etc.).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDocumentHooks(&myDocumentHooks{})
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Document().OnParseStart(ctx, size)
//	// ... parse ...
//	observability.Document().OnParseComplete(ctx, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Document Hooks
// =============================================================================

// DocumentHooks receives events from document parsing.
type DocumentHooks interface {
	// OnParseStart records the beginning of a parse; size is the raw input
	// length in bytes.
	OnParseStart(ctx context.Context, size int)

	// OnParseComplete records the end of a parse with the resulting node
	// count (zero on failure).
	OnParseComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)
}

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from hierarchy building.
type SceneHooks interface {
	// OnBuildStart records the beginning of a build over nodeCount nodes.
	OnBuildStart(ctx context.Context, nodeCount int)

	// OnElementCreated records one successfully created element by kind.
	OnElementCreated(ctx context.Context, kind string)

	// OnBuildComplete records the end of a build.
	OnBuildComplete(ctx context.Context, duration time.Duration, err error)
}

// =============================================================================
// Fetch Hooks
// =============================================================================

// FetchHooks receives events from image content fetching.
type FetchHooks interface {
	// OnFetchStart records an image fetch being scheduled.
	OnFetchStart(ctx context.Context, source string)

	// OnFetchComplete records the outcome of an image fetch. Failures here
	// are isolated to one element's fill and never abort a build.
	OnFetchComplete(ctx context.Context, source string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnParseStart(context.Context, int)                          {}
func (NoopDocumentHooks) OnParseComplete(context.Context, int, time.Duration, error) {}

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnBuildStart(context.Context, int)                     {}
func (NoopSceneHooks) OnElementCreated(context.Context, string)              {}
func (NoopSceneHooks) OnBuildComplete(context.Context, time.Duration, error) {}

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetchStart(context.Context, string)                               {}
func (NoopFetchHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	documentHooks DocumentHooks = NoopDocumentHooks{}
	sceneHooks    SceneHooks    = NoopSceneHooks{}
	fetchHooks    FetchHooks    = NoopFetchHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetDocumentHooks registers custom document hooks.
// This should be called once at application startup before any parsing.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// SetSceneHooks registers custom scene hooks.
// This should be called once at application startup before any builds.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetFetchHooks registers custom fetch hooks.
// This should be called once at application startup before any fetches.
func SetFetchHooks(h FetchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fetchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Fetch returns the registered fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	documentHooks = NoopDocumentHooks{}
	sceneHooks = NoopSceneHooks{}
	fetchHooks = NoopFetchHooks{}
	cacheHooks = NoopCacheHooks{}
}
