package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mlorenz/scenetree/pkg/cache"
	apperrors "github.com/mlorenz/scenetree/pkg/errors"
	"github.com/mlorenz/scenetree/pkg/httputil"
	"github.com/mlorenz/scenetree/pkg/observability"
)

// Defaults for image fetching.
const (
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL is how long fetched image bytes stay cached.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultMaxBytes caps a single image payload (8 MiB).
	DefaultMaxBytes = 8 << 20
)

// Sentinel errors for fetch outcomes.
var (
	// ErrNotFound is returned when the source URL answers 404.
	ErrNotFound = errors.New("image not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// unexpected status codes).
	ErrNetwork = errors.New("network error")

	// ErrTooLarge is returned when a payload exceeds the configured cap.
	ErrTooLarge = errors.New("image exceeds size limit")
)

// Options configures a Client. Zero values fall back to the package defaults.
type Options struct {
	Timeout  time.Duration // per-request timeout
	CacheTTL time.Duration // TTL for cached image bytes
	MaxBytes int64         // payload size cap
}

// Client fetches image bytes over HTTP with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	maxBytes int64
}

// NewClient creates a fetch client backed by the given cache.
// Pass cache.NewNullCache() to disable caching.
func NewClient(backend cache.Cache, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:     &http.Client{Timeout: opts.Timeout},
		cache:    backend,
		keyer:    cache.NewDefaultKeyer(),
		ttl:      opts.CacheTTL,
		maxBytes: opts.MaxBytes,
	}
}

// Fetch retrieves the image bytes for source, consulting the cache first.
//
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff. Returns [ErrNotFound] for 404 responses, [ErrTooLarge]
// for oversized payloads, and [ErrNetwork] for other HTTP failures.
func (c *Client) Fetch(ctx context.Context, source string) ([]byte, error) {
	if err := apperrors.ValidateSourceURL(source); err != nil {
		return nil, err
	}
	key := c.keyer.ImageKey(source, cache.ImageKeyOpts{MaxBytes: c.maxBytes})

	if data, ok, _ := c.cache.Get(ctx, key); ok {
		observability.Cache().OnCacheHit(ctx, "image")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "image")

	start := time.Now()
	observability.Fetch().OnFetchStart(ctx, source)

	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = c.fetchOnce(ctx, source)
		return err
	})
	observability.Fetch().OnFetchComplete(ctx, source, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if cerr := c.cache.Set(ctx, key, data, c.ttl); cerr == nil {
		observability.Cache().OnCacheSet(ctx, "image", len(data))
	}
	return data, nil
}

// fetchOnce performs a single HTTP GET, wrapping transient failures so the
// retry layer knows to try again.
func (c *Client) fetchOnce(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	// Read one byte past the cap to detect oversized payloads.
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, c.maxBytes)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
