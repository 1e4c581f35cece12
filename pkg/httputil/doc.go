// Package httputil provides HTTP retry infrastructure for the image fetcher.
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Wrap transient failures with [RetryableError] so Retry knows to attempt the
// operation again; all other errors return immediately. Backoff is exponential
// starting from the given delay.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchOnce(ctx, url)
//	})
//
// Response caching lives in package cache, which offers file, Redis and null
// backends behind a single interface.
package httputil
