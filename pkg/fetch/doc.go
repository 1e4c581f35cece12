// Package fetch retrieves image content for design elements.
//
// The hierarchy builder treats image fills as fire-and-forget side tasks: a
// build schedules a fetch through [Dispatcher.Dispatch] and never waits for
// it. A failed fetch affects only that element's visual fill — it is logged
// and reported through observability hooks but never reaches the build's
// return path.
//
// [Client] performs the actual HTTP work with a byte cache in front (any
// cache.Cache backend) and automatic retry with exponential backoff for
// transient failures. Payloads are capped; oversized responses fail with
// [ErrTooLarge] rather than buffering unbounded data.
package fetch
