package fetch

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Dispatcher runs image fills as detached units of work.
//
// Dispatch never blocks the caller: each fill runs on its own goroutine and
// reports its outcome only through logging and observability hooks, matching
// the builder's contract that fetch failures stay isolated to one element.
// Wait drains in-flight fills for graceful shutdown and for tests.
type Dispatcher struct {
	client *Client
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher that fetches through client.
// A nil logger falls back to the default logger.
func NewDispatcher(client *Client, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{client: client, logger: logger}
}

// Dispatch schedules a fetch for source and hands the bytes to apply on
// success. On failure the fill is simply skipped: the error is logged at
// warn level and never propagated.
//
// apply runs on the fetch goroutine; implementations must be safe to call
// concurrently with the build traversal.
func (d *Dispatcher) Dispatch(source string, apply func(data []byte)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		data, err := d.client.Fetch(context.Background(), source)
		if err != nil {
			d.logger.Warnf("image fill skipped for %s: %v", source, err)
			return
		}
		if apply != nil {
			apply(data)
		}
	}()
}

// Wait blocks until every dispatched fill has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
