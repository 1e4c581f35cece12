package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("permanent error should not retry: %d calls", calls)
	}
}

func TestRetryRetriesRetryableError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("503")}
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryReturnsLastError(t *testing.T) {
	last := &RetryableError{Err: errors.New("still down")}
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		return last
	})
	if !errors.Is(err, last.Err) {
		t.Errorf("expected last error, got %v", err)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &RetryableError{Err: inner}
	if !errors.Is(err, inner) {
		t.Error("RetryableError should unwrap to inner error")
	}
}
