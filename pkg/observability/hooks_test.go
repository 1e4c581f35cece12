package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingDocumentHooks struct {
	mu     sync.Mutex
	starts int
	counts []int
}

func (r *recordingDocumentHooks) OnParseStart(ctx context.Context, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
}

func (r *recordingDocumentHooks) OnParseComplete(ctx context.Context, nodeCount int, d time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, nodeCount)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic.
	ctx := context.Background()
	Document().OnParseStart(ctx, 10)
	Document().OnParseComplete(ctx, 1, time.Millisecond, nil)
	Scene().OnBuildStart(ctx, 1)
	Scene().OnElementCreated(ctx, "group")
	Scene().OnBuildComplete(ctx, time.Millisecond, nil)
	Fetch().OnFetchStart(ctx, "http://example.com/a.png")
	Fetch().OnFetchComplete(ctx, "http://example.com/a.png", 0, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "image")
	Cache().OnCacheMiss(ctx, "image")
	Cache().OnCacheSet(ctx, "image", 0)
}

func TestSetDocumentHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingDocumentHooks{}
	SetDocumentHooks(rec)

	ctx := context.Background()
	Document().OnParseStart(ctx, 128)
	Document().OnParseComplete(ctx, 7, time.Millisecond, nil)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.starts != 1 {
		t.Errorf("starts = %d, want 1", rec.starts)
	}
	if len(rec.counts) != 1 || rec.counts[0] != 7 {
		t.Errorf("counts = %v, want [7]", rec.counts)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingDocumentHooks{}
	SetDocumentHooks(rec)
	SetDocumentHooks(nil)

	if Document() != DocumentHooks(rec) {
		t.Error("nil registration should not replace current hooks")
	}
}

func TestReset(t *testing.T) {
	SetDocumentHooks(&recordingDocumentHooks{})
	Reset()

	if _, ok := Document().(NoopDocumentHooks); !ok {
		t.Errorf("Reset should restore noop hooks, got %T", Document())
	}
}
