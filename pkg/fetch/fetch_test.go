package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mlorenz/scenetree/pkg/cache"
	apperrors "github.com/mlorenz/scenetree/pkg/errors"
)

func TestFetchSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, "pixels")
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), Options{})
	data, err := c.Fetch(context.Background(), srv.URL+"/bg.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("unexpected payload: %q", data)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 request, got %d", hits.Load())
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, "pixels")
	}))
	defer srv.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	c := NewClient(backend, Options{})

	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(context.Background(), srv.URL+"/bg.png"); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("second fetch should hit cache: %d requests", hits.Load())
	}
}

func TestFetchNotFound(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), Options{})
	_, err := c.Fetch(context.Background(), srv.URL+"/missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("404 should not be retried: %d requests", hits.Load())
	}
}

func TestFetchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), Options{MaxBytes: 16})
	_, err := c.Fetch(context.Background(), srv.URL+"/huge.png")
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestFetchRejectsUnsafeScheme(t *testing.T) {
	c := NewClient(cache.NewNullCache(), Options{})

	for _, source := range []string{"", "file:///etc/passwd", "ftp://host/img.png"} {
		_, err := c.Fetch(context.Background(), source)
		if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
			t.Errorf("Fetch(%q) error = %v, want INVALID_INPUT", source, err)
		}
	}
}

func TestDispatcherAppliesFetchedBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "pixels")
	}))
	defer srv.Close()

	d := NewDispatcher(NewClient(cache.NewNullCache(), Options{}), nil)

	var got atomic.Value
	d.Dispatch(srv.URL+"/bg.png", func(data []byte) {
		got.Store(string(data))
	})
	d.Wait()

	if got.Load() != "pixels" {
		t.Errorf("apply did not receive payload: %v", got.Load())
	}
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewDispatcher(NewClient(cache.NewNullCache(), Options{}), nil)

	applied := false
	d.Dispatch(srv.URL+"/missing.png", func([]byte) { applied = true })
	d.Wait()

	if applied {
		t.Error("apply must not run for failed fetches")
	}
}
