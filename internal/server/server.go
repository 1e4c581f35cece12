// Package server exposes parsing, building and document storage over HTTP.
//
// The API is a thin layer over the library packages: requests carry raw design
// exports, responses carry parse statistics, build snapshots or stored
// records. Parse and build failures map to 422 with the structured error code
// and the offending node path; nothing in this package re-implements document
// semantics.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mlorenz/scenetree/pkg/buildinfo"
	"github.com/mlorenz/scenetree/pkg/config"
	"github.com/mlorenz/scenetree/pkg/store"
)

// maxBodyBytes caps the accepted request body (16 MiB). Design exports are
// text; anything larger is almost certainly a mistake.
const maxBodyBytes = 16 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Build supplies the default convention and depth limit for parse and
	// build requests.
	Build config.BuildConfig

	// Store enables the /v1/documents routes when non-nil.
	Store *store.Store

	// Logger receives request logs. Nil falls back to the default logger.
	Logger *log.Logger
}

// Server is the HTTP API for scenetree.
type Server struct {
	router chi.Router
	opts   Options
	logger *log.Logger
}

// New assembles the router with all routes and middleware.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/build", s.handleBuild)
		if opts.Store != nil {
			r.Route("/documents", func(r chi.Router) {
				r.Post("/", s.handleSave)
				r.Get("/", s.handleList)
				r.Get("/{id}", s.handleGet)
				r.Delete("/{id}", s.handleDelete)
			})
		}
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs one line per request with method, path, status and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
