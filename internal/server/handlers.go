package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/mlorenz/scenetree/pkg/buildinfo"
	"github.com/mlorenz/scenetree/pkg/cache"
	"github.com/mlorenz/scenetree/pkg/document"
	apperrors "github.com/mlorenz/scenetree/pkg/errors"
	"github.com/mlorenz/scenetree/pkg/scene"
	"github.com/mlorenz/scenetree/pkg/scene/memory"
	"github.com/mlorenz/scenetree/pkg/store"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
	Path    string         `json:"path,omitempty"`
}

// parseResponse summarizes a successfully parsed document.
type parseResponse struct {
	Name      string `json:"name"`
	NodeCount int    `json:"node_count"`
	Depth     int    `json:"depth"`
}

// buildResponse carries the element tree a build produced.
type buildResponse struct {
	ElementCount int                  `json:"element_count"`
	Convention   string               `json:"convention"`
	Elements     []memory.ElementView `json:"elements"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	root, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{
		Name:      root.Name,
		NodeCount: root.Count(),
		Depth:     root.Depth(),
	})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("convention")
	if name == "" {
		name = s.opts.Build.Convention
	}
	convention, ok := scene.ConventionNamed(name)
	if !ok {
		s.writeError(w, http.StatusBadRequest, apperrors.New(
			apperrors.ErrCodeInvalidConvention, "unknown convention %q", name))
		return
	}

	root, ok := s.parseBody(w, r)
	if !ok {
		return
	}

	env := memory.New()
	builder := scene.NewBuilder(env,
		scene.WithConvention(convention),
		scene.WithMaxDepth(s.opts.Build.MaxDepth))
	if _, err := builder.Build(r.Context(), root, nil); err != nil {
		s.writeBuildError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildResponse{
		ElementCount: env.Len(),
		Convention:   name,
		Elements:     env.Snapshot(),
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	root, ok := s.parseBytes(w, body)
	if !ok {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = root.Name
	}

	rec, err := s.opts.Store.Save(r.Context(), name, cache.Hash(body), root)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.Wrap(
			apperrors.ErrCodeInternal, err, "save document"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.opts.Store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.Wrap(
			apperrors.ErrCodeInternal, err, "list documents"))
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	root, rec, err := s.opts.Store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, apperrors.New(
			apperrors.ErrCodeDocumentNotFound, "no document with id %s", id))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.Wrap(
			apperrors.ErrCodeInternal, err, "load document"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record": rec,
		"stats": parseResponse{
			Name:      root.Name,
			NodeCount: root.Count(),
			Depth:     root.Depth(),
		},
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.opts.Store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, apperrors.New(
			apperrors.ErrCodeDocumentNotFound, "no document with id %s", id))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.Wrap(
			apperrors.ErrCodeInternal, err, "delete document"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody reads the request body up to the size cap. Reports the error
// itself; the boolean tells the caller whether to continue.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, apperrors.Wrap(
			apperrors.ErrCodeInvalidInput, err, "read request body"))
		return nil, false
	}
	return body, true
}

func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) (*document.Node, bool) {
	body, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}
	return s.parseBytes(w, body)
}

func (s *Server) parseBytes(w http.ResponseWriter, body []byte) (*document.Node, bool) {
	root, err := document.ParseWithOptions(body, document.ParseOptions{
		MaxDepth: s.opts.Build.MaxDepth,
	})
	if err != nil {
		var malformed *document.MalformedDocumentError
		resp := errorResponse{
			Code:    apperrors.ErrCodeMalformedDocument,
			Message: apperrors.UserMessage(err),
		}
		if errors.As(err, &malformed) {
			resp.Message = malformed.Reason
			resp.Path = malformed.Path
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return nil, false
	}
	return root, true
}

// writeBuildError maps a build failure onto the wire, keeping the node path
// when the failure identifies one.
func (s *Server) writeBuildError(w http.ResponseWriter, err error) {
	var failed *scene.ElementCreationFailedError
	if errors.As(err, &failed) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    apperrors.ErrCodeElementCreationFailed,
			Message: failed.Cause.Error(),
			Path:    failed.Path,
		})
		return
	}
	s.writeError(w, http.StatusInternalServerError, apperrors.Wrap(
		apperrors.ErrCodeInternal, err, "build hierarchy"))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err *apperrors.Error) {
	if status >= 500 {
		s.logger.Error("request failed", "code", err.Code, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: err.Code, Message: err.Message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
