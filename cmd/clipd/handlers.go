package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dreamware/clipd/internal/api"
	"github.com/dreamware/clipd/internal/clipboard"
	"github.com/dreamware/clipd/internal/storage"
	"github.com/dreamware/clipd/internal/web"
)

// maxRequestBody bounds request bodies. JSON string escaping can inflate
// content up to 6x on the wire (a control character encodes as six
// bytes, backslash-u plus four hex digits),
// so the cap is sized for the worst case plus envelope headroom;
// clipboard.ValidateContent remains the authority on the content limit
// itself.
const maxRequestBody = 6*clipboard.MaxContentSize + 4096

type server struct {
	store  storage.Store
	logger *zap.Logger
}

func newServer(store storage.Store, logger *zap.Logger) *server {
	return &server{
		store:  store,
		logger: logger,
	}
}

// routes wires the API endpoints and the embedded editor UI.
func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/clips", s.handleClips)
	mux.HandleFunc("/api/clips/", s.handleClip)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	mux.Handle("/", web.Handler())
	return mux
}

// handleClips covers the collection endpoint:
// POST /api/clips creates a clipboard, GET /api/clips lists summaries.
func (s *server) handleClips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreate(w, r)
	case http.MethodGet:
		s.handleList(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCreate creates a clipboard, optionally seeded with content.
//
// Endpoint: POST /api/clips
//
// Response:
//   - 201 Created: JSON clipboard record with server-assigned ID
//   - 400 Bad Request: Malformed JSON body
//   - 413 Request Entity Too Large: Content exceeds the size limit
func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContentRequest(w, r)
	if !ok {
		return
	}

	clip, err := clipboard.New(req.Content)
	if err != nil {
		writeContentError(w, err)
		return
	}

	if err := s.store.Create(clip); err != nil {
		s.logger.Error("failed to create clipboard", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create clipboard")
		return
	}

	s.logger.Info("created clipboard",
		zap.String("id", clip.ID),
		zap.Int("bytes", len(clip.Content)))

	writeJSON(w, http.StatusCreated, clip)
}

// handleList returns summaries of all clipboards, newest first.
//
// Endpoint: GET /api/clips
func (s *server) handleList(w http.ResponseWriter, _ *http.Request) {
	summaries, err := s.store.List()
	if err != nil {
		s.logger.Error("failed to list clipboards", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list clipboards")
		return
	}

	writeJSON(w, http.StatusOK, api.ListResponse{
		Clips: summaries,
		Count: len(summaries),
	})
}

// handleClip covers the item endpoint: GET reads, PUT updates, DELETE
// removes. POST is accepted as an update alias because sendBeacon (the
// editor's page-leave save) can only issue POST.
//
// Endpoint: /api/clips/{id}
func (s *server) handleClip(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/clips/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "clipboard not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r, id)
	case http.MethodPut, http.MethodPost:
		s.handleUpdate(w, r, id)
	case http.MethodDelete:
		s.handleDelete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleGet returns the clipboard record.
//
// Response:
//   - 200 OK: JSON clipboard record
//   - 404 Not Found: Unknown ID
func (s *server) handleGet(w http.ResponseWriter, _ *http.Request, id string) {
	clip, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "clipboard not found")
			return
		}
		s.logger.Error("failed to get clipboard", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get clipboard")
		return
	}

	writeJSON(w, http.StatusOK, clip)
}

// handleUpdate replaces the clipboard's content and bumps updated_at.
//
// Response:
//   - 200 OK: Updated JSON clipboard record
//   - 400 Bad Request: Malformed JSON body
//   - 404 Not Found: Unknown ID
//   - 413 Request Entity Too Large: Content exceeds the size limit
func (s *server) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	req, ok := decodeContentRequest(w, r)
	if !ok {
		return
	}

	if err := clipboard.ValidateContent(req.Content); err != nil {
		writeContentError(w, err)
		return
	}

	clip, err := s.store.Update(id, req.Content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "clipboard not found")
			return
		}
		s.logger.Error("failed to update clipboard", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update clipboard")
		return
	}

	s.logger.Debug("updated clipboard",
		zap.String("id", id),
		zap.Int("bytes", len(req.Content)))

	writeJSON(w, http.StatusOK, clip)
}

// handleDelete removes the clipboard. Idempotent: unknown IDs succeed.
//
// Response:
//   - 204 No Content: Deleted (or never existed)
func (s *server) handleDelete(w http.ResponseWriter, _ *http.Request, id string) {
	if err := s.store.Delete(id); err != nil {
		s.logger.Error("failed to delete clipboard", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete clipboard")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth reports server liveness.
//
// Endpoint: GET /health
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// handleStats reports storage statistics for monitoring.
//
// Endpoint: GET /stats
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.store.Stats()
	if err != nil {
		s.logger.Error("failed to read store stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read store stats")
		return
	}

	writeJSON(w, http.StatusOK, api.StatsResponse{
		Clips: stats.Clips,
		Bytes: stats.Bytes,
	})
}

// decodeContentRequest decodes the single-field content body shared by
// create and update, enforcing the request size cap. Returns false if an
// error response has already been written.
func decodeContentRequest(w http.ResponseWriter, r *http.Request) (api.UpdateRequest, bool) {
	var req api.UpdateRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An absent body means empty content; initial content is optional
		if errors.Is(err, io.EOF) {
			return req, true
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "clipboard content too large")
		} else {
			writeError(w, http.StatusBadRequest, "bad json")
		}
		return req, false
	}
	return req, true
}

func writeContentError(w http.ResponseWriter, err error) {
	if errors.Is(err, clipboard.ErrContentTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "clipboard content too large")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
