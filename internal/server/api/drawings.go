// Package api provides the HTTP API handlers for the finger drawing server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/store"
)

// DrawingHandler handles HTTP requests for saved drawings.
type DrawingHandler struct {
	store *store.Store
}

// NewDrawingHandler creates a DrawingHandler backed by the given store.
func NewDrawingHandler(s *store.Store) *DrawingHandler {
	return &DrawingHandler{store: s}
}

// ServeHTTP routes collection, item, and stroke requests.
// Expected paths: /api/drawings, /api/drawings/{id}, /api/drawings/{id}/strokes.
func (h *DrawingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/drawings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	switch {
	case len(parts) == 1:
		id := parts[0]
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodPut:
			h.rename(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "strokes":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.strokes(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// Request and response types

type createDrawingRequest struct {
	Name string `json:"name"`
}

type renameDrawingRequest struct {
	Name string `json:"name"`
}

type drawingResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StrokeCount int    `json:"stroke_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type listDrawingsResponse struct {
	Drawings []drawingResponse `json:"drawings"`
}

type strokesResponse struct {
	Strokes []draw.Stroke `json:"strokes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Drawing to a drawingResponse.
func toResponse(d *store.Drawing) drawingResponse {
	return drawingResponse{
		ID:          d.ID,
		Name:        d.Name,
		StrokeCount: d.StrokeCount,
		CreatedAt:   d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   d.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/drawings and returns all saved drawings.
func (h *DrawingHandler) list(w http.ResponseWriter, r *http.Request) {
	drawings, err := h.store.Drawings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list drawings")
		return
	}

	response := listDrawingsResponse{
		Drawings: make([]drawingResponse, 0, len(drawings)),
	}
	for _, d := range drawings {
		response.Drawings = append(response.Drawings, toResponse(d))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/drawings/{id} and returns a single drawing.
func (h *DrawingHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.store.Drawings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Drawing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get drawing")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(d))
}

// create handles POST /api/drawings and creates an empty drawing.
func (h *DrawingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createDrawingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	d := &store.Drawing{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	if err := h.store.Drawings().Create(d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create drawing")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(d))
}

// rename handles PUT /api/drawings/{id}.
func (h *DrawingHandler) rename(w http.ResponseWriter, r *http.Request, id string) {
	var req renameDrawingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.store.Drawings().Rename(id, req.Name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Drawing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to rename drawing")
		return
	}

	d, err := h.store.Drawings().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get drawing")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(d))
}

// delete handles DELETE /api/drawings/{id}. Strokes go with the drawing.
func (h *DrawingHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Drawings().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Drawing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete drawing")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// strokes handles GET /api/drawings/{id}/strokes.
func (h *DrawingHandler) strokes(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Drawings().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Drawing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get drawing")
		return
	}

	strokes, err := h.store.Strokes().ListByDrawing(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list strokes")
		return
	}

	writeJSON(w, http.StatusOK, strokesResponse{Strokes: strokes})
}
