package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/store"
)

// CanvasHandler exposes the live canvas: what the engine has drawn so
// far, clearing it, and saving it as a drawing.
type CanvasHandler struct {
	engine   *draw.Engine
	store    *store.Store
	exporter *Exporter
}

// NewCanvasHandler creates a CanvasHandler. store may be nil, in which
// case saving is unavailable. exporter may be nil to disable auto-export.
func NewCanvasHandler(engine *draw.Engine, s *store.Store, exporter *Exporter) *CanvasHandler {
	return &CanvasHandler{engine: engine, store: s, exporter: exporter}
}

// ServeHTTP routes canvas requests.
// Expected paths: /api/canvas and /api/canvas/save.
func (h *CanvasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/canvas")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.snapshot(w, r)
		case http.MethodDelete:
			h.clear(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case "save":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.save(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type canvasResponse struct {
	Drawing bool          `json:"drawing"`
	Strokes []draw.Stroke `json:"strokes"`
	Current *draw.Stroke  `json:"current"`
}

type saveCanvasRequest struct {
	Name string `json:"name"`
}

// snapshot handles GET /api/canvas.
func (h *CanvasHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	strokes, current := h.engine.Snapshot()
	if strokes == nil {
		strokes = []draw.Stroke{}
	}

	writeJSON(w, http.StatusOK, canvasResponse{
		Drawing: h.engine.Drawing(),
		Strokes: strokes,
		Current: current,
	})
}

// clear handles DELETE /api/canvas and wipes the live canvas.
func (h *CanvasHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.engine.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// save handles POST /api/canvas/save. The finished strokes become a new
// drawing; a stroke still in progress is not included. The canvas keeps
// its content so drawing can continue, the client clears it explicitly.
func (h *CanvasHandler) save(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "No store configured")
		return
	}

	var req saveCanvasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	strokes, _ := h.engine.Snapshot()
	if len(strokes) == 0 {
		writeError(w, http.StatusBadRequest, "Canvas is empty")
		return
	}

	name := req.Name
	if name == "" {
		name = "Drawing " + time.Now().Format("2006-01-02 15:04:05")
	}

	d := &store.Drawing{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := h.store.Drawings().Create(d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create drawing")
		return
	}
	if err := h.store.Strokes().Replace(d.ID, strokes); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save strokes")
		return
	}
	d.StrokeCount = len(strokes)

	h.autoExport(d, strokes)

	writeJSON(w, http.StatusCreated, toResponse(d))
}

// autoExport runs the configured export plugin after a save, if the
// export.auto setting names a format. Failures are logged, never fatal:
// the drawing is already saved.
func (h *CanvasHandler) autoExport(d *store.Drawing, strokes []draw.Stroke) {
	if h.exporter == nil {
		return
	}

	format, err := h.store.Settings().Get(store.SettingAutoExport)
	if err != nil || format == "" {
		return
	}

	resp, err := h.exporter.Export(d.Name, strokes, format, defaultCanvasWidth, defaultCanvasHeight)
	if err != nil {
		log.Printf("auto export of %q as %s failed: %v", d.Name, format, err)
		return
	}
	log.Printf("auto exported %q to %s", d.Name, resp.Path)
}
