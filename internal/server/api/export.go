package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/plugin"
	"github.com/zdtango/finger-drawing/internal/store"
)

// Canvas size assumed for exports. Strokes are recorded in pixels of the
// capture frame, which uses the same defaults.
const (
	defaultCanvasWidth  = 640
	defaultCanvasHeight = 480
)

// Exporter renders drawings through export plugins.
type Exporter struct {
	plugins  *plugin.Manager
	executor *plugin.Executor
	outDir   string
}

// NewExporter creates an Exporter. Plugins write their output under
// outDir.
func NewExporter(plugins *plugin.Manager, executor *plugin.Executor, outDir string) *Exporter {
	return &Exporter{plugins: plugins, executor: executor, outDir: outDir}
}

// Export renders the strokes in the given format using whichever plugin
// advertises it. The plugin response is returned as-is on success.
func (e *Exporter) Export(name string, strokes []draw.Stroke, format string, width, height int) (*plugin.Response, error) {
	plug, err := e.plugins.FindByFormat(format)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(strokes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strokes: %w", err)
	}

	req := &plugin.Request{
		Format:  format,
		Drawing: name,
		Width:   width,
		Height:  height,
		Strokes: data,
		OutDir:  e.outDir,
	}

	resp, err := e.executor.Execute(plug, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("plugin %s: %s", plug.Manifest.Name, resp.Error)
	}
	return resp, nil
}

// ExportHandler handles POST /api/drawings/{id}/export.
type ExportHandler struct {
	store    *store.Store
	exporter *Exporter
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(s *store.Store, exporter *Exporter) *ExportHandler {
	return &ExportHandler{store: s, exporter: exporter}
}

type exportRequest struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type exportResponse struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// ServeHTTP runs an export plugin against a saved drawing.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/drawings/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[1] != "export" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	d, err := h.store.Drawings().GetByID(parts[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Drawing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get drawing")
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Format == "" {
		writeError(w, http.StatusBadRequest, "Format is required")
		return
	}
	if req.Width <= 0 {
		req.Width = defaultCanvasWidth
	}
	if req.Height <= 0 {
		req.Height = defaultCanvasHeight
	}

	strokes, err := h.store.Strokes().ListByDrawing(d.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list strokes")
		return
	}

	resp, err := h.exporter.Export(d.Name, strokes, req.Format, req.Width, req.Height)
	if err != nil {
		if errors.Is(err, plugin.ErrPluginNotFound) {
			writeError(w, http.StatusNotFound, "No plugin exports "+req.Format)
			return
		}
		writeError(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{
		Format: req.Format,
		Path:   resp.Path,
	})
}
