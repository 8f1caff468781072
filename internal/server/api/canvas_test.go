package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/plugin"
	"github.com/zdtango/finger-drawing/internal/store"
)

func seededEngine() *draw.Engine {
	engine := draw.NewEngine(draw.TriggerIndexOnly)
	engine.Restore([]draw.Stroke{{
		ID:        "stroke-1",
		Points:    []draw.Point{{X: 5, Y: 6, Timestamp: 1}, {X: 7, Y: 8, Timestamp: 2}},
		StartedAt: 1,
		EndedAt:   2,
	}})
	return engine
}

func TestCanvasHandler_Snapshot(t *testing.T) {
	handler := NewCanvasHandler(seededEngine(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/canvas", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response canvasResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Drawing {
		t.Error("expected an idle canvas")
	}
	if len(response.Strokes) != 1 {
		t.Fatalf("expected 1 stroke, got %d", len(response.Strokes))
	}
	if response.Current != nil {
		t.Error("expected no stroke in progress")
	}
}

func TestCanvasHandler_Snapshot_EmptyCanvas(t *testing.T) {
	handler := NewCanvasHandler(draw.NewEngine(draw.TriggerIndexOnly), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/canvas", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// The strokes field must decode as an empty list, not null.
	if !strings.Contains(rec.Body.String(), `"strokes":[]`) {
		t.Errorf("expected empty strokes array, got %s", rec.Body.String())
	}
}

func TestCanvasHandler_Clear(t *testing.T) {
	engine := seededEngine()
	handler := NewCanvasHandler(engine, nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/canvas", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if strokes, _ := engine.Snapshot(); len(strokes) != 0 {
		t.Error("expected an empty canvas after clear")
	}
}

func TestCanvasHandler_Save(t *testing.T) {
	s := newTestStore(t)
	handler := NewCanvasHandler(seededEngine(), s, nil)

	body := bytes.NewBufferString(`{"name": "saved sketch"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/canvas/save", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response drawingResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Name != "saved sketch" {
		t.Errorf("expected name 'saved sketch', got %q", response.Name)
	}
	if response.StrokeCount != 1 {
		t.Errorf("expected stroke_count 1, got %d", response.StrokeCount)
	}

	strokes, err := s.Strokes().ListByDrawing(response.ID)
	if err != nil {
		t.Fatalf("failed to list saved strokes: %v", err)
	}
	if len(strokes) != 1 || strokes[0].ID != "stroke-1" {
		t.Errorf("strokes not persisted: %+v", strokes)
	}
}

func TestCanvasHandler_Save_DefaultName(t *testing.T) {
	s := newTestStore(t)
	handler := NewCanvasHandler(seededEngine(), s, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/canvas/save", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response drawingResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(response.Name, "Drawing ") {
		t.Errorf("expected a generated name, got %q", response.Name)
	}
}

func TestCanvasHandler_Save_EmptyCanvas(t *testing.T) {
	s := newTestStore(t)
	handler := NewCanvasHandler(draw.NewEngine(draw.TriggerIndexOnly), s, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/canvas/save", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCanvasHandler_Save_NoStore(t *testing.T) {
	handler := NewCanvasHandler(seededEngine(), nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/canvas/save", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestCanvasHandler_Save_AutoExport(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins are not runnable on Windows")
	}

	s := newTestStore(t)
	if err := s.Settings().Set(store.SettingAutoExport, "svg"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	// A fake svg plugin that leaves a marker in its own directory.
	pluginRoot := t.TempDir()
	pluginDir := filepath.Join(pluginRoot, "svg-export")
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	manifest := `{"name":"svg-export","version":"1.0.0","executable":"svg-export.sh","formats":["svg"]}`
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	script := `#!/bin/sh
cat > /dev/null
touch exported.marker
echo '{"success":true,"path":"out.svg"}'
`
	if err := os.WriteFile(filepath.Join(pluginDir, "svg-export.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	mgr := plugin.NewManager(pluginRoot)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	exporter := NewExporter(mgr, plugin.NewExecutor(5000), t.TempDir())

	handler := NewCanvasHandler(seededEngine(), s, exporter)

	req := httptest.NewRequest(http.MethodPost, "/api/canvas/save", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(filepath.Join(pluginDir, "exported.marker")); err != nil {
		t.Error("expected the export plugin to have run")
	}
}

func TestCanvasHandler_MethodNotAllowed(t *testing.T) {
	handler := NewCanvasHandler(draw.NewEngine(draw.TriggerIndexOnly), nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/canvas", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
