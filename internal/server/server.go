// Package server provides the HTTP server for the finger drawing system.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/zdtango/finger-drawing/internal/capture"
	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/plugin"
	"github.com/zdtango/finger-drawing/internal/server/api"
	"github.com/zdtango/finger-drawing/internal/store"
)

// Config holds the server configuration. Nil or empty fields disable the
// routes that depend on them.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Engine    *draw.Engine
	Plugins   *plugin.Manager
	Executor  *plugin.Executor
	ExportDir string
}

// Server is the HTTP surface of the application: the REST API, the MJPEG
// preview stream, and the overlay WebSocket.
type Server struct {
	config  Config
	mux     *http.ServeMux
	overlay *OverlayHub
	start   time.Time
}

// New creates a Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config:  config,
		mux:     http.NewServeMux(),
		overlay: NewOverlayHub(),
		start:   time.Now(),
	}
	s.setupRoutes()
	return s
}

// Overlay returns the hub that broadcasts pipeline snapshots to overlay
// clients. The pipeline publishes into it.
func (s *Server) Overlay() *OverlayHub {
	return s.overlay
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	var exporter *api.Exporter
	if s.config.Plugins != nil && s.config.Executor != nil {
		exporter = api.NewExporter(s.config.Plugins, s.config.Executor, s.config.ExportDir)
	}

	if s.config.Store != nil {
		drawingHandler := api.NewDrawingHandler(s.config.Store)

		// Route between the drawing CRUD handler and the export handler:
		// /api/drawings/{id}/export carries different dependencies.
		var exportHandler *api.ExportHandler
		if exporter != nil {
			exportHandler = api.NewExportHandler(s.config.Store, exporter)
		}
		drawingRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/export") && exportHandler != nil {
				exportHandler.ServeHTTP(w, r)
				return
			}
			drawingHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/drawings", drawingRouter)
		s.mux.Handle("/api/drawings/", drawingRouter)

		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store, s.config.Engine))
	}

	if s.config.Engine != nil {
		canvasHandler := api.NewCanvasHandler(s.config.Engine, s.config.Store, exporter)
		s.mux.Handle("/api/canvas", canvasHandler)
		s.mux.Handle("/api/canvas/", canvasHandler)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	s.mux.Handle("/api/overlay", s.overlay)

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"clients": s.overlay.ClientCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
