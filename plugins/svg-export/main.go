// Package main provides the SVG export plugin.
// It renders a saved drawing's strokes into a vector image.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Request represents the export job from the plugin executor.
type Request struct {
	Format  string          `json:"format"`
	Drawing string          `json:"drawing"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Strokes json.RawMessage `json:"strokes"`
	OutDir  string          `json:"out_dir"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Point is one sampled pen position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t"`
}

// Stroke is one continuous pen-down path.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if req.Format != "svg" {
		writeErrorResponse(fmt.Sprintf("unsupported format: %s", req.Format))
		return
	}

	var strokes []Stroke
	if len(req.Strokes) > 0 {
		if err := json.Unmarshal(req.Strokes, &strokes); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to parse strokes: %v", err))
			return
		}
	}

	width, height := req.Width, req.Height
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}

	path := filepath.Join(req.OutDir, fileName(req.Drawing)+".svg")
	if err := os.WriteFile(path, []byte(render(strokes, width, height)), 0644); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to write %s: %v", path, err))
		return
	}

	writeSuccessResponse(path)
}

// render produces the SVG document: a white canvas with one polyline per
// stroke.
func render(strokes []Stroke, width, height int) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="white"/>`+"\n", width, height)

	for _, s := range strokes {
		switch len(s.Points) {
		case 0:
		case 1:
			// A single-sample stroke still leaves a mark.
			p := s.Points[0]
			fmt.Fprintf(&b, `  <circle cx="%.1f" cy="%.1f" r="1.5" fill="black"/>`+"\n", p.X, p.Y)
		default:
			pairs := make([]string, len(s.Points))
			for i, p := range s.Points {
				pairs[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
			}
			fmt.Fprintf(&b, `  <polyline points="%s" fill="none" stroke="black" stroke-width="3" stroke-linecap="round" stroke-linejoin="round"/>`+"\n", strings.Join(pairs, " "))
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// fileName turns a drawing name into a safe file name.
func fileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, name)

	if mapped == "" {
		return "drawing"
	}
	return mapped
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: false,
		Error:   errMsg,
	})
}

// writeSuccessResponse writes a success response naming the written file.
func writeSuccessResponse(path string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: true,
		Path:    path,
	})
}
