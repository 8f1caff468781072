// Package main provides the PNG export plugin.
// It rasterizes a saved drawing's strokes onto a white canvas.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// penRadius is the rasterized pen tip radius in pixels, matching the
// 3px stroke width of the SVG exporter.
const penRadius = 1.5

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

	if req.Format != "png" {
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

	img := render(strokes, width, height)

	path := filepath.Join(req.OutDir, fileName(req.Drawing)+".png")
	f, err := os.Create(path)
	if err != nil {
		writeErrorResponse(fmt.Sprintf("failed to create %s: %v", path, err))
		return
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		writeErrorResponse(fmt.Sprintf("failed to encode %s: %v", path, err))
		return
	}
	if err := f.Close(); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to close %s: %v", path, err))
		return
	}

	writeSuccessResponse(path)
}

// render rasterizes the strokes onto a white canvas.
func render(strokes []Stroke, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, s := range strokes {
		if len(s.Points) == 1 {
			stamp(img, s.Points[0].X, s.Points[0].Y)
			continue
		}
		for i := 1; i < len(s.Points); i++ {
			line(img, s.Points[i-1], s.Points[i])
		}
	}

	return img
}

// line stamps the pen along the segment at sub-pixel steps so steep and
// shallow segments come out equally solid.
func line(img *image.RGBA, a, b Point) {
	dx, dy := b.X-a.X, b.Y-a.Y

	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stamp(img, a.X+dx*t, a.Y+dy*t)
	}
}

// stamp draws the round pen tip. Out-of-canvas pixels fall off the edge;
// image.RGBA.Set discards them.
func stamp(img *image.RGBA, x, y float64) {
	minX, maxX := int(x-penRadius), int(x+penRadius)+1
	minY, maxY := int(y-penRadius), int(y+penRadius)+1

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5 - x
			cy := float64(py) + 0.5 - y
			if cx*cx+cy*cy <= penRadius*penRadius {
				img.Set(px, py, color.Black)
			}
		}
	}
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
