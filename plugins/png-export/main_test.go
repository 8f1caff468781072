package main

import (
	"image/color"
	"testing"
)

func dark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}

func TestRenderStroke(t *testing.T) {
	strokes := []Stroke{
		{ID: "s1", Points: []Point{{X: 10, Y: 20}, {X: 50, Y: 20}}},
	}

	img := render(strokes, 100, 80)

	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 80 {
		t.Fatalf("bounds = %v, want 100x80", img.Bounds())
	}

	if !dark(img.At(30, 20)) {
		t.Error("segment midpoint not inked")
	}
	if !dark(img.At(30, 19)) {
		t.Error("pen should be thicker than one pixel")
	}
	if dark(img.At(30, 18)) {
		t.Error("ink two pixels above the segment")
	}
	if dark(img.At(90, 70)) {
		t.Error("far corner should stay white")
	}
}

func TestRenderSinglePointStroke(t *testing.T) {
	img := render([]Stroke{{ID: "dot", Points: []Point{{X: 5, Y: 5}}}}, 10, 10)

	if !dark(img.At(5, 5)) {
		t.Error("single-point stroke left no mark")
	}
}

func TestRenderClipsAtEdges(t *testing.T) {
	// A stroke running past the canvas must not panic.
	img := render([]Stroke{
		{ID: "s1", Points: []Point{{X: -10, Y: 5}, {X: 30, Y: 5}}},
	}, 20, 10)

	if !dark(img.At(10, 5)) {
		t.Error("in-canvas part of the stroke not inked")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"spiral", "spiral"},
		{"Drawing 2026-08-21 10:30:00", "Drawing-2026-08-21-103000"},
		{"../../etc/passwd", "etcpasswd"},
		{"///", "drawing"},
		{"", "drawing"},
	}

	for _, tt := range tests {
		if got := fileName(tt.in); got != tt.want {
			t.Errorf("fileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
