// Package detector turns camera frames into hand landmarks for the
// drawing pipeline.
package detector

import "gocv.io/x/gocv"

// Detector is the source of hand landmarks for one video stream.
type Detector interface {
	// Detect analyzes a single frame and returns every hand found in it,
	// in tracker order. An empty slice means no hands, not an error.
	Detect(frame *gocv.Mat) ([]Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds the tracker knobs shared by every Detector implementation.
type Config struct {
	// MaxHands caps how many hands are reported per frame. The drawing
	// pipeline wants two: one cursor hand and one trigger hand.
	MaxHands int

	// MinConfidence is the minimum detection confidence (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns the settings the pipeline runs with out of the box.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
