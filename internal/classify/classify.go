// Package classify decides hand poses from detected landmarks.
//
// Every function takes one hand's landmarks plus the pixel dimensions of
// the frame they came from and returns a verdict for that frame alone.
// Nothing is retained between calls and no goroutines are involved, so
// the pipeline can classify both hands of every frame independently; any
// smoothing across frames is the caller's business.
package classify

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zdtango/finger-drawing/internal/detector"
)

// Result bundles every per-hand pose verdict for one frame.
type Result struct {
	// Open means at least three fingers are extended.
	Open bool `json:"open"`

	// IndexOnly means the hand is pointing with just the index finger.
	// A pointing hand is never Open: pointing folds four fingers away.
	IndexOnly bool `json:"index_only"`

	// HorizontalPalm means the hand is open and held flat.
	HorizontalPalm bool `json:"horizontal_palm"`

	// PalmDirection is the unit vector from the wrist toward the middle
	// finger base, in pixel space. Zero when the hand is degenerate.
	PalmDirection mgl64.Vec2 `json:"palm_direction"`

	// PalmCenter is the mean of the wrist and the four base knuckles,
	// in pixel coordinates.
	PalmCenter mgl64.Vec2 `json:"palm_center"`
}

// Classify runs every pose check against one hand.
func Classify(hand *detector.Hand, width, height int) Result {
	return Result{
		Open:           HandOpen(hand, width, height),
		IndexOnly:      IndexFingerOnly(hand, width, height),
		HorizontalPalm: HorizontalOpenPalm(hand, width, height),
		PalmDirection:  PalmDirection(hand, width, height),
		PalmCenter:     PalmCenter(hand, width, height),
	}
}
