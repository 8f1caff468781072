package classify

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zdtango/finger-drawing/internal/detector"
)

// Orientation thresholds for the flat-palm check.
const (
	// facingZ is how much of the unit palm normal must point along the
	// camera axis before the palm counts as turned toward or away from it.
	facingZ = 0.1

	// levelRatio caps the fingertip-to-wrist height gap for the level
	// fallback, as a fraction of the wrist-to-index-knuckle span.
	levelRatio = 0.5
)

// palmLandmarks are averaged for the palm center: the wrist plus the base
// knuckle of each finger.
var palmLandmarks = [5]int{
	detector.Wrist,
	detector.IndexMCP,
	detector.MiddleMCP,
	detector.RingMCP,
	detector.PinkyMCP,
}

// levelTips are the fingertips whose mean height feeds the level check.
var levelTips = [3]int{detector.IndexTip, detector.MiddleTip, detector.RingTip}

// HorizontalOpenPalm reports whether an open hand is held flat.
//
// The palm normal is the cross product of the wrist-to-index-knuckle and
// wrist-to-pinky-knuckle vectors in pixel space. The verdict is lenient
// on purpose: either sign of the normal's camera-axis component passes,
// and when the depth estimate leaves the normal in the image plane the
// check falls back to whether the fingertips sit level with the wrist.
// A hand that is not open never qualifies.
func HorizontalOpenPalm(hand *detector.Hand, width, height int) bool {
	if !HandOpen(hand, width, height) {
		return false
	}

	toIndex := knuckleSpan(hand, detector.IndexMCP, width, height)
	toPinky := knuckleSpan(hand, detector.PinkyMCP, width, height)

	normal := toIndex.Cross(toPinky)
	if normal.Len() == 0 {
		return false
	}
	normal = normal.Normalize()

	if normal.Z() < -facingZ || normal.Z() > facingZ {
		return true
	}
	return fingertipsLevel(hand, toIndex.Len(), height)
}

// knuckleSpan builds the wrist-to-knuckle vector in pixel space. Depth
// has no calibrated unit of its own, so z borrows the width scale.
func knuckleSpan(hand *detector.Hand, landmark, width, height int) mgl64.Vec3 {
	wrist := hand.Points[detector.Wrist]
	p := hand.Points[landmark]
	return mgl64.Vec3{
		(p.X - wrist.X) * float64(width),
		(p.Y - wrist.Y) * float64(height),
		(p.Z - wrist.Z) * float64(width),
	}
}

func fingertipsLevel(hand *detector.Hand, span float64, height int) bool {
	var sum float64
	for _, tip := range levelTips {
		sum += py(hand.Points[tip], height)
	}
	mean := sum / float64(len(levelTips))
	wrist := py(hand.Points[detector.Wrist], height)
	return math.Abs(mean-wrist) < levelRatio*span
}

// PalmDirection returns the unit vector from the wrist toward the middle
// finger base, in pixel space. It points up for an upright hand and
// rotates with the wrist.
//
// When the two landmarks coincide there is no direction; the zero vector
// is returned as a sentinel and callers must check for it rather than
// assume unit length.
func PalmDirection(hand *detector.Hand, width, height int) mgl64.Vec2 {
	wrist := hand.Points[detector.Wrist]
	base := hand.Points[detector.MiddleMCP]
	v := mgl64.Vec2{
		(base.X - wrist.X) * float64(width),
		(base.Y - wrist.Y) * float64(height),
	}
	if v.Len() == 0 {
		return mgl64.Vec2{}
	}
	return v.Normalize()
}

// PalmCenter returns the plain mean of the wrist and four base knuckles
// in pixel coordinates. The overlay anchors its hand indicator here, so
// the landmark set and the unweighted average are part of the contract.
func PalmCenter(hand *detector.Hand, width, height int) mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, i := range palmLandmarks {
		sum = sum.Add(mgl64.Vec2{
			px(hand.Points[i], width),
			py(hand.Points[i], height),
		})
	}
	return sum.Mul(1 / float64(len(palmLandmarks)))
}
