package classify

import (
	"math"

	"github.com/zdtango/finger-drawing/internal/detector"
)

// Joint triples for the four non-thumb fingers, ordered tip, DIP, PIP.
// The vertical ordering of these three joints is what the extension and
// curl checks look at.
var fingerJoints = [4][3]int{
	{detector.IndexTip, detector.IndexDIP, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddleDIP, detector.MiddlePIP},
	{detector.RingTip, detector.RingDIP, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyDIP, detector.PinkyPIP},
}

// Slack for the folded-finger and tucked-thumb checks, in pixels of the
// source frame. These are absolute offsets, not proportional to hand size
// or resolution: the recognizer was tuned against a camera preview and
// the tuned values are part of its behavior.
const (
	curlTipSlackPx   = 5.0
	curlJointSlackPx = 15.0
	thumbTuckSlackPx = 20.0
)

// minExtended is how many extended fingers make a hand count as open.
const minExtended = 3

// HandOpen reports whether at least three of the five fingers are
// extended.
//
// The thumb counts as extended when its tip sits farther from the wrist
// horizontally than the IP joint below it. Each other finger counts when
// its tip, DIP and PIP y coordinates strictly decrease toward the tip,
// which is "pointing up" in image coordinates.
func HandOpen(hand *detector.Hand, width, height int) bool {
	count := 0
	if thumbExtended(hand, width) {
		count++
	}
	for _, joints := range fingerJoints {
		if fingerExtended(hand, joints, height) {
			count++
		}
	}
	return count >= minExtended
}

// IndexFingerOnly reports whether the hand is pointing: index finger
// extended, middle, ring and pinky folded, thumb tucked across the palm.
func IndexFingerOnly(hand *detector.Hand, width, height int) bool {
	if !fingerExtended(hand, fingerJoints[0], height) {
		return false
	}

	curled := 0
	for _, joints := range fingerJoints[1:] {
		if fingerCurled(hand, joints, height) {
			curled++
		}
	}
	return curled >= 3 && thumbTucked(hand, width)
}

func thumbExtended(hand *detector.Hand, width int) bool {
	wrist := px(hand.Points[detector.Wrist], width)
	tip := px(hand.Points[detector.ThumbTip], width)
	ip := px(hand.Points[detector.ThumbIP], width)
	return math.Abs(tip-wrist) > math.Abs(ip-wrist)
}

// thumbTucked mirrors thumbExtended with extra slack so a thumb resting
// loosely against the palm still counts as tucked.
func thumbTucked(hand *detector.Hand, width int) bool {
	wrist := px(hand.Points[detector.Wrist], width)
	tip := px(hand.Points[detector.ThumbTip], width)
	ip := px(hand.Points[detector.ThumbIP], width)
	return math.Abs(tip-wrist) <= math.Abs(ip-wrist)+thumbTuckSlackPx
}

func fingerExtended(hand *detector.Hand, joints [3]int, height int) bool {
	tip := py(hand.Points[joints[0]], height)
	dip := py(hand.Points[joints[1]], height)
	pip := py(hand.Points[joints[2]], height)
	return tip < dip && dip < pip
}

// fingerCurled is not the complement of fingerExtended: it wants the tip
// folded clearly below the DIP while the DIP stays level with or above
// the PIP, so a half-relaxed finger matches neither check.
func fingerCurled(hand *detector.Hand, joints [3]int, height int) bool {
	tip := py(hand.Points[joints[0]], height)
	dip := py(hand.Points[joints[1]], height)
	pip := py(hand.Points[joints[2]], height)
	return tip > dip+curlTipSlackPx && dip >= pip-curlJointSlackPx
}

// px and py project a normalized landmark into frame pixels.
func px(p detector.Point3D, width int) float64 {
	return p.X * float64(width)
}

func py(p detector.Point3D, height int) float64 {
	return p.Y * float64(height)
}
