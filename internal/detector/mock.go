package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a Detector whose results are scripted by the test.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector returns a detector that reports nothing until SetHands
// or SetError is called.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands every subsequent Detect call returns.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError makes every subsequent Detect call fail with err.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the scripted hands or error; the frame is ignored.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op.
func (m *MockDetector) Close() error {
	return nil
}

// The builders below construct synthetic hands for tests. Coordinates are
// normalized for a camera frame, y growing downward, and are tuned so the
// classify package reaches a definite verdict on each pose with margin to
// spare at 640x480.

// OpenHandLandmarks is an upright open hand facing the camera: all five
// fingers extended, depth roughly flat.
func OpenHandLandmarks() Hand {
	h := Hand{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.82}

	h.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76, Z: 0.01}
	h.Points[ThumbMCP] = Point3D{X: 0.63, Y: 0.72, Z: 0.01}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.67, Z: 0.01}
	h.Points[ThumbTip] = Point3D{X: 0.74, Y: 0.63, Z: 0.01}

	h.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.64}
	h.Points[IndexPIP] = Point3D{X: 0.575, Y: 0.53}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	h.Points[IndexTip] = Point3D{X: 0.585, Y: 0.37}

	h.Points[MiddleMCP] = Point3D{X: 0.51, Y: 0.62}
	h.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.50}
	h.Points[MiddleDIP] = Point3D{X: 0.51, Y: 0.41}
	h.Points[MiddleTip] = Point3D{X: 0.51, Y: 0.31}

	h.Points[RingMCP] = Point3D{X: 0.46, Y: 0.64}
	h.Points[RingPIP] = Point3D{X: 0.45, Y: 0.53}
	h.Points[RingDIP] = Point3D{X: 0.44, Y: 0.44}
	h.Points[RingTip] = Point3D{X: 0.435, Y: 0.36}

	h.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.67}
	h.Points[PinkyPIP] = Point3D{X: 0.39, Y: 0.58}
	h.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.51}
	h.Points[PinkyTip] = Point3D{X: 0.37, Y: 0.45}

	return h
}

// FistLandmarks is a closed fist: every finger folded back toward the
// palm, thumb resting against it.
func FistLandmarks() Hand {
	h := Hand{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76}
	h.Points[ThumbMCP] = Point3D{X: 0.57, Y: 0.74, Z: -0.01}
	h.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.72, Z: -0.02}
	h.Points[ThumbTip] = Point3D{X: 0.53, Y: 0.70, Z: -0.03}

	h.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.62, Z: -0.01}
	h.Points[IndexPIP] = Point3D{X: 0.54, Y: 0.60, Z: -0.03}
	h.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.64, Z: -0.03}
	h.Points[IndexTip] = Point3D{X: 0.54, Y: 0.68, Z: -0.02}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.61, Z: -0.01}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.59, Z: -0.03}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.63, Z: -0.03}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.67, Z: -0.02}

	h.Points[RingMCP] = Point3D{X: 0.46, Y: 0.62, Z: -0.01}
	h.Points[RingPIP] = Point3D{X: 0.46, Y: 0.60, Z: -0.03}
	h.Points[RingDIP] = Point3D{X: 0.46, Y: 0.64, Z: -0.03}
	h.Points[RingTip] = Point3D{X: 0.46, Y: 0.68, Z: -0.02}

	h.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.64, Z: -0.01}
	h.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.62, Z: -0.03}
	h.Points[PinkyDIP] = Point3D{X: 0.42, Y: 0.66, Z: -0.03}
	h.Points[PinkyTip] = Point3D{X: 0.42, Y: 0.70, Z: -0.02}

	return h
}

// PointingHandLandmarks is the pen-down pose: index finger extended,
// middle, ring and pinky folded, thumb tucked across the palm.
func PointingHandLandmarks() Hand {
	h := Hand{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: -0.01}
	h.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.72, Z: -0.02}
	h.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.70, Z: -0.03}
	h.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.66, Z: -0.03}

	h.Points[IndexMCP] = Point3D{X: 0.50, Y: 0.62}
	h.Points[IndexPIP] = Point3D{X: 0.50, Y: 0.52}
	h.Points[IndexDIP] = Point3D{X: 0.50, Y: 0.44}
	h.Points[IndexTip] = Point3D{X: 0.50, Y: 0.36}

	h.Points[MiddleMCP] = Point3D{X: 0.46, Y: 0.62, Z: -0.01}
	h.Points[MiddlePIP] = Point3D{X: 0.46, Y: 0.60, Z: -0.03}
	h.Points[MiddleDIP] = Point3D{X: 0.46, Y: 0.63, Z: -0.03}
	h.Points[MiddleTip] = Point3D{X: 0.46, Y: 0.66, Z: -0.02}

	h.Points[RingMCP] = Point3D{X: 0.42, Y: 0.63, Z: -0.01}
	h.Points[RingPIP] = Point3D{X: 0.42, Y: 0.61, Z: -0.03}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.64, Z: -0.03}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.67, Z: -0.02}

	h.Points[PinkyMCP] = Point3D{X: 0.38, Y: 0.65, Z: -0.01}
	h.Points[PinkyPIP] = Point3D{X: 0.38, Y: 0.63, Z: -0.03}
	h.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.66, Z: -0.03}
	h.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.69, Z: -0.02}

	return h
}

// FlatHandLandmarks is an open hand held level, fingers pointing to the
// side with fingertips at wrist height. The base-knuckle vectors project
// onto parallel image lines, so the fingertip-level fallback is what
// identifies this pose as flat.
func FlatHandLandmarks() Hand {
	h := Hand{Handedness: "Right", Score: 0.9}

	h.Points[Wrist] = Point3D{X: 0.30, Y: 0.55}

	h.Points[ThumbCMC] = Point3D{X: 0.34, Y: 0.545, Z: -0.01}
	h.Points[ThumbMCP] = Point3D{X: 0.38, Y: 0.548, Z: -0.02}
	h.Points[ThumbIP] = Point3D{X: 0.42, Y: 0.550, Z: -0.02}
	h.Points[ThumbTip] = Point3D{X: 0.46, Y: 0.552, Z: -0.02}

	h.Points[IndexMCP] = Point3D{X: 0.40, Y: 0.535, Z: -0.05}
	h.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.532, Z: -0.06}
	h.Points[IndexDIP] = Point3D{X: 0.51, Y: 0.529, Z: -0.07}
	h.Points[IndexTip] = Point3D{X: 0.56, Y: 0.526, Z: -0.08}

	h.Points[MiddleMCP] = Point3D{X: 0.405, Y: 0.534, Z: -0.02}
	h.Points[MiddlePIP] = Point3D{X: 0.47, Y: 0.531, Z: -0.03}
	h.Points[MiddleDIP] = Point3D{X: 0.53, Y: 0.528, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.585, Y: 0.525, Z: -0.05}

	h.Points[RingMCP] = Point3D{X: 0.40, Y: 0.536, Z: 0.01}
	h.Points[RingPIP] = Point3D{X: 0.465, Y: 0.533}
	h.Points[RingDIP] = Point3D{X: 0.52, Y: 0.530, Z: -0.01}
	h.Points[RingTip] = Point3D{X: 0.57, Y: 0.527, Z: -0.02}

	h.Points[PinkyMCP] = Point3D{X: 0.39, Y: 0.5365, Z: 0.04}
	h.Points[PinkyPIP] = Point3D{X: 0.44, Y: 0.534, Z: 0.03}
	h.Points[PinkyDIP] = Point3D{X: 0.48, Y: 0.5315, Z: 0.02}
	h.Points[PinkyTip] = Point3D{X: 0.52, Y: 0.529, Z: 0.01}

	return h
}

// SideOpenHandLandmarks is an open hand seen edge-on: fingers up, palm
// facing sideways. The hand is open but neither flat-palm branch fires,
// since the depth-derived normal stays near the image plane and the
// fingertips sit far above the wrist.
func SideOpenHandLandmarks() Hand {
	h := Hand{Handedness: "Right", Score: 0.9}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.53, Y: 0.75, Z: -0.03}
	h.Points[ThumbMCP] = Point3D{X: 0.54, Y: 0.70, Z: -0.05}
	h.Points[ThumbIP] = Point3D{X: 0.545, Y: 0.66, Z: -0.06}
	h.Points[ThumbTip] = Point3D{X: 0.55, Y: 0.62, Z: -0.07}

	h.Points[IndexMCP] = Point3D{X: 0.52, Y: 0.62, Z: -0.10}
	h.Points[IndexPIP] = Point3D{X: 0.525, Y: 0.53, Z: -0.11}
	h.Points[IndexDIP] = Point3D{X: 0.527, Y: 0.455, Z: -0.12}
	h.Points[IndexTip] = Point3D{X: 0.53, Y: 0.38, Z: -0.13}

	h.Points[MiddleMCP] = Point3D{X: 0.515, Y: 0.63, Z: -0.05}
	h.Points[MiddlePIP] = Point3D{X: 0.52, Y: 0.52, Z: -0.06}
	h.Points[MiddleDIP] = Point3D{X: 0.52, Y: 0.43, Z: -0.07}
	h.Points[MiddleTip] = Point3D{X: 0.525, Y: 0.35, Z: -0.08}

	h.Points[RingMCP] = Point3D{X: 0.512, Y: 0.645, Z: -0.01}
	h.Points[RingPIP] = Point3D{X: 0.515, Y: 0.54, Z: -0.02}
	h.Points[RingDIP] = Point3D{X: 0.515, Y: 0.46, Z: -0.03}
	h.Points[RingTip] = Point3D{X: 0.518, Y: 0.385, Z: -0.04}

	h.Points[PinkyMCP] = Point3D{X: 0.51, Y: 0.66, Z: 0.06}
	h.Points[PinkyPIP] = Point3D{X: 0.508, Y: 0.57, Z: 0.05}
	h.Points[PinkyDIP] = Point3D{X: 0.507, Y: 0.50, Z: 0.04}
	h.Points[PinkyTip] = Point3D{X: 0.505, Y: 0.44, Z: 0.03}

	return h
}
