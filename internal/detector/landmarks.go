package detector

// Landmark indices for a detected hand, following the MediaPipe
// convention: the wrist first, then four joints per finger running from
// the base knuckle out to the tip.
const (
	Wrist = 0

	ThumbCMC = 1
	ThumbMCP = 2
	ThumbIP  = 3
	ThumbTip = 4

	IndexMCP = 5
	IndexPIP = 6
	IndexDIP = 7
	IndexTip = 8

	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12

	RingMCP = 13
	RingPIP = 14
	RingDIP = 15
	RingTip = 16

	PinkyMCP = 17
	PinkyPIP = 18
	PinkyDIP = 19
	PinkyTip = 20

	// NumLandmarks is how many points the tracker reports per hand.
	NumLandmarks = 21
)

// Point3D is a single landmark position. X and Y are normalized to [0, 1]
// relative to the frame they were detected in; Z is a relative depth
// estimate with no calibrated unit, negative toward the camera.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand: a fixed array of 21 landmarks plus the
// tracker's handedness label and confidence score.
//
// Handedness is "Left" or "Right" as seen by the tracker. The camera feed
// is mirrored, so the label names the opposite of the user's physical
// hand. Role assignment in the draw package depends on that inversion;
// nothing in this package tries to undo it.
type Hand struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"`
	Score      float64               `json:"score"`
}
