package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/zdtango/finger-drawing/internal/classify"
	"github.com/zdtango/finger-drawing/internal/detector"
	"github.com/zdtango/finger-drawing/internal/draw"
)

// HandState is one classified hand within a snapshot.
type HandState struct {
	Hand detector.Hand   `json:"hand"`
	Role draw.Role       `json:"role"`
	Pose classify.Result `json:"pose"`
}

// Snapshot is the pipeline's view of one processed frame: the hands it
// saw, what the engine made of them, and the canvas afterwards. This is
// what overlay clients receive.
type Snapshot struct {
	Timestamp int64         `json:"timestamp"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Hands     []HandState   `json:"hands"`
	Drawing   bool          `json:"drawing"`
	Strokes   []draw.Stroke `json:"strokes"`
	Current   *draw.Stroke  `json:"current,omitempty"`
}

// runPipeline is the main tracking loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run hand detection
// 4. Classify hands, resolve roles, advance the drawing engine
// 5. Publish a snapshot per processed frame
// 6. After 2s no motion, switch back to idle mode and seal any open stroke
func (a *App) runPipeline() {
	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					// A stroke cannot stay open once detection goes quiet.
					a.engine.Advance(false, nil)
					log.Println("Switched to idle mode")
				}
			}

			// Skip detection if not in active mode
			if !activeMode {
				frame.Close()
				continue
			}

			a.processFrame(frame)
			frame.Close()
		}
	}
}

// processFrame runs detection on one frame and feeds the result through
// the engine.
func (a *App) processFrame(frame *gocv.Mat) {
	width, height := frame.Cols(), frame.Rows()

	hands, err := a.Detector().Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return
	}

	a.advance(hands, width, height, time.Now().UnixMilli())
}

// advance classifies the detected hands, resolves their roles, and moves
// the drawing engine one frame forward. An empty hand list still counts
// as a frame: losing both hands is how a stroke ends.
func (a *App) advance(hands []detector.Hand, width, height int, now int64) {
	states := make([]HandState, 0, len(hands))

	var cursor *draw.Point
	requested := false

	for i := range hands {
		hand := &hands[i]
		pose := classify.Classify(hand, width, height)
		role := draw.RoleFor(hand.Handedness)

		switch role {
		case draw.RoleCursor:
			if cursor == nil {
				tip := hand.Points[detector.IndexTip]
				cursor = &draw.Point{
					X:         tip.X * float64(width),
					Y:         tip.Y * float64(height),
					Timestamp: now,
				}
			}
		case draw.RoleTrigger:
			if !requested {
				requested = a.engine.TriggerActive(pose)
			}
		}

		states = append(states, HandState{Hand: *hand, Role: role, Pose: pose})
	}

	a.engine.Advance(requested, cursor)

	if cb := a.OnSnapshot; cb != nil {
		strokes, current := a.engine.Snapshot()
		cb(Snapshot{
			Timestamp: now,
			Width:     width,
			Height:    height,
			Hands:     states,
			Drawing:   a.engine.Drawing(),
			Strokes:   strokes,
			Current:   current,
		})
	}
}
