// Package app runs the capture-to-canvas pipeline: camera frames in,
// classified hands through the drawing engine, snapshots out.
package app

import (
	"errors"
	"log"
	"sync"

	"github.com/zdtango/finger-drawing/internal/capture"
	"github.com/zdtango/finger-drawing/internal/detector"
	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate while hands are being tracked.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	TriggerMode  draw.TriggerMode
}

// App owns the pipeline pieces and their lifecycle.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	engine   *draw.Engine

	// OnSnapshot, when set, receives one Snapshot per processed frame.
	// Set it before Start.
	OnSnapshot func(Snapshot)

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	mode := config.TriggerMode
	if mode == "" {
		mode = draw.TriggerIndexOnly
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		motion:  capture.NewMotionDetector(motionThreshold),
		engine:  draw.NewEngine(mode),
		enabled: false,
		stopCh:  nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables hand tracking. Disabling while a stroke
// is in progress seals it; the pipeline stops feeding the engine, so the
// stroke would otherwise stay open indefinitely.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.engine.Advance(false, nil)
	}
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// LoadSettings applies persisted settings to the running pipeline.
func (a *App) LoadSettings() error {
	if a.config.Store == nil {
		return nil
	}

	value, err := a.config.Store.Settings().Get(store.SettingTriggerMode)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	mode, err := draw.ParseTriggerMode(value)
	if err != nil {
		log.Printf("Ignoring saved trigger mode: %v", err)
		return nil
	}

	a.engine.SetMode(mode)
	log.Printf("Trigger mode: %s", mode)
	return nil
}

// Start begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the tracking pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the drawing engine.
func (a *App) Engine() *draw.Engine {
	return a.engine
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
