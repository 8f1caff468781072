// Package draw turns per-frame hand poses into strokes on a canvas.
package draw

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zdtango/finger-drawing/internal/classify"
)

// Role names what a detected hand contributes to drawing.
type Role string

const (
	// RoleCursor positions the stroke.
	RoleCursor Role = "cursor"
	// RoleTrigger starts and stops the stroke.
	RoleTrigger Role = "trigger"
)

// RoleFor maps a tracker handedness label onto a drawing role.
//
// The mapping reads inverted on purpose: the camera feed is mirrored, so
// the tracker's "Left" is the user's right hand, which does the drawing.
// Swapping the labels here to look "correct" would swap which physical
// hand holds the pen.
func RoleFor(handedness string) Role {
	if handedness == "Left" {
		return RoleCursor
	}
	return RoleTrigger
}

// TriggerMode selects which pose of the trigger hand keeps the pen down.
type TriggerMode string

const (
	// TriggerOpenHand draws while the trigger hand is held open.
	TriggerOpenHand TriggerMode = "open"
	// TriggerIndexOnly draws while the trigger hand points with its index
	// finger. This is the default: pointing is harder to hit by accident
	// than an open hand.
	TriggerIndexOnly TriggerMode = "point"
)

// ParseTriggerMode converts a setting or flag value into a TriggerMode.
func ParseTriggerMode(s string) (TriggerMode, error) {
	switch TriggerMode(s) {
	case TriggerOpenHand:
		return TriggerOpenHand, nil
	case TriggerIndexOnly:
		return TriggerIndexOnly, nil
	}
	return "", fmt.Errorf("unknown trigger mode %q", s)
}

// MaxStrokePoints caps how many points a finished stroke keeps. Longer
// strokes are resampled down so canvas memory stays bounded no matter how
// long the pen is held.
const MaxStrokePoints = 512

// Engine is the drawing state machine. It is either idle or drawing: a
// frame where the trigger hand requests drawing and a cursor is visible
// starts or extends the current stroke, any other frame while drawing
// seals the stroke into the canvas history.
//
// All methods are safe for concurrent use; the capture pipeline advances
// the engine while HTTP handlers read snapshots of it.
type Engine struct {
	mu      sync.RWMutex
	mode    TriggerMode
	drawing bool
	current *Stroke
	strokes []Stroke

	// OnStrokeEnd, when set, is called with each finished stroke, outside
	// the engine lock.
	OnStrokeEnd func(Stroke)
}

// NewEngine returns an idle engine with an empty canvas.
func NewEngine(mode TriggerMode) *Engine {
	return &Engine{mode: mode}
}

// Mode returns the configured trigger mode.
func (e *Engine) Mode() TriggerMode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// SetMode changes which trigger pose keeps the pen down. It does not end
// a stroke in progress; the next Advance call decides that.
func (e *Engine) SetMode(mode TriggerMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = mode
}

// TriggerActive resolves the configured trigger pose against one
// classification result.
func (e *Engine) TriggerActive(r classify.Result) bool {
	if e.Mode() == TriggerOpenHand {
		return r.Open
	}
	return r.IndexOnly
}

// Advance feeds one frame into the state machine. requested is whether
// the trigger hand is asking to draw; cursor is the drawing position, nil
// when no cursor hand is visible. Losing either hand while drawing ends
// the stroke.
func (e *Engine) Advance(requested bool, cursor *Point) {
	var ended *Stroke

	e.mu.Lock()
	switch {
	case !e.drawing && requested && cursor != nil:
		e.current = &Stroke{
			ID:        uuid.New().String(),
			Points:    []Point{*cursor},
			StartedAt: cursor.Timestamp,
		}
		e.drawing = true
	case e.drawing && requested && cursor != nil:
		e.current.Points = append(e.current.Points, *cursor)
	case e.drawing:
		ended = e.sealLocked()
	}
	cb := e.OnStrokeEnd
	e.mu.Unlock()

	if ended != nil && cb != nil {
		cb(*ended)
	}
}

// sealLocked moves the current stroke into the history. Callers must hold
// the write lock.
func (e *Engine) sealLocked() *Stroke {
	s := *e.current
	if len(s.Points) > MaxStrokePoints {
		s = s.Resample(MaxStrokePoints)
	}
	s.EndedAt = s.Points[len(s.Points)-1].Timestamp
	e.strokes = append(e.strokes, s)
	e.current = nil
	e.drawing = false
	return &s
}

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.drawing
}

// Snapshot returns copies of the finished strokes and the stroke in
// progress, which is nil while idle.
func (e *Engine) Snapshot() ([]Stroke, *Stroke) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	strokes := make([]Stroke, len(e.strokes))
	copy(strokes, e.strokes)

	var current *Stroke
	if e.current != nil {
		c := *e.current
		c.Points = make([]Point, len(e.current.Points))
		copy(c.Points, e.current.Points)
		current = &c
	}
	return strokes, current
}

// Restore replaces the canvas with previously saved strokes. Any stroke
// in progress is discarded.
func (e *Engine) Restore(strokes []Stroke) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.strokes = make([]Stroke, len(strokes))
	copy(e.strokes, strokes)
	e.current = nil
	e.drawing = false
}

// Clear drops every stroke, finished or not.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.strokes = nil
	e.current = nil
	e.drawing = false
}
