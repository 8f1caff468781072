package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// idleShutdownAfter is how long the tracker subprocess may sit unused
// before it is stopped. It restarts lazily on the next Detect call.
const idleShutdownAfter = 30 * time.Second

// MediaPipeDetector runs MediaPipe hand tracking in a Python subprocess.
//
// The wire protocol is one JPEG frame in, one JSON line out: each request
// is a 4-byte big-endian length prefix followed by the encoded frame, and
// each response is a single line of the form {"hands": [...]}.
type MediaPipeDetector struct {
	config Config

	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	running   bool
	idleTimer *time.Timer
}

// NewMediaPipeDetector verifies the tracker service is installed and
// returns a detector for it. The subprocess itself starts lazily on the
// first Detect call.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	if findTrackerScript() == "" {
		return nil, fmt.Errorf("hand_tracker.py not found")
	}
	return &MediaPipeDetector{config: config}, nil
}

// Detect sends one frame to the tracker and decodes the hands it reports.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureRunning(); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()
	data := buf.GetBytes()

	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(data)))
	if _, err := d.stdin.Write(header); err != nil {
		return nil, fmt.Errorf("write frame header: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write frame: %w", err)
	}

	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read tracker response: %w", err)
	}

	var response struct {
		Hands []wireHand `json:"hands"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse tracker response: %w", err)
	}

	hands := make([]Hand, len(response.Hands))
	for i, h := range response.Hands {
		hands[i] = h.toHand()
	}

	d.resetIdleTimer()
	return hands, nil
}

// Close stops the tracker subprocess if it is running.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MediaPipeDetector) ensureRunning() error {
	if d.running {
		return nil
	}

	script := findTrackerScript()
	if script == "" {
		return fmt.Errorf("hand_tracker.py not found")
	}

	python := findVenvPython()
	if python == "" {
		python = "python3"
	}

	d.cmd = exec.Command(python, script,
		"--max-hands", strconv.Itoa(d.config.MaxHands),
		"--min-confidence", strconv.FormatFloat(d.config.MinConfidence, 'f', -1, 64),
		"--min-tracking", strconv.FormatFloat(d.config.MinTrackingConf, 'f', -1, 64),
	)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start hand tracker: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.running = true
	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.running {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.running = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil
	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(idleShutdownAfter, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

// findTrackerScript locates hand_tracker.py next to the binary, in the
// working tree, or in the user's install directory.
func findTrackerScript() string {
	var execDir string
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/hand_tracker.py",
		"../scripts/hand_tracker.py",
		filepath.Join(execDir, "scripts/hand_tracker.py"),
		filepath.Join(os.Getenv("HOME"), ".fingerdraw/scripts/hand_tracker.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// findVenvPython prefers a project virtualenv over the system python3 so
// the mediapipe wheel does not have to be installed globally.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".fingerdraw/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// wireHand mirrors the JSON shape the Python service emits. Points arrive
// as a variable-length list; anything past the expected 21 is dropped and
// missing entries stay zero.
type wireHand struct {
	Points     []wirePoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (w wireHand) toHand() Hand {
	h := Hand{
		Handedness: w.Handedness,
		Score:      w.Score,
	}
	for i := 0; i < NumLandmarks && i < len(w.Points); i++ {
		h.Points[i] = Point3D(w.Points[i])
	}
	return h
}
