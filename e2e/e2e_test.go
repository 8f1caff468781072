package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/zdtango/finger-drawing/internal/app"
	"github.com/zdtango/finger-drawing/internal/classify"
	"github.com/zdtango/finger-drawing/internal/detector"
	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/plugin"
	"github.com/zdtango/finger-drawing/internal/server"
	"github.com/zdtango/finger-drawing/internal/store"
)

// loadHand reads a recorded hand fixture from testdata/hands.
func loadHand(t *testing.T, name string) detector.Hand {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "hands", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}

	var h detector.Hand
	if err := json.Unmarshal(data, &h); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return h
}

// moved returns a copy of h with the index fingertip shifted, simulating
// hand movement between frames.
func moved(h detector.Hand, dx, dy float64) detector.Hand {
	h.Points[detector.IndexTip].X += dx
	h.Points[detector.IndexTip].Y += dy
	return h
}

// step feeds one detected frame through classification and the engine,
// resolving roles the way the pipeline does.
func step(engine *draw.Engine, hands []detector.Hand, width, height int, now int64) {
	var cursor *draw.Point
	requested := false

	for i := range hands {
		hand := &hands[i]
		pose := classify.Classify(hand, width, height)

		switch draw.RoleFor(hand.Handedness) {
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
				requested = engine.TriggerActive(pose)
			}
		}
	}

	engine.Advance(requested, cursor)
}

func TestE2E_DrawAndSaveWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	engine := draw.NewEngine(draw.TriggerIndexOnly)

	trigger := loadHand(t, "pointing_right.json")
	cursor := loadHand(t, "open_left.json")
	fist := loadHand(t, "fist_right.json")

	// Each Detect call stands in for one camera frame: three frames with
	// the trigger hand pointing, then a fist to lift the pen.
	mock := detector.NewMockDetector()
	frames := [][]detector.Hand{
		{trigger, cursor},
		{trigger, moved(cursor, 0.05, 0.02)},
		{trigger, moved(cursor, 0.10, 0.05)},
		{fist, cursor},
	}
	for i, hands := range frames {
		mock.SetHands(hands)
		detected, err := mock.Detect(nil)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		step(engine, detected, 640, 480, int64(1000+i))
	}

	if engine.Drawing() {
		t.Fatal("engine still drawing after the fist frame")
	}

	srv := server.New(server.Config{Store: s, Engine: engine})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()
	var drawingID string

	t.Run("Canvas", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/canvas")
		if err != nil {
			t.Fatalf("get canvas error = %v", err)
		}
		defer resp.Body.Close()

		var canvas struct {
			Drawing bool          `json:"drawing"`
			Strokes []draw.Stroke `json:"strokes"`
			Current *draw.Stroke  `json:"current"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&canvas); err != nil {
			t.Fatalf("decode canvas error = %v", err)
		}

		if canvas.Drawing {
			t.Error("canvas reports drawing in progress")
		}
		if len(canvas.Strokes) != 1 {
			t.Fatalf("len(canvas.Strokes) = %d, want 1", len(canvas.Strokes))
		}
		if got := len(canvas.Strokes[0].Points); got != 3 {
			t.Errorf("stroke has %d points, want 3", got)
		}

		// The first sample sits where the cursor fixture's index tip was.
		want := cursor.Points[detector.IndexTip].X * 640
		if got := canvas.Strokes[0].Points[0].X; got != want {
			t.Errorf("first point X = %v, want %v", got, want)
		}
	})

	t.Run("Save", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/canvas/save",
			"application/json",
			strings.NewReader(`{"name": "first sketch"}`),
		)
		if err != nil {
			t.Fatalf("save error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("save status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var saved struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			StrokeCount int    `json:"stroke_count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
			t.Fatalf("decode save response error = %v", err)
		}
		if saved.Name != "first sketch" || saved.StrokeCount != 1 {
			t.Errorf("saved = %+v, want name %q with 1 stroke", saved, "first sketch")
		}
		drawingID = saved.ID
	})

	t.Run("Strokes", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/drawings/" + drawingID + "/strokes")
		if err != nil {
			t.Fatalf("get strokes error = %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Strokes []draw.Stroke `json:"strokes"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode strokes error = %v", err)
		}
		if len(body.Strokes) != 1 {
			t.Fatalf("len(body.Strokes) = %d, want 1", len(body.Strokes))
		}
		if got := body.Strokes[0].StartedAt; got != 1000 {
			t.Errorf("StartedAt = %d, want 1000", got)
		}
	})

	t.Run("Health", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})
}

func TestE2E_ExportDrawing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}
	if runtime.GOOS == "windows" {
		t.Skip("plugin scripts need a shell")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	engine := draw.NewEngine(draw.TriggerIndexOnly)
	engine.Restore([]draw.Stroke{
		{
			ID:        "stroke-1",
			Points:    []draw.Point{{X: 10, Y: 10, Timestamp: 1}, {X: 90, Y: 40, Timestamp: 2}},
			StartedAt: 1,
			EndedAt:   2,
		},
	})

	// A fake svg plugin standing in for the real export binary.
	pluginDir := t.TempDir()
	dir := filepath.Join(pluginDir, "svg-export")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir error = %v", err)
	}
	manifest := `{"name": "svg-export", "version": "1.0.0", "description": "fake", "executable": "svg-export.sh", "formats": ["svg"]}`
	if err := os.WriteFile(filepath.Join(dir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("write manifest error = %v", err)
	}
	script := "#!/bin/sh\ncat > /dev/null\necho '{\"success\": true, \"path\": \"/tmp/e2e-demo.svg\"}'\n"
	if err := os.WriteFile(filepath.Join(dir, "svg-export.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("write script error = %v", err)
	}

	mgr := plugin.NewManager(pluginDir)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	srv := server.New(server.Config{
		Store:     s,
		Engine:    engine,
		Plugins:   mgr,
		Executor:  plugin.NewExecutor(5000),
		ExportDir: t.TempDir(),
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	resp, err := client.Post(ts.URL+"/api/canvas/save", "application/json", strings.NewReader(`{"name": "demo"}`))
	if err != nil {
		t.Fatalf("save error = %v", err)
	}
	var saved struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatalf("decode save response error = %v", err)
	}
	resp.Body.Close()

	resp, err = client.Post(
		ts.URL+"/api/drawings/"+saved.ID+"/export",
		"application/json",
		strings.NewReader(`{"format": "svg"}`),
	)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var exported struct {
		Format string `json:"format"`
		Path   string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&exported); err != nil {
		t.Fatalf("decode export response error = %v", err)
	}
	if exported.Format != "svg" || exported.Path != "/tmp/e2e-demo.svg" {
		t.Errorf("exported = %+v, want svg at /tmp/e2e-demo.svg", exported)
	}
}

func TestE2E_SettingsPersistAcrossRestart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	dbPath := filepath.Join(t.TempDir(), "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}

	engine := draw.NewEngine(draw.TriggerIndexOnly)
	srv := server.New(server.Config{Store: s, Engine: engine})
	ts := httptest.NewServer(srv)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/settings", strings.NewReader(`{"trigger_mode": "open"}`))
	if err != nil {
		t.Fatalf("new request error = %v", err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("put settings error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put settings status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// The running engine picks the mode up immediately.
	if got := engine.Mode(); got != draw.TriggerOpenHand {
		t.Errorf("Mode() = %q, want %q", got, draw.TriggerOpenHand)
	}

	ts.Close()
	s.Close()

	// A fresh process start reads the mode back from the store.
	s2, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("reopen store error = %v", err)
	}
	defer s2.Close()

	a := app.New(app.Config{Store: s2})
	if err := a.LoadSettings(); err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got := a.Engine().Mode(); got != draw.TriggerOpenHand {
		t.Errorf("Mode() after restart = %q, want %q", got, draw.TriggerOpenHand)
	}
}
