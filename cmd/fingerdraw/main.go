package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/zdtango/finger-drawing/internal/app"
	"github.com/zdtango/finger-drawing/internal/draw"
	"github.com/zdtango/finger-drawing/internal/plugin"
	"github.com/zdtango/finger-drawing/internal/server"
	"github.com/zdtango/finger-drawing/internal/store"
	"github.com/zdtango/finger-drawing/internal/tray"
)

func main() {
	var (
		addr      = flag.String("addr", ":8080", "HTTP listen address")
		cameraID  = flag.Int("camera", 0, "Camera device ID")
		trigger   = flag.String("trigger", "", "Trigger mode: point or open (overrides the saved setting)")
		pluginDir = flag.String("plugins", "", "Export plugin directory")
		staticDir = flag.String("static", "", "Overlay page directory")
		withTray  = flag.Bool("tray", false, "Show the system tray menu")
	)
	flag.Parse()

	fmt.Println("Fingerdraw - Finger Drawing")

	// Data lives under the user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".fingerdraw")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	exportDir := filepath.Join(dataDir, "exports")
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		log.Fatalf("Failed to create export directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "fingerdraw.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// The flag wins over the saved setting.
	var mode draw.TriggerMode
	if *trigger != "" {
		mode, err = draw.ParseTriggerMode(*trigger)
		if err != nil {
			log.Fatalf("Invalid -trigger: %v", err)
		}
	}

	a := app.New(app.Config{
		Store:       st,
		CameraID:    *cameraID,
		TriggerMode: mode,
	})
	if *trigger == "" {
		if err := a.LoadSettings(); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	plugins := plugin.NewManager(resolvePluginDir(*pluginDir))
	if err := plugins.Discover(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	} else {
		log.Printf("Discovered %d export plugins in %s", len(plugins.List()), plugins.PluginDir())
	}

	webDir := *staticDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving the overlay page from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Engine:    a.Engine(),
		Plugins:   plugins,
		Executor:  plugin.NewExecutor(5000),
		ExportDir: exportDir,
	})

	// Every processed frame goes out to the overlay clients.
	a.OnSnapshot = func(s app.Snapshot) {
		srv.Overlay().Publish(s)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	a.SetEnabled(true)

	go func() {
		log.Printf("Starting server on %s", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *withTray {
		// systray.Run must own the main goroutine; it blocks until Quit.
		runTray(a, *addr)
		a.Stop()
		return
	}

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received, stopping...")
	a.Stop()
}

// runTray wires the tray menu to the running app and blocks until the
// user quits from the menu.
func runTray(a *app.App, addr string) {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnClear(func() {
		a.Engine().Clear()
		t.SetStatus("")
	})
	t.OnOverlay(func() {
		openBrowser(overlayURL(addr))
	})

	a.Engine().OnStrokeEnd = func(draw.Stroke) {
		strokes, _ := a.Engine().Snapshot()
		t.SetStatus(fmt.Sprintf("%d strokes", len(strokes)))
	}

	t.Run()
}

// overlayURL turns a listen address into something a browser can open.
func overlayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens url with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// resolvePluginDir picks the plugin directory: the flag if set, otherwise
// the first plugins directory found near the working directory or binary.
func resolvePluginDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	candidates := []string{"plugins"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "plugins"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p
		}
	}
	return "plugins"
}

// findWebDir searches for the overlay page directory in common locations.
// It checks "web", "../web", "../../web", and ~/.fingerdraw/web, returning
// the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".fingerdraw", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
