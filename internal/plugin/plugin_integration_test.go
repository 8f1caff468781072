package plugin

import (
	"os"
	"path/filepath"
	"testing"
)

// Exercises Discover against the export plugins shipped in this repo.
// Only the manifests are needed, so this works without building them.
func TestManager_Discover_RepoPlugins(t *testing.T) {
	root := findRepoPlugins()
	if root == "" {
		t.Skip("plugins directory not present")
	}

	mgr := NewManager(root)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	for _, tt := range []struct {
		name   string
		format string
	}{
		{"svg-export", "svg"},
		{"png-export", "png"},
	} {
		p, err := mgr.Get(tt.name)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", tt.name, err)
		}

		found := false
		for _, f := range p.Manifest.Formats {
			if f == tt.format {
				found = true
			}
		}
		if !found {
			t.Errorf("%s should advertise format %q, got %v", tt.name, tt.format, p.Manifest.Formats)
		}
		if p.Manifest.Executable == "" {
			t.Errorf("%s manifest is missing an executable", tt.name)
		}
	}
}

func findRepoPlugins() string {
	for _, dir := range []string{"../../plugins", "../../../plugins"} {
		if _, err := os.Stat(filepath.Join(dir, "svg-export", "plugin.json")); err == nil {
			return dir
		}
	}
	return ""
}
