package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrPluginNotFound is returned when no plugin matches a lookup.
var ErrPluginNotFound = errors.New("plugin not found")

// Manager discovers plugins under a directory and serves lookups by name
// or by export format.
type Manager struct {
	pluginDir string
	plugins   map[string]*Plugin
	mu        sync.RWMutex
}

// NewManager creates a Manager rooted at pluginDir. Nothing is loaded
// until Discover runs.
func NewManager(pluginDir string) *Manager {
	return &Manager{
		pluginDir: pluginDir,
		plugins:   make(map[string]*Plugin),
	}
}

// Discover rescans the plugin directory, replacing the current set. Every
// subdirectory with a valid plugin.json becomes a plugin; entries that are
// unreadable, malformed, or missing a name or executable are skipped.
// A missing plugin directory is not an error.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plugins = make(map[string]*Plugin)

	info, err := os.Stat(m.pluginDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(m.pluginDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(m.pluginDir, entry.Name())
		data, err := os.ReadFile(filepath.Join(dir, "plugin.json"))
		if err != nil {
			continue
		}

		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			continue
		}
		if manifest.Name == "" || manifest.Executable == "" {
			continue
		}

		m.plugins[manifest.Name] = &Plugin{
			Manifest:   manifest,
			Path:       dir,
			Executable: filepath.Join(dir, manifest.Executable),
		}
	}

	return nil
}

// Get returns the plugin with the given name.
func (m *Manager) Get(name string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plugins[name]
	if !ok {
		return nil, ErrPluginNotFound
	}
	return p, nil
}

// FindByFormat returns the plugin that advertises the given export format,
// compared case-insensitively. Plugins are scanned in name order, so the
// match is stable when two plugins claim the same format.
func (m *Manager) FindByFormat(format string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range m.sortedNames() {
		p := m.plugins[name]
		for _, f := range p.Manifest.Formats {
			if strings.EqualFold(f, format) {
				return p, nil
			}
		}
	}
	return nil, ErrPluginNotFound
}

// List returns all discovered plugins sorted by name.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := m.sortedNames()
	plugins := make([]*Plugin, 0, len(names))
	for _, name := range names {
		plugins = append(plugins, m.plugins[name])
	}
	return plugins
}

// PluginDir returns the directory Discover scans.
func (m *Manager) PluginDir() string {
	return m.pluginDir
}

// sortedNames assumes the caller holds at least a read lock.
func (m *Manager) sortedNames() []string {
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
