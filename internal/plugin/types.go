// Package plugin discovers and runs external export plugins. A plugin is a
// directory holding a plugin.json manifest next to an executable that reads
// one Request as JSON on stdin and writes one Response as JSON on stdout.
package plugin

import "encoding/json"

// Manifest describes an export plugin and the formats it can render.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Formats     []string `json:"formats"`
}

// Request is one export job, handed to the plugin on stdin.
type Request struct {
	Format  string          `json:"format"`
	Drawing string          `json:"drawing"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Strokes json.RawMessage `json:"strokes"`
	OutDir  string          `json:"out_dir"`
}

// Response is what the plugin reports back on stdout. Path names the file
// the plugin wrote; Data optionally carries an inline payload instead.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Path    string          `json:"path,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin is a discovered plugin with its manifest and location on disk.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
