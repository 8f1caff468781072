package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Executor runs plugin executables with a per-run timeout.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates an Executor. timeoutMs bounds a single plugin run.
func NewExecutor(timeoutMs int) *Executor {
	return &Executor{timeout: time.Duration(timeoutMs) * time.Millisecond}
}

// Execute sends req to the plugin as JSON on stdin and decodes its stdout
// as a Response. The plugin runs with its own directory as the working
// directory and is killed once the timeout elapses.
func (e *Executor) Execute(plug *Plugin, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plugin request: %w", err)
	}

	cmd := exec.CommandContext(ctx, plug.Executable)
	cmd.Dir = plug.Path
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("plugin %s timed out after %s", plug.Manifest.Name, e.timeout)
	}
	if runErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("plugin %s failed: %w: %s", plug.Manifest.Name, runErr, msg)
		}
		return nil, fmt.Errorf("plugin %s failed: %w", plug.Manifest.Name, runErr)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response from plugin %s: %w", plug.Manifest.Name, err)
	}
	return &resp, nil
}
