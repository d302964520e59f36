package diagram

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMermaidCLIMissing is returned when the mmdc binary is not on PATH.
var ErrMermaidCLIMissing = errors.New("mermaid-cli (mmdc) not found; install with: npm install -g @mermaid-js/mermaid-cli")

// MermaidCLI renders .mmd files to images with mermaid-cli.
type MermaidCLI struct {
	binary   string
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewMermaidCLI returns a MermaidCLI that invokes "mmdc" from PATH.
func NewMermaidCLI() *MermaidCLI {
	return &MermaidCLI{
		binary:   "mmdc",
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// Resolve returns the absolute path of the mmdc binary.
func (m *MermaidCLI) Resolve() (string, error) {
	path, err := m.lookPath(m.binary)
	if err != nil {
		return "", ErrMermaidCLIMissing
	}
	return path, nil
}

// Render converts input to output on a white background. A positive width
// sets the page width in pixels.
func (m *MermaidCLI) Render(ctx context.Context, bin, input, output string, width int) error {
	args := []string{"-i", input, "-o", output, "-b", "white"}
	if width > 0 {
		args = append(args, "-w", fmt.Sprint(width))
	}

	out, err := m.run(ctx, bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("mmdc %s: %w: %s", output, err, msg)
		}
		return fmt.Errorf("mmdc %s: %w", output, err)
	}
	return nil
}
