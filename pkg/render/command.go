package render

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/rlaidlaw/pwdbview/pkg/selection"
)

// CommandRenderer invokes an external plotting command per export. The
// command receives the dataset root, subject, recorded signal name and the
// output path; it owns figure drawing and atomic file writes.
type CommandRenderer struct {
	// Command is the plotter executable
	Command string
	// Timeout bounds one export call
	Timeout time.Duration
}

// NewCommandRenderer creates a renderer shelling out to the given command.
func NewCommandRenderer(command string, timeout time.Duration) *CommandRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CommandRenderer{Command: command, Timeout: timeout}
}

// Display is a no-op: the interactive viewport renders items itself.
func (r *CommandRenderer) Display(item selection.Item) error {
	return nil
}

// Export runs the plotter for one item.
func (r *CommandRenderer) Export(item selection.Item, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	name := item.HeaderName
	if name == "" {
		name = item.Key.Name()
	}

	cmd := exec.CommandContext(ctx, r.Command,
		"--root", item.Root,
		"--subject", strconv.Itoa(item.Subject),
		"--signal", name,
		"--out", path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w (%s)", r.Command, err, string(out))
	}
	return nil
}
