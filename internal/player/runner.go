// Package player plays sound files through external command-line audio players.
package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for a killed player's output pipes.
// On unix the player's whole process group is killed, so this only applies
// when a descendant escapes the group.
const waitDelay = 500 * time.Millisecond

// Runner resolves and runs external commands.
type Runner interface {
	// LookPath resolves name to an executable on PATH.
	LookPath(name string) (string, error)

	// Run starts path with args and waits for it to exit.
	// Returns nil only when the process exits with status zero. When ctx
	// ends first the process is killed; Run may then wait up to waitDelay
	// more for its output.
	Run(ctx context.Context, path string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner. Output is captured and attached to the error on failure.
func (r *ExecRunner) Run(ctx context.Context, path string, args ...string) error {
	var output bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = waitDelay
	killGroupOnCancel(cmd)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", path, ErrTimeout)
	}

	if msg := strings.TrimSpace(output.String()); msg != "" {
		return &CommandError{Path: path, Output: msg, Err: err}
	}
	return &CommandError{Path: path, Err: err}
}

// CommandError is returned when a player exits unsuccessfully.
type CommandError struct {
	Path   string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Path + ": " + e.Err.Error() + ": " + e.Output
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
