package player

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jmylchreest/chime/internal/config"
)

// Playback errors.
var (
	ErrNoPlayer       = errors.New("no audio player available")
	ErrPlaybackFailed = errors.New("audio playback failed")
	ErrTimeout        = errors.New("player timed out")
)

// Candidate is a configured player command and where it resolved.
type Candidate struct {
	Priority int    `json:"priority" yaml:"priority"`
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"` // Empty when not on PATH
}

// Found reports whether the candidate resolved to an executable.
func (c Candidate) Found() bool {
	return c.Path != ""
}

// Attempt records one failed player invocation.
type Attempt struct {
	Name string
	Err  error
}

// PlaybackError is returned when every available player failed.
type PlaybackError struct {
	File     string
	Attempts []Attempt
}

func (e *PlaybackError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Name+": "+a.Err.Error())
	}
	return ErrPlaybackFailed.Error() + " for " + e.File + " (" + strings.Join(parts, "; ") + ")"
}

// Is makes errors.Is(err, ErrPlaybackFailed) match.
func (e *PlaybackError) Is(target error) bool {
	return target == ErrPlaybackFailed
}

// Dispatcher plays files with the first working player from a fixed priority list.
// Candidates are resolved once in NewDispatcher and never change afterwards.
type Dispatcher struct {
	logger     *slog.Logger
	runner     Runner
	timeout    time.Duration
	candidates []Candidate
	available  bool
}

// NewDispatcher resolves the configured players and creates a Dispatcher.
func NewDispatcher(runner Runner, cfg config.PlaybackConfig, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = NewExecRunner()
	}

	timeout := cfg.Timeout.Duration()
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	names := cfg.Players
	if len(names) == 0 {
		names = config.DefaultPlayers
	}

	d := &Dispatcher{
		logger:     logger,
		runner:     runner,
		timeout:    timeout,
		candidates: make([]Candidate, 0, len(names)),
	}

	for i, name := range names {
		c := Candidate{Priority: i + 1, Name: name}
		if path, err := runner.LookPath(name); err == nil && path != "" {
			c.Path = path
			d.available = true
			logger.Debug("found audio player", "name", name, "path", path)
		} else {
			logger.Debug("audio player not found", "name", name)
		}
		d.candidates = append(d.candidates, c)
	}

	return d
}

// Available reports whether any candidate resolved at construction.
func (d *Dispatcher) Available() bool {
	return d.available
}

// Candidates returns the resolution table in priority order.
func (d *Dispatcher) Candidates() []Candidate {
	out := make([]Candidate, len(d.candidates))
	copy(out, d.candidates)
	return out
}

// Timeout returns the per-player timeout.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// Play plays file with each resolved candidate in order until one succeeds.
// Returns the name of the player that succeeded. Each candidate is tried at
// most once; a failure or timeout moves on to the next.
func (d *Dispatcher) Play(ctx context.Context, file string) (string, error) {
	if !d.available {
		return "", ErrNoPlayer
	}

	var attempts []Attempt
	for _, c := range d.candidates {
		if !c.Found() {
			continue
		}

		err := d.run(ctx, c, file)
		if err == nil {
			d.logger.Debug("played sound", "player", c.Name, "file", file)
			return c.Name, nil
		}

		d.logger.Debug("audio player failed", "player", c.Name, "file", file, "error", err)
		attempts = append(attempts, Attempt{Name: c.Name, Err: err})

		// The caller gave up; don't start the remaining players
		if ctx.Err() != nil {
			break
		}
	}

	return "", &PlaybackError{File: file, Attempts: attempts}
}

// run invokes a single candidate with the per-player timeout.
func (d *Dispatcher) run(ctx context.Context, c Candidate, file string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.runner.Run(ctx, c.Path, file)
}
