package player

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/chime/internal/config"
)

// fakeRunner resolves names from a fixed table and returns scripted results.
type fakeRunner struct {
	mu      sync.Mutex
	paths   map[string]string
	results map[string]error
	block   map[string]bool // Wait for ctx to expire instead of returning
	calls   []string
	lookups []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		paths:   make(map[string]string),
		results: make(map[string]error),
		block:   make(map[string]bool),
	}
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, name)

	if path, ok := f.paths[name]; ok {
		return path, nil
	}
	return "", exec.ErrNotFound
}

func (f *fakeRunner) Run(ctx context.Context, path string, args ...string) error {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	block := f.block[path]
	err := f.results[path]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ErrTimeout
	}
	return err
}

func (f *fakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func playbackConfig(players ...string) config.PlaybackConfig {
	return config.PlaybackConfig{
		Players: players,
		Timeout: config.Duration(50 * time.Millisecond),
	}
}

func TestNewDispatcher_ResolvesOnce(t *testing.T) {
	r := newFakeRunner()
	r.paths["aplay"] = "/usr/bin/aplay"

	d := NewDispatcher(r, playbackConfig("paplay", "aplay", "play"), nil)

	assert.True(t, d.Available())
	assert.Equal(t, []string{"paplay", "aplay", "play"}, r.lookups)

	// Later PATH changes don't affect the cached result
	r.paths["paplay"] = "/usr/bin/paplay"
	assert.True(t, d.Available())
	assert.False(t, d.Candidates()[0].Found())
	assert.Len(t, r.lookups, 3)
}

func TestNewDispatcher_Candidates(t *testing.T) {
	r := newFakeRunner()
	r.paths["play"] = "/usr/bin/play"

	d := NewDispatcher(r, playbackConfig("paplay", "aplay", "play"), nil)

	assert.Equal(t, []Candidate{
		{Priority: 1, Name: "paplay"},
		{Priority: 2, Name: "aplay"},
		{Priority: 3, Name: "play", Path: "/usr/bin/play"},
	}, d.Candidates())

	// Candidates returns a copy
	d.Candidates()[2].Path = ""
	assert.True(t, d.Candidates()[2].Found())
}

func TestNewDispatcher_Defaults(t *testing.T) {
	r := newFakeRunner()
	d := NewDispatcher(r, config.PlaybackConfig{}, nil)

	assert.Equal(t, config.DefaultTimeout, d.Timeout())
	assert.Equal(t, config.DefaultPlayers, r.lookups)
}

func TestDispatcher_NoPlayer(t *testing.T) {
	r := newFakeRunner()
	d := NewDispatcher(r, playbackConfig("paplay", "aplay", "play"), nil)

	assert.False(t, d.Available())

	name, err := d.Play(context.Background(), "/tmp/tone.wav")
	assert.Empty(t, name)
	assert.ErrorIs(t, err, ErrNoPlayer)
	assert.Empty(t, r.Calls())
}

func TestDispatcher_PlayFirstSuccess(t *testing.T) {
	r := newFakeRunner()
	r.paths["paplay"] = "/usr/bin/paplay"
	r.paths["aplay"] = "/usr/bin/aplay"

	d := NewDispatcher(r, playbackConfig("paplay", "aplay"), nil)

	name, err := d.Play(context.Background(), "/tmp/tone.wav")
	require.NoError(t, err)
	assert.Equal(t, "paplay", name)
	assert.Equal(t, []string{"/usr/bin/paplay"}, r.Calls())
}

func TestDispatcher_FallsBackInOrder(t *testing.T) {
	r := newFakeRunner()
	r.paths["paplay"] = "/usr/bin/paplay"
	r.paths["aplay"] = "/usr/bin/aplay"
	r.paths["play"] = "/usr/bin/play"
	r.results["/usr/bin/paplay"] = errors.New("exit status 1")

	d := NewDispatcher(r, playbackConfig("paplay", "aplay", "play"), nil)

	name, err := d.Play(context.Background(), "/tmp/tone.wav")
	require.NoError(t, err)
	assert.Equal(t, "aplay", name)
	assert.Equal(t, []string{"/usr/bin/paplay", "/usr/bin/aplay"}, r.Calls())
}

func TestDispatcher_SkipsUnresolved(t *testing.T) {
	r := newFakeRunner()
	r.paths["play"] = "/usr/bin/play"

	d := NewDispatcher(r, playbackConfig("paplay", "aplay", "play"), nil)

	name, err := d.Play(context.Background(), "/tmp/tone.wav")
	require.NoError(t, err)
	assert.Equal(t, "play", name)
	assert.Equal(t, []string{"/usr/bin/play"}, r.Calls())
}

func TestDispatcher_TimeoutMovesOn(t *testing.T) {
	r := newFakeRunner()
	r.paths["paplay"] = "/usr/bin/paplay"
	r.paths["aplay"] = "/usr/bin/aplay"
	r.block["/usr/bin/paplay"] = true

	d := NewDispatcher(r, playbackConfig("paplay", "aplay"), nil)

	start := time.Now()
	name, err := d.Play(context.Background(), "/tmp/tone.wav")
	require.NoError(t, err)
	assert.Equal(t, "aplay", name)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDispatcher_AllFail(t *testing.T) {
	r := newFakeRunner()
	r.paths["paplay"] = "/usr/bin/paplay"
	r.paths["aplay"] = "/usr/bin/aplay"
	r.results["/usr/bin/paplay"] = errors.New("exit status 1")
	r.block["/usr/bin/aplay"] = true

	d := NewDispatcher(r, playbackConfig("paplay", "aplay", "play"), nil)

	name, err := d.Play(context.Background(), "/tmp/tone.wav")
	assert.Empty(t, name)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlaybackFailed)
	assert.NotErrorIs(t, err, ErrNoPlayer)

	var pe *PlaybackError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "/tmp/tone.wav", pe.File)
	require.Len(t, pe.Attempts, 2)
	assert.Equal(t, "paplay", pe.Attempts[0].Name)
	assert.Equal(t, "aplay", pe.Attempts[1].Name)
	assert.ErrorIs(t, pe.Attempts[1].Err, ErrTimeout)

	// Each player tried exactly once
	assert.Equal(t, []string{"/usr/bin/paplay", "/usr/bin/aplay"}, r.Calls())
	assert.Contains(t, err.Error(), "paplay")
}

func TestDispatcher_CanceledContextStops(t *testing.T) {
	r := newFakeRunner()
	r.paths["paplay"] = "/usr/bin/paplay"
	r.paths["aplay"] = "/usr/bin/aplay"
	r.results["/usr/bin/paplay"] = errors.New("signal: killed")

	d := NewDispatcher(r, playbackConfig("paplay", "aplay"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Play(ctx, "/tmp/tone.wav")
	assert.ErrorIs(t, err, ErrPlaybackFailed)
	assert.Equal(t, []string{"/usr/bin/paplay"}, r.Calls())
}

func TestDispatcher_PassesFileArgument(t *testing.T) {
	var gotArgs []string
	r := &recordingRunner{onRun: func(_ string, args []string) { gotArgs = args }}

	d := NewDispatcher(r, playbackConfig("aplay"), nil)
	_, err := d.Play(context.Background(), "/tmp/x.wav")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/x.wav"}, gotArgs)
}

type recordingRunner struct {
	onRun func(path string, args []string)
}

func (r *recordingRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (r *recordingRunner) Run(_ context.Context, path string, args ...string) error {
	r.onRun(path, args)
	return nil
}
