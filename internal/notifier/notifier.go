// Package notifier plays the completion chime, or a custom sound file,
// through the player dispatcher. Every failure is absorbed into a Result.
package notifier

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/chime/internal/audio"
	"github.com/jmylchreest/chime/internal/config"
	"github.com/jmylchreest/chime/internal/player"
	"github.com/jmylchreest/chime/internal/tone"
)

// Status messages.
const (
	MsgCompleted         = "task completed!"
	MsgPlaybackFailed    = "audio playback failed - task completed!"
	MsgNoAudioCompleted  = "audio not available - task completed!"
	MsgNoAudio           = "audio not available"
	MsgFileNotFoundFmt   = "sound file not found: %s"
	MsgNotificationError = "sound notification error: %v - task completed!"
)

// tempPrefix names the scratch files NotifyCompletion creates.
const tempPrefix = "chime-"

// ErrNotRegularFile is returned by NotifyCustom for directories and devices.
var ErrNotRegularFile = errors.New("not a regular file")

// Notifier plays notification sounds.
type Notifier struct {
	logger     *slog.Logger
	dispatcher *player.Dispatcher
	tone       tone.Spec
	tempDir    string

	// create opens the scratch file for the completion tone
	create func(dir string) (*os.File, error)
}

// New creates a Notifier that plays through d.
// A nil cfg uses the default completion tone and the system temp directory,
// as does a cfg whose tone does not validate.
func New(d *player.Dispatcher, cfg *config.Config, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	n := &Notifier{
		logger:     logger,
		dispatcher: d,
		tone:       tone.DefaultCompletion(),
		tempDir:    os.TempDir(),
		create:     createTempWAV,
	}

	if cfg != nil {
		spec := tone.FromConfig(cfg.Tone)
		if err := spec.Validate(); err != nil {
			logger.Warn("invalid tone in config, using default completion tone", "error", err)
		} else {
			n.tone = spec
		}
		if cfg.TempDir != "" {
			n.tempDir = cfg.TempDir
		}
	}

	return n
}

// Available reports whether any player was found.
func (n *Notifier) Available() bool {
	return n.dispatcher.Available()
}

// Tone returns the completion tone spec.
func (n *Notifier) Tone() tone.Spec {
	return n.tone
}

// NotifyCompletion synthesizes the completion tone into a temp file and plays it.
// The temp file is removed before returning, whatever the outcome.
func (n *Notifier) NotifyCompletion(ctx context.Context) Result {
	if !n.dispatcher.Available() {
		n.logger.Warn("no audio player available, skipping completion sound")
		return Result{Kind: KindNoPlayerAvailable, Message: MsgNoAudioCompleted, Err: player.ErrNoPlayer}
	}

	f, err := n.create(n.tempDir)
	if err != nil {
		return n.ioFailure("", err)
	}
	path := f.Name()
	defer n.removeTemp(path)

	buf := tone.Synthesize(n.tone)
	if err := buf.EncodeTo(f); err != nil {
		_ = f.Close()
		return n.ioFailure(path, err)
	}
	if err := f.Close(); err != nil {
		return n.ioFailure(path, fmt.Errorf("failed to close temp file: %w", err))
	}

	n.logger.Debug("wrote completion tone",
		"path", path,
		"frames", buf.Len(),
		"size", humanize.Bytes(uint64(buf.EncodedSize())))

	name, err := n.dispatcher.Play(ctx, path)
	if err != nil {
		n.logger.Warn("completion sound failed", "error", err)
		return Result{Kind: KindOf(err), File: path, Message: MsgPlaybackFailed, Err: err}
	}

	return Result{Played: true, Player: name, File: path, Message: MsgCompleted}
}

// NotifyCustom plays an existing sound file. The file is never removed.
func (n *Notifier) NotifyCustom(ctx context.Context, path string) Result {
	if !n.dispatcher.Available() {
		n.logger.Warn("no audio player available, skipping custom sound", "path", path)
		return Result{Kind: KindNoPlayerAvailable, File: path, Message: MsgNoAudio, Err: player.ErrNoPlayer}
	}

	info, err := os.Stat(path)
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	if err != nil {
		n.logger.Warn("sound file not usable", "path", path, "error", err)
		kind := KindFileNotFound
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrNotRegularFile) {
			kind = KindIOError
		}
		return Result{Kind: kind, File: path, Message: fmt.Sprintf(MsgFileNotFoundFmt, path), Err: err}
	}

	probed := n.describe(path, info.Size())

	name, err := n.dispatcher.Play(ctx, path)
	if err != nil {
		n.logger.Warn("custom sound failed", "path", path, "error", err)
		return Result{Kind: KindOf(err), File: path, Message: MsgPlaybackFailed, Err: err}
	}

	msg := "played " + filepath.Base(path)
	if probed != nil && probed.Duration > 0 {
		msg += " (" + probed.Duration.Round(time.Millisecond).String() + ")"
	}
	return Result{Played: true, Player: name, File: path, Message: msg}
}

// describe logs what the probe can tell about a custom sound and returns it.
// Players support more formats than the probe, so a probe failure is only
// logged and nil is returned.
func (n *Notifier) describe(path string, size int64) *audio.Info {
	info, err := audio.Probe(path)
	if err != nil {
		n.logger.Debug("could not probe sound file", "path", path, "error", err)
		return nil
	}

	n.logger.Debug("playing custom sound",
		"path", path,
		"format", info.Format,
		"sample_rate", info.SampleRate,
		"channels", info.Channels,
		"duration", info.Duration,
		"size", humanize.Bytes(uint64(size)))
	return info
}

// createTempWAV creates a uniquely named, empty WAV file in dir.
func createTempWAV(dir string) (*os.File, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	path := filepath.Join(dir, tempPrefix+id.String()+".wav")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	return f, nil
}

// removeTemp deletes a scratch file. Failures are ignored.
func (n *Notifier) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		n.logger.Debug("failed to remove temp file", "path", path, "error", err)
	}
}

// ioFailure builds the result for synthesis and temp-file errors.
func (n *Notifier) ioFailure(path string, err error) Result {
	n.logger.Error("sound notification error", "path", path, "error", err)
	return Result{
		Kind:    KindIOError,
		File:    path,
		Message: fmt.Sprintf(MsgNotificationError, err),
		Err:     err,
	}
}
