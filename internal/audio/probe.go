// Package audio inspects sound files.
// It uses the beep decoders to read WAV, OGG and MP3 headers so that
// custom notification sounds can be described before they are played.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for files the probe has no decoder for.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Info describes a decoded sound file.
type Info struct {
	Path       string
	Format     string // wav, ogg, mp3
	SampleRate int
	Channels   int
	Precision  int // Bytes per sample
	Frames     int
	Duration   time.Duration
}

// Probe decodes the header of the sound file at path.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(filepath.Ext(path))

	var streamer beep.StreamSeekCloser
	var format beep.Format
	var kind string

	switch ext {
	case ".wav":
		kind = "wav"
		streamer, format, err = wav.Decode(f)
	case ".ogg", ".oga":
		kind = "ogg"
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		kind = "mp3"
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	frames := streamer.Len()

	return &Info{
		Path:       path,
		Format:     kind,
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		Precision:  format.Precision,
		Frames:     frames,
		Duration:   format.SampleRate.D(frames),
	}, nil
}
