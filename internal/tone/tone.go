// Package tone synthesizes the completion chime as 16-bit mono PCM
// and serializes it as a RIFF/WAVE file.
//
// The tone is two hard-switched sine segments under a linear
// fade-in/fade-out envelope. Samples are quantized by truncation, so the
// output is byte-for-byte reproducible for a given Spec.
package tone

import (
	"fmt"
	"math"
	"time"

	"github.com/jmylchreest/chime/internal/config"
)

// fadeFraction is the share of the tone spent fading in, and again fading out.
const fadeFraction = 0.05

// Spec describes a tone.
type Spec struct {
	SampleRate int     // Hz
	Duration   float64 // seconds
	ToneA      float64 // Hz, first half
	ToneB      float64 // Hz, second half
	Amplitude  float64 // 0.0-1.0
}

// DefaultCompletion returns the built-in completion chime: 1s, 800Hz then 600Hz at 30%.
func DefaultCompletion() Spec {
	return Spec{
		SampleRate: config.DefaultSampleRate,
		Duration:   config.DefaultDuration.Seconds(),
		ToneA:      config.DefaultToneA,
		ToneB:      config.DefaultToneB,
		Amplitude:  config.DefaultAmplitude,
	}
}

// FromConfig builds a Spec from the [tone] config section.
func FromConfig(cfg config.ToneConfig) Spec {
	return Spec{
		SampleRate: cfg.SampleRate,
		Duration:   cfg.Duration.Duration().Seconds(),
		ToneA:      cfg.ToneA,
		ToneB:      cfg.ToneB,
		Amplitude:  cfg.Amplitude,
	}
}

// Frames returns the number of samples the tone spans, floor(Duration*SampleRate).
func (s Spec) Frames() int {
	if s.SampleRate <= 0 || s.Duration <= 0 {
		return 0
	}
	return int(s.Duration * float64(s.SampleRate))
}

// Length returns the tone duration as a time.Duration.
func (s Spec) Length() time.Duration {
	return time.Duration(s.Duration * float64(time.Second))
}

// Validate checks that the spec can produce an audible tone.
func (s Spec) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", s.SampleRate)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", s.Duration)
	}
	if s.Amplitude < 0 || s.Amplitude > 1 {
		return fmt.Errorf("amplitude must be between 0 and 1, got %g", s.Amplitude)
	}
	return nil
}

// FrequencyAt returns the frequency used for sample i.
func (s Spec) FrequencyAt(i, frames int) float64 {
	if i < frames/2 {
		return s.ToneA
	}
	return s.ToneB
}

// Envelope returns the amplitude envelope at sample i of frames.
// It ramps linearly from 0 over the first 5% of the tone, holds at 1.0,
// and ramps back towards 0 over the last 5%.
func Envelope(i, frames int) float64 {
	fade := fadeFraction * float64(frames)
	if fade <= 0 {
		return 1.0
	}

	pos := float64(i)
	switch {
	case pos < fade:
		return pos / fade
	case pos > float64(frames)-fade:
		return (float64(frames) - pos) / fade
	default:
		return 1.0
	}
}

// Buffer holds mono signed 16-bit PCM samples.
type Buffer struct {
	SampleRate int
	Samples    []int16
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// Synthesize renders the tone described by s.
// Amplitude is clamped to [0, 1]; a non-positive rate or duration yields an empty buffer.
func Synthesize(s Spec) *Buffer {
	frames := s.Frames()
	amplitude := min(max(s.Amplitude, 0), 1)

	b := &Buffer{
		SampleRate: s.SampleRate,
		Samples:    make([]int16, frames),
	}

	rate := float64(s.SampleRate)
	for i := range frames {
		t := float64(i) / rate
		v := amplitude * Envelope(i, frames) * math.Sin(2*math.Pi*s.FrequencyAt(i, frames)*t)

		// Truncate toward zero, never round
		b.Samples[i] = int16(v * math.MaxInt16)
	}

	return b
}
