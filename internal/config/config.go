// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultSampleRate = 44100
	DefaultDuration   = time.Second
	DefaultToneA      = 800.0
	DefaultToneB      = 600.0
	DefaultAmplitude  = 0.3
	DefaultTimeout    = 5 * time.Second
)

// DefaultPlayers is the player priority order used when none is configured.
var DefaultPlayers = []string{"paplay", "aplay", "play"}

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "250ms", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Plain integers are milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '250ms' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the chime configuration.
// Loaded from ~/.config/chime/config.toml
type Config struct {
	TempDir  string         `toml:"temp_dir"` // Empty = system temp dir
	Tone     ToneConfig     `toml:"tone"`
	Playback PlaybackConfig `toml:"playback"`
}

// ToneConfig describes the completion tone.
type ToneConfig struct {
	SampleRate int      `toml:"sample_rate"` // Hz
	Duration   Duration `toml:"duration"`    // e.g. "1s", "500ms"
	ToneA      float64  `toml:"tone_a"`      // First half frequency in Hz
	ToneB      float64  `toml:"tone_b"`      // Second half frequency in Hz
	Amplitude  float64  `toml:"amplitude"`   // 0.0-1.0
}

// PlaybackConfig lists the player commands and the per-attempt timeout.
type PlaybackConfig struct {
	Players []string `toml:"players"` // Tried in order
	Timeout Duration `toml:"timeout"` // Per player invocation
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		TempDir: "",
		Tone: ToneConfig{
			SampleRate: DefaultSampleRate,
			Duration:   Duration(DefaultDuration),
			ToneA:      DefaultToneA,
			ToneB:      DefaultToneB,
			Amplitude:  DefaultAmplitude,
		},
		Playback: PlaybackConfig{
			Players: append([]string(nil), DefaultPlayers...),
			Timeout: Duration(DefaultTimeout),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "chime", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Tone.SampleRate < 1000 || c.Tone.SampleRate > 192000 {
		return fmt.Errorf("sample_rate must be between 1000 and 192000, got %d", c.Tone.SampleRate)
	}
	if c.Tone.Duration.Duration() <= 0 || c.Tone.Duration.Duration() > time.Minute {
		return fmt.Errorf("duration must be positive and at most 1m, got %s", c.Tone.Duration.Duration())
	}

	// Tones above Nyquist alias into something unpleasant
	nyquist := float64(c.Tone.SampleRate) / 2
	if c.Tone.ToneA <= 0 || c.Tone.ToneA >= nyquist {
		return fmt.Errorf("tone_a must be between 0 and %.0f Hz, got %g", nyquist, c.Tone.ToneA)
	}
	if c.Tone.ToneB <= 0 || c.Tone.ToneB >= nyquist {
		return fmt.Errorf("tone_b must be between 0 and %.0f Hz, got %g", nyquist, c.Tone.ToneB)
	}

	if c.Tone.Amplitude < 0 || c.Tone.Amplitude > 1 {
		return fmt.Errorf("amplitude must be between 0 and 1, got %g", c.Tone.Amplitude)
	}

	if len(c.Playback.Players) == 0 {
		return errors.New("players must list at least one command")
	}
	for i, name := range c.Playback.Players {
		if name == "" {
			return fmt.Errorf("players[%d] is empty", i)
		}
	}
	if c.Playback.Timeout.Duration() <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Playback.Timeout.Duration())
	}

	return nil
}
