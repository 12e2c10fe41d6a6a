// Package output provides output formatters for the player candidate table.
package output

import (
	"io"

	"github.com/jmylchreest/chime/internal/player"
)

// Formatter formats player candidates for output.
type Formatter interface {
	// Format writes formatted candidates to the writer.
	Format(w io.Writer, candidates []player.Candidate) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ValidFormats returns all supported format types.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// NewFormatter creates a formatter for the specified format type.
// Unknown types fall back to plain text.
func NewFormatter(format FormatType) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter()
	}
}
