package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/chime/internal/player"
)

// PlainFormatter formats candidates as aligned plain text, one per line.
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// Format writes one "priority name path" line per candidate.
func (f *PlainFormatter) Format(w io.Writer, candidates []player.Candidate) error {
	width := 0
	for _, c := range candidates {
		width = max(width, len(c.Name))
	}

	var sb strings.Builder
	for _, c := range candidates {
		location := c.Path
		if !c.Found() {
			location = "not found"
		}
		sb.WriteString(fmt.Sprintf("%d  %-*s  %s\n", c.Priority, width, c.Name, location))
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}
