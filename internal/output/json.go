package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/chime/internal/player"
)

// JSONFormatter formats candidates as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes candidates as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, candidates []player.Candidate) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nonNil(candidates))
}

// nonNil keeps an empty table encoding as [] rather than null.
func nonNil(candidates []player.Candidate) []player.Candidate {
	if candidates == nil {
		return []player.Candidate{}
	}
	return candidates
}
