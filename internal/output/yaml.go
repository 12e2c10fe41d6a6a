package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/chime/internal/player"
)

// YAMLFormatter formats candidates as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes candidates as a YAML sequence.
func (f *YAMLFormatter) Format(w io.Writer, candidates []player.Candidate) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(nonNil(candidates)); err != nil {
		return err
	}
	return encoder.Close()
}
