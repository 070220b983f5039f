package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wintag/internal/search"
)

// YAMLFormatter formats scan results as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes the results as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, results search.Results) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(newReport(results))
}
