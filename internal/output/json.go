package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/wintag/internal/search"
)

// JSONFormatter formats scan results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the results as an indented JSON object.
func (f *JSONFormatter) Format(w io.Writer, results search.Results) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newReport(results))
}
