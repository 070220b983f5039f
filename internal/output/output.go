// Package output provides output formatters for window scan results.
package output

import (
	"io"

	"github.com/jmylchreest/wintag/internal/search"
	"github.com/jmylchreest/wintag/internal/winsys"
)

// Formatter formats scan results for output.
type Formatter interface {
	// Format writes formatted results to the writer.
	Format(w io.Writer, results search.Results) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// NewFormatter creates a formatter for the specified format type.
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

// report is the serialized shape of scan results for json/yaml output.
type report struct {
	TotalWindows int             `json:"total_windows" yaml:"total_windows"`
	Matched      []winsys.Window `json:"matched" yaml:"matched"`
}

func newReport(results search.Results) report {
	matched := results.Matched
	if matched == nil {
		matched = []winsys.Window{}
	}
	return report{
		TotalWindows: results.TotalWindows,
		Matched:      matched,
	}
}
