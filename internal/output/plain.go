package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/jmylchreest/wintag/internal/search"
)

// PlainFormatter writes a human-readable report, one block per matched
// window.
type PlainFormatter struct {
	heading *color.Color
	name    *color.Color
	field   *color.Color
}

// NewPlainFormatter creates a new plain-text formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{
		heading: color.New(color.Bold),
		name:    color.New(color.FgGreen),
		field:   color.New(color.FgHiBlack),
	}
}

// Format writes the results as indented field blocks.
func (f *PlainFormatter) Format(w io.Writer, results search.Results) error {
	if _, err := f.heading.Fprintf(w, "Scanned %d windows, %d matched\n", results.TotalWindows, len(results.Matched)); err != nil {
		return err
	}

	for _, win := range results.Matched {
		fmt.Fprintln(w)
		f.name.Fprintf(w, "  %q from %s\n", win.Title, win.AppName)

		bundleID := win.BundleID
		if bundleID == "" {
			bundleID = "N/A"
		}

		f.printField(w, "Bundle ID", bundleID)
		f.printField(w, "Bounds", win.Bounds)
		f.printField(w, "Window Number", fmt.Sprintf("%d", win.Number))
		f.printField(w, "PID", fmt.Sprintf("%d", win.PID))
		f.printField(w, "Layer", fmt.Sprintf("%d", win.Layer))
		f.printField(w, "Alpha", fmt.Sprintf("%g", win.Alpha))
		f.printField(w, "Sharing State", fmt.Sprintf("%d", win.SharingState))
		f.printField(w, "Memory Usage", humanize.Bytes(uint64(win.MemoryUsage)))
		f.printField(w, "On Screen", fmt.Sprintf("%t", win.OnScreen))
	}

	return nil
}

func (f *PlainFormatter) printField(w io.Writer, key, value string) {
	f.field.Fprintf(w, "     %s: ", key)
	fmt.Fprintln(w, value)
}
