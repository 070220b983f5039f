//go:build !darwin || !cgo

package overlay

import (
	"fmt"
	"runtime"
)

// NewRenderer returns a stub renderer on platforms without a supported GUI
// toolkit binding.
func NewRenderer() Renderer {
	return &unsupportedRenderer{}
}

type unsupportedRenderer struct{}

func (r *unsupportedRenderer) Create(spec PanelSpec) (Panel, error) {
	return nil, &RenderError{
		Message: fmt.Sprintf("overlay panels are not available on %s (requires macOS with CGo)", runtime.GOOS),
	}
}
