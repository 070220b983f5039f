package overlay

import "github.com/jmylchreest/wintag/internal/geometry"

// PanelSpec describes one overlay panel to materialize. The frame is in the
// toolkit's bottom-left-origin screen space.
type PanelSpec struct {
	Frame   geometry.Rect
	Title   string
	Label   string
	Alpha   float64
	Level   int
	Shadow  bool
	Movable bool
}

// Panel is a live overlay panel. Close orders the panel out and releases
// it; it is safe to call more than once.
type Panel interface {
	Close()
}

// Renderer materializes overlay panels through the host GUI toolkit.
// Create must be called on the main thread.
type Renderer interface {
	Create(spec PanelSpec) (Panel, error)
}

// RenderError represents a panel creation failure.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
