// Package geometry provides the coordinate arithmetic for overlay panels:
// parsing and formatting of window bounds tuples, the conversion between
// the window server's top-left-origin space and the toolkit's
// bottom-left-origin space, and panel/widget frame computation.
package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Panel sizing constants. The label button fills most of the panel; the
// close button sits in the panel's top-right corner.
const (
	DefaultExtraWidth = 300.0
	LabelWidthRatio   = 0.8
	LabelHeightRatio  = 0.3
	CloseButtonSize   = 30.0
	CloseButtonMargin = 10.0
)

// Rect is a rectangle in screen or panel-local coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"w" yaml:"w"`
	Height float64 `json:"h" yaml:"h"`
}

// FormatBounds renders a rectangle as the bounds tuple carried on window
// records, e.g. "x:100, y:200, w:640, h:480".
func FormatBounds(r Rect) string {
	return "x:" + formatCoord(r.X) +
		", y:" + formatCoord(r.Y) +
		", w:" + formatCoord(r.Width) +
		", h:" + formatCoord(r.Height)
}

// formatCoord prints a coordinate without a trailing ".0" for whole values.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseBounds parses a bounds tuple produced by FormatBounds. Fields may
// appear in any order; missing fields default to zero. An unparseable value
// is an error.
func ParseBounds(s string) (Rect, error) {
	var r Rect
	for _, part := range strings.Split(s, ", ") {
		var dst *float64
		var val string
		switch {
		case strings.HasPrefix(part, "x:"):
			dst, val = &r.X, strings.TrimPrefix(part, "x:")
		case strings.HasPrefix(part, "y:"):
			dst, val = &r.Y, strings.TrimPrefix(part, "y:")
		case strings.HasPrefix(part, "w:"):
			dst, val = &r.Width, strings.TrimPrefix(part, "w:")
		case strings.HasPrefix(part, "h:"):
			dst, val = &r.Height, strings.TrimPrefix(part, "h:")
		default:
			continue
		}

		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return Rect{}, fmt.Errorf("invalid bounds value %q: %w", part, err)
		}
		*dst = f
	}
	return r, nil
}

// PanelFrame computes the overlay panel frame for a window whose bounds are
// given in the window server's top-left-origin space. The result is in the
// toolkit's bottom-left-origin space: same x, y flipped through the screen
// height, width widened by extraWidth, height unchanged.
func PanelFrame(bounds Rect, screenHeight, extraWidth float64) Rect {
	return Rect{
		X:      bounds.X,
		Y:      screenHeight - bounds.Y - bounds.Height,
		Width:  bounds.Width + extraWidth,
		Height: bounds.Height,
	}
}

// LabelFrame computes the panel-local frame of the label button: centered,
// sized by the label ratios.
func LabelFrame(panel Rect) Rect {
	w := panel.Width * LabelWidthRatio
	h := panel.Height * LabelHeightRatio
	return Rect{
		X:      (panel.Width - w) / 2,
		Y:      (panel.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// CloseButtonFrame computes the panel-local frame of the close button:
// a fixed-size square inset from the panel's top-right corner.
func CloseButtonFrame(panel Rect) Rect {
	return Rect{
		X:      panel.Width - CloseButtonSize - CloseButtonMargin,
		Y:      panel.Height - CloseButtonSize - CloseButtonMargin,
		Width:  CloseButtonSize,
		Height: CloseButtonSize,
	}
}
