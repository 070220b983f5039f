// Package winsys provides access to the host window server's list of
// on-screen windows. The real implementation calls CoreGraphics on macOS;
// other platforms get a stub that reports the capability as unavailable.
package winsys

import "context"

// Window is a flattened record for one on-screen window, as reported by the
// window server.
type Window struct {
	Title        string  `json:"title" yaml:"title"`
	AppName      string  `json:"app_name" yaml:"app_name"`
	BundleID     string  `json:"bundle_id,omitempty" yaml:"bundle_id,omitempty"`
	Bounds       string  `json:"bounds" yaml:"bounds"`
	Number       int64   `json:"number" yaml:"number"`
	PID          int32   `json:"pid" yaml:"pid"`
	Layer        int32   `json:"layer" yaml:"layer"`
	Alpha        float64 `json:"alpha" yaml:"alpha"`
	SharingState int32   `json:"sharing_state" yaml:"sharing_state"`
	MemoryUsage  int64   `json:"memory_usage" yaml:"memory_usage"`
	OnScreen     bool    `json:"on_screen" yaml:"on_screen"`
}

// Provider enumerates the window server's on-screen windows. Bounds on the
// returned records are in the server's top-left-origin coordinate space,
// formatted as a geometry bounds tuple.
type Provider interface {
	ListWindows(ctx context.Context) ([]Window, error)
}
