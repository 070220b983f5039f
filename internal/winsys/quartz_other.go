//go:build !darwin || !cgo

package winsys

import (
	"context"
	"fmt"
	"runtime"
)

// NewProvider returns a stub provider on platforms without a supported
// window server binding. Window enumeration requires macOS with CGo enabled.
func NewProvider() Provider {
	return &unsupportedProvider{}
}

type unsupportedProvider struct{}

func (p *unsupportedProvider) ListWindows(ctx context.Context) ([]Window, error) {
	return nil, fmt.Errorf("winsys: window enumeration is not available on %s (requires macOS with CGo)", runtime.GOOS)
}
