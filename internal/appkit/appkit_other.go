//go:build !darwin || !cgo

package appkit

import (
	"fmt"
	"runtime"
)

// Run is unavailable without AppKit.
func Run(onReady func()) error {
	return fmt.Errorf("appkit: run loop is not available on %s (requires macOS with CGo)", runtime.GOOS)
}

// Stop is a no-op without a run loop.
func Stop() {}

// Post runs f inline; there is no main-thread queue to defer to.
func Post(f func()) {
	f()
}

// MainScreenHeight reports no screen.
func MainScreenHeight() float64 {
	return 0
}
