// Package appkit wraps the small slice of AppKit the overlay needs: the
// application run loop, scheduling work onto the main thread, and main
// screen metrics. All widget work must happen on the main thread; Post is
// the only safe way to get there.
package appkit
