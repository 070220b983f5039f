//go:build darwin && cgo

package appkit

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit

#import <AppKit/AppKit.h>
#include <stdint.h>

extern void wintagDispatchCallback(uintptr_t handle);

static void wintagDispatchAsync(uintptr_t handle) {
	dispatch_async(dispatch_get_main_queue(), ^{
		wintagDispatchCallback(handle);
	});
}

static void wintagAppRun(void) {
	@autoreleasepool {
		NSApplication *app = [NSApplication sharedApplication];
		[app setActivationPolicy:NSApplicationActivationPolicyAccessory];
		[app activateIgnoringOtherApps:YES];
		[app run];
	}
}

static void wintagAppStop(void) {
	NSApplication *app = [NSApplication sharedApplication];
	[app stop:nil];
	// stop: only takes effect once another event arrives; post one so the
	// run loop wakes up immediately.
	NSEvent *event = [NSEvent otherEventWithType:NSEventTypeApplicationDefined
	                                    location:NSZeroPoint
	                               modifierFlags:0
	                                   timestamp:0
	                                windowNumber:0
	                                     context:nil
	                                     subtype:0
	                                       data1:0
	                                       data2:0];
	[app postEvent:event atStart:YES];
}

static double wintagMainScreenHeight(void) {
	NSScreen *screen = [NSScreen mainScreen];
	if (screen == nil) {
		return 0;
	}
	return screen.frame.size.height;
}
*/
import "C"

import (
	"runtime"
	"runtime/cgo"
)

func init() {
	// The run loop must own the process's first thread.
	runtime.LockOSThread()
}

// Run starts the application run loop on the calling goroutine, which must
// be the main goroutine. onReady is scheduled onto the main thread and runs
// once the loop is up. Run blocks until Stop.
func Run(onReady func()) error {
	if onReady != nil {
		Post(onReady)
	}
	C.wintagAppRun()
	return nil
}

// Stop terminates the run loop, unblocking Run.
func Stop() {
	Post(func() {
		C.wintagAppStop()
	})
}

// Post schedules f to run on the main thread. It never blocks.
func Post(f func()) {
	handle := cgo.NewHandle(f)
	C.wintagDispatchAsync(C.uintptr_t(handle))
}

// MainScreenHeight returns the main screen's height in points, or 0 when no
// screen is attached.
func MainScreenHeight() float64 {
	return float64(C.wintagMainScreenHeight())
}
