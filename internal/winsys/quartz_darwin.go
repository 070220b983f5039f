//go:build darwin && cgo

package winsys

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit -framework CoreGraphics -framework CoreFoundation

#import <AppKit/AppKit.h>
#import <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	char title[512];
	char appName[256];
	char bundleID[256];
	double x, y, w, h;
	long long number;
	int pid;
	int layer;
	double alpha;
	int sharingState;
	long long memoryUsage;
	int onScreen;
} wintagWindow;

static void wintagCopyString(char *dst, size_t cap, NSString *src) {
	dst[0] = '\0';
	if (src == nil) {
		return;
	}
	const char *utf8 = [src UTF8String];
	if (utf8 == NULL) {
		return;
	}
	strncpy(dst, utf8, cap - 1);
	dst[cap - 1] = '\0';
}

static double wintagNumber(NSDictionary *info, CFStringRef key, double fallback) {
	NSNumber *n = info[(__bridge NSString *)key];
	if (n == nil) {
		return fallback;
	}
	return [n doubleValue];
}

// wintagCopyWindowList snapshots the on-screen window list into a flat C
// array. Returns the window count, or -1 when the window server refuses the
// query. The caller frees *out.
static int wintagCopyWindowList(wintagWindow **out) {
	CFArrayRef list = CGWindowListCopyWindowInfo(kCGWindowListOptionOnScreenOnly, kCGNullWindowID);
	if (list == NULL) {
		return -1;
	}

	CFIndex count = CFArrayGetCount(list);
	wintagWindow *wins = calloc(count > 0 ? count : 1, sizeof(wintagWindow));
	if (wins == NULL) {
		CFRelease(list);
		return -1;
	}

	for (CFIndex i = 0; i < count; i++) {
		NSDictionary *info = (__bridge NSDictionary *)CFArrayGetValueAtIndex(list, i);
		wintagWindow *w = &wins[i];

		wintagCopyString(w->title, sizeof(w->title), info[(__bridge NSString *)kCGWindowName]);
		wintagCopyString(w->appName, sizeof(w->appName), info[(__bridge NSString *)kCGWindowOwnerName]);

		NSDictionary *boundsDict = info[(__bridge NSString *)kCGWindowBounds];
		CGRect rect = CGRectZero;
		if (boundsDict != nil) {
			CGRectMakeWithDictionaryRepresentation((__bridge CFDictionaryRef)boundsDict, &rect);
		}
		w->x = rect.origin.x;
		w->y = rect.origin.y;
		w->w = rect.size.width;
		w->h = rect.size.height;

		w->number = (long long)wintagNumber(info, kCGWindowNumber, 0);
		w->pid = (int)wintagNumber(info, kCGWindowOwnerPID, 0);
		w->layer = (int)wintagNumber(info, kCGWindowLayer, 0);
		w->alpha = wintagNumber(info, kCGWindowAlpha, 1);
		w->sharingState = (int)wintagNumber(info, kCGWindowSharingState, 0);
		w->memoryUsage = (long long)wintagNumber(info, kCGWindowMemoryUsage, 0);
		w->onScreen = wintagNumber(info, kCGWindowIsOnscreen, 0) != 0;

		NSRunningApplication *app =
			[NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)w->pid];
		wintagCopyString(w->bundleID, sizeof(w->bundleID), app.bundleIdentifier);
	}

	CFRelease(list);
	*out = wins;
	return (int)count;
}
*/
import "C"

import (
	"context"
	"errors"
	"unsafe"

	"github.com/jmylchreest/wintag/internal/geometry"
)

// ErrWindowList is returned when the window server refuses the list query.
var ErrWindowList = errors.New("winsys: failed to copy window list")

// QuartzProvider enumerates windows through CGWindowListCopyWindowInfo.
type QuartzProvider struct{}

// NewProvider returns the macOS window list provider.
func NewProvider() Provider {
	return &QuartzProvider{}
}

// ListWindows snapshots the current on-screen window list.
func (p *QuartzProvider) ListWindows(ctx context.Context) ([]Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw *C.wintagWindow
	count := C.wintagCopyWindowList(&raw)
	if count < 0 {
		return nil, ErrWindowList
	}
	defer C.free(unsafe.Pointer(raw))

	entries := unsafe.Slice(raw, int(count))
	windows := make([]Window, 0, int(count))
	for i := range entries {
		e := &entries[i]
		bounds := geometry.Rect{
			X:      float64(e.x),
			Y:      float64(e.y),
			Width:  float64(e.w),
			Height: float64(e.h),
		}
		windows = append(windows, Window{
			Title:        C.GoString(&e.title[0]),
			AppName:      C.GoString(&e.appName[0]),
			BundleID:     C.GoString(&e.bundleID[0]),
			Bounds:       geometry.FormatBounds(bounds),
			Number:       int64(e.number),
			PID:          int32(e.pid),
			Layer:        int32(e.layer),
			Alpha:        float64(e.alpha),
			SharingState: int32(e.sharingState),
			MemoryUsage:  int64(e.memoryUsage),
			OnScreen:     e.onScreen != 0,
		})
	}

	return windows, nil
}
