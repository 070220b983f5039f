//go:build darwin && cgo

package overlay

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit

#import <AppKit/AppKit.h>
#include <stdlib.h>

typedef struct {
	double x, y, w, h;
} wintagRect;

typedef struct {
	wintagRect frame;
	wintagRect labelFrame;
	wintagRect closeFrame;
	double alpha;
	int level;
	int shadow;
	int movable;
} wintagPanelSpec;

static NSRect wintagNSRect(wintagRect r) {
	return NSMakeRect(r.x, r.y, r.w, r.h);
}

// wintagPanelCreate materializes one borderless overlay panel and orders it
// front. Must run on the main thread. Returns a retained reference, or NULL
// on failure.
static void *wintagPanelCreate(wintagPanelSpec spec, const char *title, const char *label) {
	NSPanel *panel = [[NSPanel alloc] initWithContentRect:wintagNSRect(spec.frame)
	                                            styleMask:NSWindowStyleMaskBorderless
	                                              backing:NSBackingStoreBuffered
	                                                defer:NO];
	if (panel == nil) {
		return NULL;
	}

	[panel setLevel:spec.level];
	[panel setOpaque:NO];
	[panel setAlphaValue:spec.alpha];
	[panel setHasShadow:spec.shadow != 0];
	[panel setMovableByWindowBackground:spec.movable != 0];
	[panel setTitle:[NSString stringWithUTF8String:title]];
	// The Go side owns the panel's lifetime through wintagPanelClose.
	[panel setReleasedWhenClosed:NO];

	NSView *content = [[NSView alloc]
		initWithFrame:NSMakeRect(0, 0, spec.frame.w, spec.frame.h)];
	[panel setContentView:content];

	NSButton *labelButton = [[NSButton alloc] initWithFrame:wintagNSRect(spec.labelFrame)];
	[labelButton setTitle:[NSString stringWithUTF8String:label]];
	[content addSubview:labelButton];

	NSButton *closeButton = [[NSButton alloc] initWithFrame:wintagNSRect(spec.closeFrame)];
	[closeButton setTitle:@"✕"];
	[closeButton setTarget:panel];
	[closeButton setAction:@selector(orderOut:)];
	[content addSubview:closeButton];

	[panel makeKeyAndOrderFront:nil];
	[panel orderFrontRegardless];

	return (__bridge_retained void *)panel;
}

// wintagPanelClose orders the panel out and releases the reference taken by
// wintagPanelCreate. Must run on the main thread.
static void wintagPanelClose(void *ref) {
	NSPanel *panel = (__bridge_transfer NSPanel *)ref;
	[panel orderOut:nil];
	[panel close];
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/jmylchreest/wintag/internal/geometry"
)

// QuartzRenderer materializes NSPanel overlays.
type QuartzRenderer struct{}

// NewRenderer returns the macOS panel renderer.
func NewRenderer() Renderer {
	return &QuartzRenderer{}
}

// Create builds and orders front one overlay panel. Must be called on the
// main thread.
func (r *QuartzRenderer) Create(spec PanelSpec) (Panel, error) {
	local := geometry.Rect{Width: spec.Frame.Width, Height: spec.Frame.Height}

	cspec := C.wintagPanelSpec{
		frame:      toCRect(spec.Frame),
		labelFrame: toCRect(geometry.LabelFrame(local)),
		closeFrame: toCRect(geometry.CloseButtonFrame(local)),
		alpha:      C.double(spec.Alpha),
		level:      C.int(spec.Level),
		shadow:     boolToC(spec.Shadow),
		movable:    boolToC(spec.Movable),
	}

	title := C.CString(spec.Title)
	defer C.free(unsafe.Pointer(title))
	label := C.CString(spec.Label)
	defer C.free(unsafe.Pointer(label))

	ref := C.wintagPanelCreate(cspec, title, label)
	if ref == nil {
		return nil, &RenderError{Message: "panel creation failed"}
	}

	return &quartzPanel{ref: ref}, nil
}

// quartzPanel wraps a retained NSPanel reference.
type quartzPanel struct {
	once sync.Once
	ref  unsafe.Pointer
}

// Close orders the panel out and releases it. Must be called on the main
// thread.
func (p *quartzPanel) Close() {
	p.once.Do(func() {
		C.wintagPanelClose(p.ref)
		p.ref = nil
	})
}

func toCRect(r geometry.Rect) C.wintagRect {
	return C.wintagRect{
		x: C.double(r.X),
		y: C.double(r.Y),
		w: C.double(r.Width),
		h: C.double(r.Height),
	}
}

func boolToC(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
