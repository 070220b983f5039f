package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wintag/internal/config"
	"github.com/jmylchreest/wintag/internal/geometry"
	"github.com/jmylchreest/wintag/internal/overlay"
	"github.com/jmylchreest/wintag/internal/search"
	"github.com/jmylchreest/wintag/internal/winsys"
)

type fakeProvider struct {
	mu      sync.Mutex
	windows []winsys.Window
	err     error
}

func (f *fakeProvider) ListWindows(ctx context.Context) ([]winsys.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.windows, f.err
}

func (f *fakeProvider) set(windows []winsys.Window, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = windows
	f.err = err
}

type fakePanel struct{}

func (fakePanel) Close() {}

type fakeRenderer struct{}

func (fakeRenderer) Create(spec overlay.PanelSpec) (overlay.Panel, error) {
	return fakePanel{}, nil
}

func testWindow(number int64, title, app string) winsys.Window {
	return winsys.Window{
		Number:  number,
		Title:   title,
		AppName: app,
		Bounds:  geometry.FormatBounds(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}),
	}
}

func newTestPoller(provider winsys.Provider, criteria search.Criteria) (*Poller, *overlay.Manager) {
	manager := overlay.NewManager(overlay.Options{
		Renderer:     fakeRenderer{},
		ScreenHeight: func() float64 { return 1080 },
		Appearance:   config.DefaultConfig().Overlay,
	})
	p := New(Options{
		Provider: provider,
		Manager:  manager,
		Criteria: criteria,
		Interval: 10 * time.Millisecond,
	})
	return p, manager
}

func TestTick_SyncsMatches(t *testing.T) {
	provider := &fakeProvider{windows: []winsys.Window{
		testWindow(1, "Open", "Safari"),
		testWindow(2, "Untitled", "TextEdit"),
	}}
	p, manager := newTestPoller(provider, search.BuildCriteria("Open", "", nil))

	p.Tick(context.Background())

	assert.Equal(t, 1, manager.ActiveCount())
	assert.Equal(t, []int64{1}, manager.DisplayedNumbers())
}

func TestTick_EnumerationFailureKeepsOverlays(t *testing.T) {
	provider := &fakeProvider{windows: []winsys.Window{
		testWindow(1, "Open", "Safari"),
	}}
	p, manager := newTestPoller(provider, search.BuildCriteria("Open", "", nil))

	p.Tick(context.Background())
	require.Equal(t, 1, manager.ActiveCount())

	provider.set(nil, errors.New("window server unavailable"))
	p.Tick(context.Background())

	assert.Equal(t, 1, manager.ActiveCount())
}

func TestTick_GoneWindowClosesOverlay(t *testing.T) {
	provider := &fakeProvider{windows: []winsys.Window{
		testWindow(1, "Open", "Safari"),
	}}
	p, manager := newTestPoller(provider, search.BuildCriteria("Open", "", nil))

	p.Tick(context.Background())
	require.Equal(t, 1, manager.ActiveCount())

	provider.set(nil, nil)
	p.Tick(context.Background())

	assert.Equal(t, 0, manager.ActiveCount())
}

func TestApply_SwapsCriteria(t *testing.T) {
	provider := &fakeProvider{windows: []winsys.Window{
		testWindow(1, "Open", "Safari"),
		testWindow(2, "Save", "Safari"),
	}}
	p, manager := newTestPoller(provider, search.BuildCriteria("Open", "", nil))

	p.Tick(context.Background())
	require.Equal(t, []int64{1}, manager.DisplayedNumbers())

	cfg := config.DefaultConfig()
	cfg.Match.Title = "Save"
	p.Apply(cfg)

	p.Tick(context.Background())
	assert.Equal(t, []int64{2}, manager.DisplayedNumbers())
}

func TestStartStop(t *testing.T) {
	provider := &fakeProvider{windows: []winsys.Window{
		testWindow(1, "Open", "Safari"),
	}}
	p, manager := newTestPoller(provider, search.BuildCriteria("Open", "", nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, p.Start(ctx))

	// The first tick runs immediately.
	require.Eventually(t, func() bool {
		return manager.ActiveCount() == 1
	}, time.Second, 5*time.Millisecond)

	p.Stop()

	// Stopped: a window-set change no longer reconciles.
	provider.set(nil, nil)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, manager.ActiveCount())
}

func TestStart_Idempotent(t *testing.T) {
	provider := &fakeProvider{}
	p, _ := newTestPoller(provider, search.NewCriteria())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, p.Start(ctx))
	require.NoError(t, p.Start(ctx))
	p.Stop()
	p.Stop()
}
