package overlay

import (
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/wintag/internal/config"
	"github.com/jmylchreest/wintag/internal/geometry"
	"github.com/jmylchreest/wintag/internal/winsys"
)

// PanelState tracks one displayed overlay panel.
type PanelState struct {
	ID        ulid.ULID
	Window    winsys.Window
	Panel     Panel
	CreatedAt time.Time
}

// CloseCallback is called when a panel is closed because its window
// disappeared.
type CloseCallback func(windowNumber int64)

// Options configures a Manager.
type Options struct {
	Renderer Renderer

	// ScreenHeight supplies the main screen height used for the
	// coordinate flip. Queried per panel so display changes between
	// ticks are picked up.
	ScreenHeight func() float64

	Appearance config.OverlayConfig
	Logger     *slog.Logger
}

// Manager reconciles displayed overlay panels against the observed window
// set. Panels are keyed by window number; a window keeps its panel for as
// long as its number stays observed. All methods that touch panels must be
// called on the main thread.
type Manager struct {
	renderer     Renderer
	screenHeight func() float64
	appearance   config.OverlayConfig
	logger       *slog.Logger

	mu      sync.Mutex
	panels  map[int64]*PanelState
	onClose CloseCallback
}

// NewManager creates a new overlay manager.
func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	screenHeight := opts.ScreenHeight
	if screenHeight == nil {
		screenHeight = func() float64 { return 0 }
	}

	return &Manager{
		renderer:     opts.Renderer,
		screenHeight: screenHeight,
		appearance:   opts.Appearance,
		logger:       logger,
		panels:       make(map[int64]*PanelState),
	}
}

// SetCloseCallback sets the callback for panels closed by reconciliation.
func (m *Manager) SetCloseCallback(cb CloseCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = cb
}

// SetAppearance replaces the panel appearance settings. Existing panels
// are left untouched; new panels use the new settings.
func (m *Manager) SetAppearance(appearance config.OverlayConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appearance = appearance
}

// Sync reconciles displayed panels against the given window set: panels
// whose windows disappeared are closed, newly observed windows get panels,
// and windows already displayed are left untouched.
func (m *Manager) Sync(windows []winsys.Window) {
	m.mu.Lock()

	observed := make(map[int64]winsys.Window, len(windows))
	for _, w := range windows {
		observed[w.Number] = w
	}

	var closed []int64
	for number, state := range m.panels {
		if _, ok := observed[number]; ok {
			continue
		}
		state.Panel.Close()
		delete(m.panels, number)
		closed = append(closed, number)
		m.logger.Debug("closed overlay",
			"panel_id", state.ID.String(),
			"window_number", number,
			"app", state.Window.AppName,
		)
	}

	for number, w := range observed {
		if _, ok := m.panels[number]; ok {
			continue
		}
		if err := m.showLocked(w); err != nil {
			m.logger.Warn("failed to create overlay",
				"window_number", number,
				"app", w.AppName,
				"error", err,
			)
		}
	}

	onClose := m.onClose
	m.mu.Unlock()

	if onClose != nil {
		for _, number := range closed {
			onClose(number)
		}
	}
}

// showLocked creates a panel for one window. Caller must hold the lock.
// A window whose bounds fail to parse is not recorded, so a later tick
// retries it.
func (m *Manager) showLocked(w winsys.Window) error {
	bounds, err := geometry.ParseBounds(w.Bounds)
	if err != nil {
		return &RenderError{Message: "unusable window bounds", Cause: err}
	}

	frame := geometry.PanelFrame(bounds, m.screenHeight(), m.appearance.ExtraWidth)

	panel, err := m.renderer.Create(PanelSpec{
		Frame:   frame,
		Title:   m.appearance.Title,
		Label:   config.DefaultLabelPrefix + w.AppName,
		Alpha:   m.appearance.Alpha,
		Level:   m.appearance.Level,
		Shadow:  m.appearance.Shadow,
		Movable: m.appearance.Movable,
	})
	if err != nil {
		return err
	}

	state := &PanelState{
		ID:        ulid.Make(),
		Window:    w,
		Panel:     panel,
		CreatedAt: time.Now(),
	}
	m.panels[w.Number] = state

	m.logger.Debug("created overlay",
		"panel_id", state.ID.String(),
		"window_number", w.Number,
		"app", w.AppName,
		"title", w.Title,
		"frame_x", frame.X,
		"frame_y", frame.Y,
		"frame_w", frame.Width,
		"frame_h", frame.Height,
	)

	return nil
}

// CloseAll closes every displayed panel.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	states := make([]*PanelState, 0, len(m.panels))
	for _, state := range m.panels {
		states = append(states, state)
	}
	m.panels = make(map[int64]*PanelState)
	m.mu.Unlock()

	for _, state := range states {
		state.Panel.Close()
	}

	if len(states) > 0 {
		m.logger.Debug("closed all overlays", "count", len(states))
	}
}

// ActiveCount returns the number of displayed panels.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.panels)
}

// DisplayedNumbers returns the window numbers with a displayed panel.
func (m *Manager) DisplayedNumbers() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	numbers := make([]int64, 0, len(m.panels))
	for number := range m.panels {
		numbers = append(numbers, number)
	}
	return numbers
}
