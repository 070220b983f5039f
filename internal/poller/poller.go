// Package poller drives the window reconciliation loop: on each tick the
// window list is queried, filtered, and handed to the overlay manager on
// the main thread.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/wintag/internal/config"
	"github.com/jmylchreest/wintag/internal/overlay"
	"github.com/jmylchreest/wintag/internal/search"
	"github.com/jmylchreest/wintag/internal/winsys"
)

// Options configures a Poller.
type Options struct {
	Provider winsys.Provider
	Manager  *overlay.Manager
	Criteria search.Criteria
	Interval time.Duration

	// Post schedules a function onto the UI thread. The overlay manager
	// is only ever touched through it.
	Post func(func())

	Logger *slog.Logger
}

// Poller polls the window list on a fixed interval and reconciles overlays
// against it. Criteria and interval may be swapped at runtime; changes take
// effect on the next tick.
type Poller struct {
	provider winsys.Provider
	manager  *overlay.Manager
	post     func(func())
	logger   *slog.Logger

	mu       sync.RWMutex
	criteria search.Criteria
	interval time.Duration

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a new Poller.
func New(opts Options) *Poller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	post := opts.Post
	if post == nil {
		post = func(f func()) { f() }
	}

	return &Poller{
		provider: opts.Provider,
		manager:  opts.Manager,
		post:     post,
		logger:   logger,
		criteria: opts.Criteria,
		interval: opts.Interval,
	}
}

// Start begins the polling loop. The first tick runs immediately.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	interval := p.interval
	p.mu.Unlock()

	go p.loop(ctx)

	p.logger.Info("poller started", "interval", interval)
	return nil
}

// Stop stops the polling loop and waits for it to finish. Displayed
// overlays are left for the caller to tear down.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh
	p.logger.Debug("poller stopped")
}

// Apply installs new criteria, appearance, and interval from a reloaded
// config. The changes take effect on the next tick.
func (p *Poller) Apply(cfg *config.Config) {
	criteria := search.BuildCriteria(cfg.Match.Title, cfg.Match.App, cfg.Match.Ignore)

	p.mu.Lock()
	p.criteria = criteria
	p.interval = cfg.Poll.Interval.Duration()
	p.mu.Unlock()

	p.manager.SetAppearance(cfg.Overlay)

	p.logger.Info("poller config applied",
		"title", cfg.Match.Title,
		"app", cfg.Match.App,
		"interval", cfg.Poll.Interval.Duration(),
	)
}

// loop is the polling loop.
func (p *Poller) loop(ctx context.Context) {
	defer close(p.doneCh)

	p.mu.RLock()
	interval := p.interval
	p.mu.RUnlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.Tick(ctx)

			// Pick up an interval change from a config reload.
			p.mu.RLock()
			next := p.interval
			p.mu.RUnlock()
			if next != interval {
				interval = next
				ticker.Reset(interval)
				p.logger.Debug("poll interval changed", "interval", interval)
			}
		}
	}
}

// Tick runs one query/reconcile cycle. An enumeration failure is logged
// and the displayed overlay set is left untouched.
func (p *Poller) Tick(ctx context.Context) {
	p.mu.RLock()
	criteria := p.criteria
	p.mu.RUnlock()

	results, err := search.Find(ctx, p.provider, criteria)
	if err != nil {
		p.logger.Warn("window query failed, keeping overlays", "error", err)
		return
	}

	p.logger.Debug("poll tick",
		"scanned", results.TotalWindows,
		"matched", len(results.Matched),
	)

	p.post(func() {
		p.manager.Sync(results.Matched)
	})
}
