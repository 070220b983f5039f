package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the event burst an editor save produces (write,
// chmod, rename) into a single reload.
const debounceDelay = 100 * time.Millisecond

// Watcher watches the config file for changes and reloads it. Changed
// configs that fail to parse or validate are reported through the error
// callback and do not replace the current config.
type Watcher struct {
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	configPath string

	mu       sync.Mutex
	running  bool
	onReload func(cfg *Config)
	onError  func(err error)

	done chan struct{}
}

// NewWatcher creates a watcher for the given config file path.
// If path is empty, the default config path is watched.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if path == "" {
		path = ConfigPath()
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:    watcher,
		logger:     logger,
		configPath: path,
		done:       make(chan struct{}),
	}, nil
}

// SetReloadCallback sets the callback invoked with each valid new config.
func (w *Watcher) SetReloadCallback(callback func(cfg *Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = callback
}

// SetErrorCallback sets the callback invoked when a changed config fails
// to load or validate.
func (w *Watcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = callback
}

// Start begins watching the config file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (more reliable for writes,
	// editors often replace the file).
	dir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.watch()

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// watch is the main watch loop. Reloads are debounced: a burst of events
// on the config file resets the timer, and the reload runs once the file
// has been quiet for debounceDelay.
func (w *Watcher) watch() {
	filename := filepath.Base(w.configPath)

	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce == nil {
					debounce = time.NewTimer(debounceDelay)
					debounceC = debounce.C
				} else {
					if !debounce.Stop() {
						<-debounceC
					}
					debounce.Reset(debounceDelay)
				}
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.done:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

// reload loads the changed config and dispatches it to the callbacks.
func (w *Watcher) reload() {
	w.mu.Lock()
	onReload := w.onReload
	onError := w.onError
	w.mu.Unlock()

	cfg, err := Load(w.configPath)
	if err != nil {
		w.logger.Warn("config file changed but reload failed", "path", w.configPath, "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.logger.Info("config reloaded", "path", w.configPath)
	if onReload != nil {
		onReload(cfg)
	}
}

// Stop stops the config watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
