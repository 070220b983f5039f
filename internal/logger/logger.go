// Package logger provides structured logging with console and rotating
// file output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger.
type Options struct {
	Verbose    bool   // Console shows debug output
	FilePath   string // Log file path ("" disables the file sink)
	MaxSizeMB  int    // Megabytes before rotation
	MaxBackups int    // Rotated files to retain
	MaxAgeDays int    // Days to retain rotated files
}

// New builds a slog.Logger writing colorized output to stderr and, when a
// file path is configured, structured text to a rotating log file. The
// returned close function flushes and closes the file sink.
func New(opts Options) (*slog.Logger, func() error, error) {
	handlers := make([]slog.Handler, 0, 2)

	handlers = append(handlers, &consoleHandler{
		writer:  os.Stderr,
		verbose: opts.Verbose,
	})

	closeFn := func() error { return nil }

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}

		rotator := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		handlers = append(handlers, slog.NewTextHandler(rotator, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		closeFn = rotator.Close
	}

	return slog.New(&teeHandler{handlers: handlers}), closeFn, nil
}

// teeHandler fans records out to every handler that accepts the level.
type teeHandler struct {
	handlers []slog.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &teeHandler{handlers: handlers}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &teeHandler{handlers: handlers}
}

// consoleHandler writes clean, colorized messages without timestamps.
type consoleHandler struct {
	mu      sync.Mutex
	writer  io.Writer
	verbose bool
	attrs   []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if !h.verbose && level < slog.LevelInfo {
		return false
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var prefix string
	var c *color.Color

	switch {
	case r.Level >= slog.LevelError:
		prefix = "ERROR: "
		c = color.New(color.FgRed)
	case r.Level >= slog.LevelWarn:
		prefix = "WARNING: "
		c = color.New(color.FgYellow)
	case r.Level < slog.LevelInfo:
		prefix = "DEBUG: "
		c = color.New(color.FgCyan)
	}

	var b strings.Builder
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if c != nil {
		_, err = c.Fprintln(h.writer, prefix+b.String())
	} else {
		_, err = fmt.Fprintln(h.writer, b.String())
	}
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	combined = append(combined, attrs...)
	return &consoleHandler{
		writer:  h.writer,
		verbose: h.verbose,
		attrs:   combined,
	}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened on the console; the file sink keeps them.
	return h
}
