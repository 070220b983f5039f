package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsoleLogger(verbose bool) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(&consoleHandler{writer: buf, verbose: verbose}), buf
}

func TestConsoleHandler_Levels(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	log, buf := newConsoleLogger(true)

	log.Debug("dbg")
	log.Info("inf")
	log.Warn("wrn")
	log.Error("err")

	out := buf.String()
	assert.Contains(t, out, "DEBUG: dbg")
	assert.Contains(t, out, "inf")
	assert.NotContains(t, out, "INFO:")
	assert.Contains(t, out, "WARNING: wrn")
	assert.Contains(t, out, "ERROR: err")
}

func TestConsoleHandler_VerboseGatesDebug(t *testing.T) {
	log, buf := newConsoleLogger(false)

	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleHandler_Attrs(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	log, buf := newConsoleLogger(false)

	log.With("app", "Safari").Info("created overlay", "window_number", 42)

	assert.Contains(t, buf.String(), "created overlay app=Safari window_number=42")
}

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wintag.log")

	log, closeFn, err := New(Options{FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Info("hello", "key", "value")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "key=value")
}

func TestNew_NoFileSink(t *testing.T) {
	log, closeFn, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NoError(t, closeFn())
}

func TestTeeHandler_EnabledWhenAnySinkIs(t *testing.T) {
	quiet := &consoleHandler{writer: &bytes.Buffer{}, verbose: false}
	tee := &teeHandler{handlers: []slog.Handler{quiet}}

	assert.False(t, tee.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, tee.Enabled(context.Background(), slog.LevelInfo))
}
