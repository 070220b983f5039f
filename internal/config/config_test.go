package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2*time.Second, cfg.Poll.Interval.Duration())
	assert.Equal(t, 300.0, cfg.Overlay.ExtraWidth)
	assert.Equal(t, 0.9, cfg.Overlay.Alpha)
	assert.Equal(t, 10, cfg.Overlay.Level)
	assert.True(t, cfg.Overlay.Shadow)
	assert.True(t, cfg.Overlay.Movable)
	assert.Equal(t, "PANEL DETECTOR OVERLAY", cfg.Overlay.Title)
	assert.Empty(t, cfg.Match.Title)
	assert.Empty(t, cfg.Match.App)
	assert.NotNil(t, cfg.Match.Ignore)
	assert.Empty(t, cfg.Match.Ignore)
	assert.NoError(t, cfg.Validate())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"2s", 2 * time.Second},
		{"500ms", 500 * time.Millisecond},
		{"1m30s", 90 * time.Second},
		{"250", 250 * time.Millisecond},
	}

	for _, tt := range tests {
		var d Duration
		err := d.UnmarshalText([]byte(tt.input))
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, d.Duration(), "input %q", tt.input)
	}
}

func TestDuration_UnmarshalText_Invalid(t *testing.T) {
	var d Duration
	err := d.UnmarshalText([]byte("soon"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "soon")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[match]
title = "Open"
app = "Safari"
ignore = ["Raycast"]

[poll]
interval = "500ms"

[overlay]
extra_width = 120.0
alpha = 0.5
level = 12
shadow = false
movable = false
title = "TAGGED"

[logging]
verbose = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Open", cfg.Match.Title)
	assert.Equal(t, "Safari", cfg.Match.App)
	assert.Equal(t, []string{"Raycast"}, cfg.Match.Ignore)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Interval.Duration())
	assert.Equal(t, 120.0, cfg.Overlay.ExtraWidth)
	assert.Equal(t, 0.5, cfg.Overlay.Alpha)
	assert.Equal(t, 12, cfg.Overlay.Level)
	assert.False(t, cfg.Overlay.Shadow)
	assert.False(t, cfg.Overlay.Movable)
	assert.Equal(t, "TAGGED", cfg.Overlay.Title)
	assert.True(t, cfg.Logging.Verbose)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[match]\ntitle = \"Open\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Open", cfg.Match.Title)
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval.Duration())
	assert.Equal(t, 0.9, cfg.Overlay.Alpha)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[overlay]\nalpha = 1.5\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Poll.Interval = Duration(0)
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Overlay.Alpha = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Overlay.ExtraWidth = -1
	assert.Error(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Match.Title = "Open"
	cfg.Poll.Interval = Duration(750 * time.Millisecond)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveLoadRoundTrip_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.Save(path))

	// An untouched default config survives unchanged, empty ignore-list
	// included.
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.NotNil(t, loaded.Match.Ignore)
}
