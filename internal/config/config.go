// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/wintag/internal/geometry"
)

// Default configuration values.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultExtraWidth   = geometry.DefaultExtraWidth
	DefaultAlpha        = 0.9
	DefaultLevel        = 10
	DefaultPanelTitle   = "PANEL DETECTOR OVERLAY"
	DefaultLabelPrefix  = "PANEL DETECTED: "
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings like "2s" or "500ms", or from integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Integer values are milliseconds.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '2s', '500ms' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the wintag configuration, loaded from
// ~/.config/wintag/config.toml.
type Config struct {
	Match   MatchConfig   `toml:"match"`
	Poll    PollConfig    `toml:"poll"`
	Overlay OverlayConfig `toml:"overlay"`
	Logging LoggingConfig `toml:"logging"`
}

// MatchConfig holds the window selection criteria.
type MatchConfig struct {
	Title  string   `toml:"title"`  // Exact title match ("" = any)
	App    string   `toml:"app"`    // Exact owning-app match ("" = any)
	Ignore []string `toml:"ignore"` // Extra ignored apps, on top of the built-ins
}

// PollConfig holds the reconciliation loop settings.
type PollConfig struct {
	Interval Duration `toml:"interval"` // e.g. "2s", "500ms", or milliseconds
}

// OverlayConfig holds overlay panel appearance settings.
type OverlayConfig struct {
	ExtraWidth float64 `toml:"extra_width"` // Pixels added to the source window width
	Alpha      float64 `toml:"alpha"`       // Panel opacity, (0, 1]
	Level      int     `toml:"level"`       // Window server level for the panel
	Shadow     bool    `toml:"shadow"`      // Draw a panel shadow
	Movable    bool    `toml:"movable"`     // Panel is movable by its background
	Title      string  `toml:"title"`       // Panel title (not visible on borderless panels)
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Verbose    bool   `toml:"verbose"`
	File       string `toml:"file"`        // Log file path ("" = default location)
	MaxSizeMB  int    `toml:"max_size"`    // Megabytes before rotation
	MaxBackups int    `toml:"max_backups"` // Rotated files to retain
	MaxAgeDays int    `toml:"max_age"`     // Days to retain rotated files
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			Ignore: []string{},
		},
		Poll: PollConfig{
			Interval: Duration(DefaultPollInterval),
		},
		Overlay: OverlayConfig{
			ExtraWidth: DefaultExtraWidth,
			Alpha:      DefaultAlpha,
			Level:      DefaultLevel,
			Shadow:     true,
			Movable:    true,
			Title:      DefaultPanelTitle,
		},
		Logging: LoggingConfig{
			MaxSizeMB:  2,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks the configuration for values the runtime cannot use.
func (c *Config) Validate() error {
	if c.Poll.Interval.Duration() <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.Overlay.Alpha <= 0 || c.Overlay.Alpha > 1 {
		return fmt.Errorf("overlay alpha %v out of range (0, 1]", c.Overlay.Alpha)
	}
	if c.Overlay.ExtraWidth < 0 {
		return fmt.Errorf("overlay extra width %v must not be negative", c.Overlay.ExtraWidth)
	}
	return nil
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "wintag", "config.toml")
}

// DefaultLogPath returns the default log file path under the state
// directory. Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func DefaultLogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "wintag", "wintag.log")
}

// Load loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
