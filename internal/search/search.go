// Package search implements window matching: an optional title/app-name
// equality filter plus an ignore-list of known system UI processes.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/wintag/internal/winsys"
)

// DefaultIgnoredApps returns the built-in ignore-list of system UI
// processes. Matching is case-insensitive substring against the owning
// app name.
func DefaultIgnoredApps() []string {
	return []string{
		"notification center",
		"notificationcenter",
		"sketchybar",
		"borders",
		"control center",
		"controlcenter",
		"dock",
		"menubar",
		"spotlight",
	}
}

// BuildCriteria assembles a Criteria from optional title and app-name
// filters plus extra ignore-list entries on top of the built-in list.
// Empty title/app mean "match any".
func BuildCriteria(title, appName string, extraIgnores []string) Criteria {
	c := NewCriteria().WithIgnoredApps(DefaultIgnoredApps())
	for _, app := range extraIgnores {
		c = c.AddIgnoredApp(app)
	}
	if title != "" {
		c = c.WithTitle(title)
	}
	if appName != "" {
		c = c.WithAppName(appName)
	}
	return c
}

// Criteria selects windows by title and owning application. A zero Criteria
// matches every window; the ignore-list always applies.
type Criteria struct {
	title    string
	hasTitle bool

	appName string
	hasApp  bool

	ignored map[string]struct{}
}

// NewCriteria returns an empty Criteria with no ignore-list.
func NewCriteria() Criteria {
	return Criteria{ignored: make(map[string]struct{})}
}

// WithTitle requires an exact title match.
func (c Criteria) WithTitle(title string) Criteria {
	c.title = title
	c.hasTitle = true
	return c
}

// WithAppName requires an exact owning-app-name match.
func (c Criteria) WithAppName(appName string) Criteria {
	c.appName = appName
	c.hasApp = true
	return c
}

// WithIgnoredApps replaces the ignore-list.
func (c Criteria) WithIgnoredApps(apps []string) Criteria {
	c.ignored = make(map[string]struct{}, len(apps))
	for _, app := range apps {
		c.ignored[strings.ToLower(app)] = struct{}{}
	}
	return c
}

// AddIgnoredApp adds one entry to the ignore-list.
func (c Criteria) AddIgnoredApp(app string) Criteria {
	if c.ignored == nil {
		c.ignored = make(map[string]struct{})
	}
	c.ignored[strings.ToLower(app)] = struct{}{}
	return c
}

// Title returns the configured title filter and whether one is set.
func (c Criteria) Title() (string, bool) {
	return c.title, c.hasTitle
}

// AppName returns the configured app-name filter and whether one is set.
func (c Criteria) AppName() (string, bool) {
	return c.appName, c.hasApp
}

// ShouldIgnore reports whether the owning app is on the ignore-list.
func (c Criteria) ShouldIgnore(appName string) bool {
	lower := strings.ToLower(appName)
	for ignored := range c.ignored {
		if strings.Contains(lower, ignored) {
			return true
		}
	}
	return false
}

// Matches reports whether a window with the given title and owning app
// passes the criteria. Ignored apps never match.
func (c Criteria) Matches(title, appName string) bool {
	if c.ShouldIgnore(appName) {
		return false
	}
	if c.hasTitle && title != c.title {
		return false
	}
	if c.hasApp && appName != c.appName {
		return false
	}
	return true
}

// Results holds the outcome of one window query. TotalWindows counts the
// windows scanned after ignore-list removal, before criteria filtering.
type Results struct {
	TotalWindows int
	Matched      []winsys.Window
}

// Find enumerates windows through the provider and applies the criteria.
func Find(ctx context.Context, provider winsys.Provider, criteria Criteria) (Results, error) {
	windows, err := provider.ListWindows(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("search: list windows: %w", err)
	}

	var results Results
	for _, w := range windows {
		if criteria.ShouldIgnore(w.AppName) {
			continue
		}
		results.TotalWindows++

		if !criteria.Matches(w.Title, w.AppName) {
			continue
		}
		results.Matched = append(results.Matched, w)
	}

	return results, nil
}
