// Package ui models the page chrome that lives outside the catalog: theme,
// mobile navigation drawer and the decorative cursor follower.
package ui

import (
	"fmt"
	"strings"
)

// Theme is the display preference applied as data-theme on <html>.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	DefaultTheme = Light
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Toggle flips light and dark.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Pressed is the aria-pressed value of the toggle button.
func (t Theme) Pressed() bool { return t == Dark }

// Announcement is the polite status message read after a change.
func (t Theme) Announcement() string {
	return fmt.Sprintf("Theme changed to %s mode", t)
}

func (t Theme) String() string { return string(t) }
