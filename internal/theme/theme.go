// Package theme models the light/dark display preference and its persistence.
package theme

import "strings"

// Mode is a display theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Key is the name the preference is stored under.
const Key = "themeMode"

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool {
	return m == Dark
}

func (m Mode) String() string {
	return string(m)
}

// Resolve returns the saved mode when it is valid and otherwise follows the
// host's color-scheme preference.
func Resolve(saved string, prefersDark bool) Mode {
	if mode, ok := ParseMode(saved); ok {
		return mode
	}
	if prefersDark {
		return Dark
	}
	return Light
}
