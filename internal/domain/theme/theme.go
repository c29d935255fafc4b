package theme

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Identifier names one of the colour themes.
type Identifier int

const (
	// Light is the morning theme.
	Light Identifier = iota
	// Green is the afternoon theme.
	Green
	// Dark is the evening and night theme, and the system dark-mode theme.
	Dark
)

// Identifiers lists every theme in a stable order.
//
//nolint:gochecknoglobals // Read-only enumeration.
var Identifiers = []Identifier{Light, Green, Dark}

// String returns the lowercase theme name.
func (id Identifier) String() string {
	switch id {
	case Light:
		return "light"
	case Green:
		return "green"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("theme(%d)", int(id))
	}
}

// Preference is the host's dark-mode signal.
type Preference int

const (
	// PreferenceUnknown means the host did not report a preference.
	PreferenceUnknown Preference = iota
	// PreferenceLight means the host explicitly prefers a light appearance.
	PreferenceLight
	// PreferenceDark means the host explicitly prefers a dark appearance.
	PreferenceDark
)

// String returns the lowercase preference name.
func (p Preference) String() string {
	switch p {
	case PreferenceLight:
		return "light"
	case PreferenceDark:
		return "dark"
	default:
		return "unknown"
	}
}

// Mode pins the theme or leaves it to Resolve.
type Mode string

const (
	// ModeAuto derives the theme from time of day and preference.
	ModeAuto Mode = "auto"
	// ModeLight pins the Light theme.
	ModeLight Mode = "light"
	// ModeGreen pins the Green theme.
	ModeGreen Mode = "green"
	// ModeDark pins the Dark theme.
	ModeDark Mode = "dark"
)

// Hour boundaries of the time-of-day themes.
const (
	morningStartHour   = 6
	afternoonStartHour = 12
	eveningStartHour   = 18
)

// ErrUnknownMode is returned by ParseMode for unsupported values.
var ErrUnknownMode = errors.New("unknown theme mode")

// Resolve derives the theme from the wall-clock time and host preference.
// A dark preference always wins. Otherwise [6,12) is Light, [12,18) is Green
// and the rest of the day is Dark. A zero time yields Light.
func Resolve(now time.Time, pref Preference) Identifier {
	if pref == PreferenceDark {
		return Dark
	}

	if now.IsZero() {
		return Light
	}

	return ForHour(now.Hour())
}

// ForHour classifies an hour of day (0-23).
func ForHour(hour int) Identifier {
	switch {
	case hour >= morningStartHour && hour < afternoonStartHour:
		return Light
	case hour >= afternoonStartHour && hour < eveningStartHour:
		return Green
	default:
		return Dark
	}
}

// Select applies a pinned mode, falling back to Resolve for ModeAuto.
func Select(mode Mode, now time.Time, pref Preference) Identifier {
	switch mode {
	case ModeLight:
		return Light
	case ModeGreen:
		return Green
	case ModeDark:
		return Dark
	default:
		return Resolve(now, pref)
	}
}

// ParseMode converts a configuration string into a Mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeLight, ModeGreen, ModeDark:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
