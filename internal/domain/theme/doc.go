// Package theme derives the colour theme from the time of day and the host's
// dark-mode preference, and holds the palettes each theme renders with.
//
// Resolve is a pure function; callers decide how often to re-evaluate it.
// Palettes can be overridden from a TOML file without touching the built-ins.
package theme
