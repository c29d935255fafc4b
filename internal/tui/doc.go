// Package tui is the terminal front end of daylight.
//
// It renders four screens (home, clock with alarm, countdown timer, stopwatch)
// on top of a session. Session events arrive as bubbletea messages; key presses
// are translated into session commands. Colours follow the session's theme.
package tui
