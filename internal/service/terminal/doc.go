// Package terminal runs the daylight terminal UI as a process: it checks for a
// TTY, moves logging to a rotated file, detects the terminal's dark background
// and drives a local session through the tui package.
package terminal
