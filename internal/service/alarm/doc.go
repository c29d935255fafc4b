// Package alarm implements the single-alarm engine.
//
// The engine moves between unarmed, armed and triggered. It is evaluated once
// per clock tick, fires at most once per arm, starts looping playback with a
// ceiling and releases that playback on every exit path.
package alarm
