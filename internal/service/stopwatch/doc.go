// Package stopwatch implements a drift-free stopwatch with laps.
//
// Elapsed time is always computed from a start origin and the clock, so a
// delayed or skipped refresh tick never changes the measurement.
package stopwatch
