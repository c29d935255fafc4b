// Package clock provides an abstraction over time operations for testability.
//
// Production code uses Real; tests inject Fake and move time forward explicitly,
// which fires due AfterFunc callbacks synchronously and in deadline order.
package clock

import "time"

// Clock provides the time operations the engines depend on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc waits for the duration to elapse and then calls f.
	// Returns a Timer that can be used to cancel the call.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer represents a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the Timer from firing. Returns true if the call was stopped,
	// false if the timer has already expired or been stopped.
	Stop() bool
}

// Real implements Clock using the standard time package.
type Real struct{}

// NewReal creates a new Real clock.
func NewReal() *Real {
	return new(Real)
}

// Now implements Clock.Now using time.Now.
func (*Real) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Clock.AfterFunc using time.AfterFunc.
//
//nolint:ireturn // Returning the Timer interface is the point of the abstraction.
func (*Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
