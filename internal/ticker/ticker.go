// Package ticker implements a cancellable periodic callback on top of clock.Clock.
//
// A Ticker re-arms a one-shot AfterFunc timer after every invocation, so the
// same code runs over the real clock and over clock.Fake in tests.
package ticker

import (
	"sync"
	"time"

	"github.com/oshokin/daylight/internal/clock"
)

// Func receives the clock time of the tick.
type Func func(now time.Time)

// Ticker invokes a callback every period until stopped.
type Ticker struct {
	// clock schedules the invocations.
	clock clock.Clock
	// period is the interval between invocations.
	period time.Duration
	// fn is the callback invoked on every tick.
	fn Func
	// timer is the pending invocation.
	timer clock.Timer
	// stopped is set once Stop is called.
	stopped bool
	// mu protects timer and stopped.
	mu sync.Mutex
}

// New starts a Ticker calling fn every period on the provided clock.
// A non-positive period is treated as one millisecond.
func New(c clock.Clock, period time.Duration, fn Func) *Ticker {
	if period <= 0 {
		period = time.Millisecond
	}

	t := &Ticker{
		clock:  c,
		period: period,
		fn:     fn,
	}

	t.mu.Lock()
	t.timer = c.AfterFunc(period, t.fire)
	t.mu.Unlock()

	return t
}

// Period returns the tick interval.
func (t *Ticker) Period() time.Duration {
	return t.period
}

// Stop cancels the pending invocation. No invocation is scheduled after Stop returns,
// but one that already passed its stopped check may still be running; callers that
// own state guard it themselves.
// Stop is idempotent and safe to call from inside the callback.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	t.stopped = true

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Stopped reports whether Stop has been called.
func (t *Ticker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stopped
}

// fire re-arms the timer and runs the callback outside the lock.
func (t *Ticker) fire() {
	t.mu.Lock()

	if t.stopped {
		t.mu.Unlock()
		return
	}

	t.timer = t.clock.AfterFunc(t.period, t.fire)
	t.mu.Unlock()

	t.fn(t.clock.Now())
}
