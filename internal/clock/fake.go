package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock for tests.
// Callbacks registered with AfterFunc run synchronously inside Advance/Set,
// on the goroutine that moves the time, without any internal lock held.
type Fake struct {
	// now is the current fake time.
	now time.Time
	// pending holds timers that have not fired or been stopped yet.
	pending []*fakeTimer
	// seq orders timers with identical deadlines by registration.
	seq uint64
	// mu protects now, pending and seq.
	mu sync.Mutex
}

// fakeTimer is a pending callback on a Fake clock.
type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	seq      uint64
	fn       func()
}

// NewFake returns a Fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

// AfterFunc registers fn to run once the fake time reaches now+d.
//
//nolint:ireturn // Returning the Timer interface is the point of the abstraction.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++

	t := &fakeTimer{
		clock:    f,
		deadline: f.now.Add(d),
		seq:      f.seq,
		fn:       fn,
	}

	f.pending = append(f.pending, t)

	return t
}

// Advance moves the time forward by d, firing every callback that becomes due.
func (f *Fake) Advance(d time.Duration) {
	f.Set(f.Now().Add(d))
}

// Set moves the time to target, firing every callback due on the way.
// Each callback observes Now() equal to its own deadline.
func (f *Fake) Set(target time.Time) {
	for {
		f.mu.Lock()

		next := f.popDue(target)
		if next == nil {
			if target.After(f.now) {
				f.now = target
			}

			f.mu.Unlock()

			return
		}

		if next.deadline.After(f.now) {
			f.now = next.deadline
		}

		f.mu.Unlock()

		next.fn()
	}
}

// Pending reports how many callbacks are scheduled and not yet fired.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.pending)
}

// popDue removes and returns the earliest timer due at or before target.
// Must be called with f.mu held.
func (f *Fake) popDue(target time.Time) *fakeTimer {
	index := -1

	for i, t := range f.pending {
		if t.deadline.After(target) {
			continue
		}

		if index < 0 || earlier(t, f.pending[index]) {
			index = i
		}
	}

	if index < 0 {
		return nil
	}

	t := f.pending[index]
	f.pending = append(f.pending[:index], f.pending[index+1:]...)

	return t
}

// Stop removes the timer from the fake clock.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	for i, pending := range t.clock.pending {
		if pending == t {
			t.clock.pending = append(t.clock.pending[:i], t.clock.pending[i+1:]...)
			return true
		}
	}

	return false
}

func earlier(a, b *fakeTimer) bool {
	if a.deadline.Equal(b.deadline) {
		return a.seq < b.seq
	}

	return a.deadline.Before(b.deadline)
}
