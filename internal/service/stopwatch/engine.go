package stopwatch

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/oshokin/daylight/internal/clock"
	"github.com/oshokin/daylight/internal/domain/timefmt"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/ticker"
)

// RefreshPeriod is the display refresh cadence while running.
const RefreshPeriod = 10 * time.Millisecond

// Snapshot is a copy of the stopwatch state.
type Snapshot struct {
	// Elapsed is the measured time at the moment of the snapshot.
	Elapsed time.Duration
	// Running reports whether the stopwatch is measuring.
	Running bool
	// Laps holds the elapsed time recorded by each Lap call.
	Laps []time.Duration
}

// String renders the elapsed time as MM:SS:CS.
func (s Snapshot) String() string {
	return timefmt.Elapsed(s.Elapsed)
}

// Recorder receives stopwatch metrics.
type Recorder interface {
	StopwatchStarted()
	StopwatchLapped()
}

// Option configures the Engine.
type Option func(*Engine)

// WithOnTick registers a callback receiving the state on every refresh and transition.
func WithOnTick(fn func(Snapshot)) Option {
	return func(e *Engine) {
		e.onTick = fn
	}
}

// WithRefreshPeriod overrides the refresh cadence.
func WithRefreshPeriod(period time.Duration) Option {
	return func(e *Engine) {
		if period > 0 {
			e.refresh = period
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(e *Engine) {
		if recorder != nil {
			e.recorder = recorder
		}
	}
}

// Engine measures elapsed time as the difference between now and a start origin.
// Refresh ticks only trigger redraws; they never add to the measurement.
type Engine struct {
	ctx      context.Context
	clock    clock.Clock
	refresh  time.Duration
	onTick   func(Snapshot)
	recorder Recorder

	// origin is now minus the elapsed time carried over from previous runs.
	origin time.Time
	// elapsed is the frozen measurement while stopped.
	elapsed time.Duration
	running bool
	laps    []time.Duration
	ticker  *ticker.Ticker
	mu      sync.Mutex
}

// New creates a stopped stopwatch at zero.
func New(ctx context.Context, c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		ctx:      logger.WithName(ctx, "stopwatch"),
		clock:    c,
		refresh:  RefreshPeriod,
		recorder: nopRecorder{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start resumes measuring from the current elapsed time. Starting a running stopwatch is a no-op.
func (e *Engine) Start() Snapshot {
	e.mu.Lock()

	if e.running {
		snapshot := e.snapshotLocked()
		e.mu.Unlock()

		return snapshot
	}

	e.origin = e.clock.Now().Add(-e.elapsed)
	e.running = true
	e.ticker = ticker.New(e.clock, e.refresh, func(time.Time) {
		e.tick()
	})

	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.recorder.StopwatchStarted()
	logger.DebugKV(e.ctx, "Stopwatch started", "elapsed", snapshot.String())
	e.emit(snapshot)

	return snapshot
}

// Stop freezes the elapsed time. Stopping a stopped stopwatch is a no-op.
func (e *Engine) Stop() Snapshot {
	e.mu.Lock()

	if !e.running {
		snapshot := e.snapshotLocked()
		e.mu.Unlock()

		return snapshot
	}

	t := e.haltLocked()
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	t.Stop()
	logger.DebugKV(e.ctx, "Stopwatch stopped", "elapsed", snapshot.String())
	e.emit(snapshot)

	return snapshot
}

// Reset stops the stopwatch and clears the measurement and laps.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	t := e.haltLocked()
	e.elapsed = 0
	e.laps = nil
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	t.Stop()
	e.emit(snapshot)

	return snapshot
}

// Lap records the current elapsed time. It returns false when the stopwatch is not running.
func (e *Engine) Lap() (time.Duration, bool) {
	e.mu.Lock()

	if !e.running {
		e.mu.Unlock()
		return 0, false
	}

	split := e.elapsedLocked()
	e.laps = append(e.laps, split)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.recorder.StopwatchLapped()
	e.emit(snapshot)

	return split, true
}

// Laps returns a copy of the recorded laps.
func (e *Engine) Laps() []time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.laps)
}

// Elapsed returns the measured time, recomputed from the origin while running.
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.elapsedLocked()
}

// Snapshot returns a copy of the stopwatch state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

// Close stops the refresh ticker and freezes the measurement.
func (e *Engine) Close() {
	e.mu.Lock()

	var t *ticker.Ticker
	if e.running {
		t = e.haltLocked()
	}

	e.mu.Unlock()

	t.Stop()
}

func (e *Engine) tick() {
	e.mu.Lock()

	if !e.running {
		e.mu.Unlock()
		return
	}

	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.emit(snapshot)
}

// haltLocked freezes elapsed and hands the ticker to the caller.
func (e *Engine) haltLocked() *ticker.Ticker {
	if e.running {
		e.elapsed = e.clock.Now().Sub(e.origin)
	}

	t := e.ticker
	e.ticker = nil
	e.running = false

	return t
}

func (e *Engine) elapsedLocked() time.Duration {
	if e.running {
		return e.clock.Now().Sub(e.origin)
	}

	return e.elapsed
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Elapsed: e.elapsedLocked(),
		Running: e.running,
		Laps:    slices.Clone(e.laps),
	}
}

func (e *Engine) emit(snapshot Snapshot) {
	if e.onTick != nil {
		e.onTick(snapshot)
	}
}

type nopRecorder struct{}

func (nopRecorder) StopwatchStarted() {}
func (nopRecorder) StopwatchLapped()  {}
