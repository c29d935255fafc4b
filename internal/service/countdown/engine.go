package countdown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/daylight/internal/clock"
	"github.com/oshokin/daylight/internal/domain/timefmt"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/ticker"
)

const (
	// DefaultSeconds is the duration configured on a new engine.
	DefaultSeconds = 60
	// TickPeriod is the countdown step.
	TickPeriod = time.Second

	maxHours      = 23
	maxMinutes    = 59
	maxSeconds    = 59
	notifyTimeout = 10 * time.Second
)

var (
	// ErrRunning is returned when the countdown is reconfigured while running.
	ErrRunning = errors.New("countdown is running")
	// ErrInvalidDuration is returned when a component of the duration is out of range.
	ErrInvalidDuration = errors.New("invalid countdown duration")
)

// Snapshot is a copy of the countdown state.
type Snapshot struct {
	// Configured is the duration restored by Reset, in seconds.
	Configured int
	// Remaining is the number of seconds left.
	Remaining int
	// Running reports whether the countdown is ticking.
	Running bool
}

// String renders the remaining time as HH:MM:SS.
func (s Snapshot) String() string {
	return timefmt.Countdown(s.Remaining)
}

// Notifier delivers the user-visible notification when the countdown finishes.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Recorder receives countdown metrics.
type Recorder interface {
	CountdownStarted()
	CountdownFinished()
}

// Option configures the Engine.
type Option func(*Engine)

// WithOnTick registers a callback receiving the state after every step.
func WithOnTick(fn func(Snapshot)) Option {
	return func(e *Engine) {
		e.onTick = fn
	}
}

// WithOnFinish registers a callback invoked when the countdown reaches zero.
func WithOnFinish(fn func(Snapshot)) Option {
	return func(e *Engine) {
		e.onFinish = fn
	}
}

// WithNotifier sets the notifier called when the countdown reaches zero.
func WithNotifier(notifier Notifier) Option {
	return func(e *Engine) {
		e.notifier = notifier
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

// Engine counts a configured duration down to zero, one second per tick.
type Engine struct {
	ctx      context.Context
	clock    clock.Clock
	onTick   func(Snapshot)
	onFinish func(Snapshot)
	notifier Notifier
	recorder Recorder

	configured int
	remaining  int
	running    bool
	// run identifies the current Start so ticks of an earlier ticker are ignored.
	run    uint64
	ticker *ticker.Ticker
	mu     sync.Mutex
}

// New creates a stopped countdown configured to DefaultSeconds.
func New(ctx context.Context, c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		ctx:        logger.WithName(ctx, "countdown"),
		clock:      c,
		recorder:   nopRecorder{},
		configured: DefaultSeconds,
		remaining:  DefaultSeconds,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Configure sets both the configured and the remaining duration.
func (e *Engine) Configure(hours, minutes, seconds int) (Snapshot, error) {
	if hours < 0 || hours > maxHours || minutes < 0 || minutes > maxMinutes || seconds < 0 || seconds > maxSeconds {
		return e.Snapshot(), fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidDuration, hours, minutes, seconds)
	}

	e.mu.Lock()

	if e.running {
		e.mu.Unlock()
		return e.Snapshot(), ErrRunning
	}

	total := hours*3600 + minutes*60 + seconds
	e.configured = total
	e.remaining = total
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	logger.DebugKV(e.ctx, "Countdown configured", "seconds", total)
	e.emit(snapshot)

	return snapshot, nil
}

// Start begins ticking. It is a no-op when running or when nothing is left.
func (e *Engine) Start() Snapshot {
	e.mu.Lock()

	if e.running || e.remaining == 0 {
		snapshot := e.snapshotLocked()
		e.mu.Unlock()

		return snapshot
	}

	e.running = true
	e.run++

	run := e.run
	e.ticker = ticker.New(e.clock, TickPeriod, func(time.Time) {
		e.step(run)
	})

	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.recorder.CountdownStarted()
	logger.DebugKV(e.ctx, "Countdown started", "remaining", snapshot.Remaining)
	e.emit(snapshot)

	return snapshot
}

// Stop halts ticking and keeps the remaining time. Stopping a stopped countdown is a no-op.
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
	e.emit(snapshot)

	return snapshot
}

// Reset stops the countdown and restores the configured duration.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	t := e.haltLocked()
	e.remaining = e.configured
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	t.Stop()
	e.emit(snapshot)

	return snapshot
}

// Tick consumes one second. At zero the countdown stops by itself and the finish callback runs.
// Ticks on a stopped countdown are ignored.
func (e *Engine) Tick() Snapshot {
	return e.step(0)
}

// step consumes one second for run, or for the current run when run is 0.
func (e *Engine) step(run uint64) Snapshot {
	e.mu.Lock()

	if !e.running || (run != 0 && run != e.run) {
		snapshot := e.snapshotLocked()
		e.mu.Unlock()

		return snapshot
	}

	e.remaining--

	var (
		t        *ticker.Ticker
		finished bool
	)

	if e.remaining <= 0 {
		e.remaining = 0
		t = e.haltLocked()
		finished = true
	}

	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	t.Stop()
	e.emit(snapshot)

	if finished {
		e.finish(snapshot)
	}

	return snapshot
}

// Snapshot returns a copy of the countdown state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

// Close stops the ticker.
func (e *Engine) Close() {
	e.mu.Lock()
	t := e.haltLocked()
	e.mu.Unlock()

	t.Stop()
}

// haltLocked marks the countdown stopped and hands the ticker to the caller to stop outside the lock.
func (e *Engine) haltLocked() *ticker.Ticker {
	t := e.ticker
	e.ticker = nil
	e.running = false

	return t
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Configured: e.configured,
		Remaining:  e.remaining,
		Running:    e.running,
	}
}

func (e *Engine) finish(snapshot Snapshot) {
	e.recorder.CountdownFinished()
	logger.InfoKV(e.ctx, "Countdown finished", "configured", timefmt.Countdown(snapshot.Configured))

	if e.notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(e.ctx, notifyTimeout)
			defer cancel()

			message := fmt.Sprintf("%s is up", timefmt.Countdown(snapshot.Configured))
			if err := e.notifier.Notify(ctx, "Timer", message); err != nil {
				logger.WarnKV(ctx, "Countdown notification failed", "error", err)
			}
		}()
	}

	if e.onFinish != nil {
		e.onFinish(snapshot)
	}
}

func (e *Engine) emit(snapshot Snapshot) {
	if e.onTick != nil {
		e.onTick(snapshot)
	}
}

type nopRecorder struct{}

func (nopRecorder) CountdownStarted()  {}
func (nopRecorder) CountdownFinished() {}
