package alarm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/daylight/internal/clock"
	domain "github.com/oshokin/daylight/internal/domain/alarm"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/service/sound"
	"github.com/oshokin/daylight/internal/ticker"
)

const (
	// DefaultPlaybackLimit stops a ringing alarm automatically.
	DefaultPlaybackLimit = 45 * time.Second
	// TickPeriod is the evaluation cadence of the clock ticker.
	TickPeriod = time.Second

	notifyTimeout = 10 * time.Second
)

// Reasons reported when playback ends.
const (
	StopReasonManual   = "manual"
	StopReasonTimeout  = "timeout"
	StopReasonTeardown = "teardown"
)

// Notifier delivers the user-visible alarm notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Recorder receives alarm lifecycle metrics.
type Recorder interface {
	AlarmArmed()
	AlarmTriggered()
	AlarmStopped(reason string)
}

// Option configures the Engine.
type Option func(*Engine)

// WithPlayer sets the sound player started when the alarm fires.
func WithPlayer(player sound.Player) Option {
	return func(e *Engine) {
		if player != nil {
			e.player = player
		}
	}
}

// WithNotifier sets the notifier called when the alarm fires.
func WithNotifier(notifier Notifier) Option {
	return func(e *Engine) {
		if notifier != nil {
			e.notifier = notifier
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

// WithPlaybackLimit sets how long the alarm rings before stopping by itself.
func WithPlaybackLimit(limit time.Duration) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.playbackLimit = limit
		}
	}
}

// WithOnChange registers a callback receiving a copy of the state after every transition.
func WithOnChange(fn func(*domain.State)) Option {
	return func(e *Engine) {
		e.onChange = fn
	}
}

// WithOnTick registers a callback invoked after each evaluation tick; screens refresh the clock from it.
func WithOnTick(fn func(now time.Time)) Option {
	return func(e *Engine) {
		e.onTick = fn
	}
}

// Engine holds the single alarm and evaluates it once per clock tick.
type Engine struct {
	// ctx carries the logger and parents every playback.
	ctx context.Context
	// clock is the time source.
	clock clock.Clock
	// player starts the looping sound.
	player sound.Player
	// notifier shows the alarm to the user.
	notifier Notifier
	// recorder receives metrics.
	recorder Recorder
	// playbackLimit caps how long the sound plays.
	playbackLimit time.Duration
	// onChange receives state copies after transitions.
	onChange func(*domain.State)
	// onTick is called after each evaluation tick.
	onTick func(now time.Time)

	// state is the current alarm state.
	state domain.State
	// playback is the active sound, nil when silent or when the player failed.
	playback sound.Playback
	// playbackTimer ends playback after playbackLimit.
	playbackTimer clock.Timer
	// generation identifies the current ring so stale timeouts are ignored.
	generation uint64
	// ticker drives Evaluate while started.
	ticker *ticker.Ticker
	// closed is set by Close; a closed engine never fires again.
	closed bool
	// mu protects every field above.
	mu sync.Mutex
}

// New creates an unarmed, enabled engine. ctx scopes logging and playback.
func New(ctx context.Context, c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		ctx:           logger.WithName(ctx, "alarm"),
		clock:         c,
		player:        nopPlayer{},
		notifier:      nopNotifier{},
		recorder:      nopRecorder{},
		playbackLimit: DefaultPlaybackLimit,
		state: domain.State{
			IsEnabled: true,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start begins evaluating the alarm every TickPeriod. Calling it again is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ticker != nil || e.closed {
		return
	}

	e.ticker = ticker.New(e.clock, TickPeriod, e.tick)
}

// Arm sets the alarm for target, which must be strictly later today.
// On failure nothing changes.
func (e *Engine) Arm(ctx context.Context, target domain.TimeOfDay, actor *domain.Actor) (*domain.State, error) {
	return e.arm(ctx, target, target.String(), actor)
}

// ArmString parses a user-entered time and arms the alarm with it.
func (e *Engine) ArmString(ctx context.Context, input string, actor *domain.Actor) (*domain.State, error) {
	target, err := domain.ParseTimeOfDay(input)
	if err != nil {
		return nil, err
	}

	return e.arm(ctx, target, strings.TrimSpace(input), actor)
}

func (e *Engine) arm(ctx context.Context, target domain.TimeOfDay, label string, actor *domain.Actor) (*domain.State, error) {
	e.mu.Lock()

	now := e.clock.Now()
	if err := target.ValidateFuture(now); err != nil {
		e.mu.Unlock()
		return nil, err
	}

	e.state.ID = uuid.NewString()
	e.state.Target = target
	e.state.Label = label
	e.state.ArmedAt = now
	e.state.ArmedBy = actor.Clone()
	e.state.IsArmed = true
	e.state.IsEnabled = true

	result := e.state.Clone()
	e.mu.Unlock()

	e.recorder.AlarmArmed()
	logger.InfoKV(ctx, "Alarm armed", "id", result.ID, "target", result.Target.String(), "actor", result.ArmedBy.String())
	e.emit(result)

	return result, nil
}

// Cancel disarms the alarm. Cancelling an unarmed alarm is a no-op.
func (e *Engine) Cancel(ctx context.Context) *domain.State {
	e.mu.Lock()

	if !e.state.IsArmed {
		result := e.state.Clone()
		e.mu.Unlock()

		return result
	}

	e.state.IsArmed = false
	result := e.state.Clone()
	e.mu.Unlock()

	logger.InfoKV(ctx, "Alarm cancelled", "id", result.ID)
	e.emit(result)

	return result
}

// SetEnabled toggles evaluation without losing the armed target.
func (e *Engine) SetEnabled(ctx context.Context, enabled bool) *domain.State {
	e.mu.Lock()

	if e.state.IsEnabled == enabled {
		result := e.state.Clone()
		e.mu.Unlock()

		return result
	}

	e.state.IsEnabled = enabled
	result := e.state.Clone()
	e.mu.Unlock()

	logger.InfoKV(ctx, "Alarm toggled", "is_enabled", enabled)
	e.emit(result)

	return result
}

// Evaluate fires the alarm when it is armed, enabled and now falls in the target minute.
// The armed flag is cleared before any side effect, so the alarm fires at most once per arm
// even if several ticks land in the matching minute or the second-zero tick was skipped.
// Any tick inside the target minute matches, not only the one at second zero.
// A closed engine never fires, including for a tick already in flight when Close ran.
func (e *Engine) Evaluate(now time.Time) bool {
	e.mu.Lock()

	if e.closed || !e.state.IsArmed || !e.state.IsEnabled || !e.state.Target.Matches(now) {
		e.mu.Unlock()
		return false
	}

	e.state.IsArmed = false
	e.state.IsPlaying = true
	e.generation++

	previous := e.detachPlaybackLocked()
	e.startPlaybackLocked(e.generation)

	result := e.state.Clone()
	e.mu.Unlock()

	if previous != nil {
		previous.Stop()
	}

	e.recorder.AlarmTriggered()
	logger.InfoKV(e.ctx, "Alarm triggered", "id", result.ID, "target", result.Target.String())

	go e.notify(result.Label)

	e.emit(result)

	return true
}

// Stop silences a ringing alarm. Stopping a silent alarm is a no-op.
func (e *Engine) Stop() *domain.State {
	e.stopPlayback(0, StopReasonManual)

	return e.Snapshot()
}

// Close stops the ticker and releases any active playback.
func (e *Engine) Close() {
	e.mu.Lock()
	t := e.ticker
	e.ticker = nil
	e.closed = true
	e.mu.Unlock()

	t.Stop()
	e.stopPlayback(0, StopReasonTeardown)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() *domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.Clone()
}

func (e *Engine) tick(now time.Time) {
	e.Evaluate(now)

	if e.onTick != nil {
		e.onTick(now)
	}
}

// startPlaybackLocked starts the sound and the playback ceiling. Must hold e.mu.
func (e *Engine) startPlaybackLocked(generation uint64) {
	playback, err := e.player.Play(e.ctx)
	if err != nil {
		logger.ErrorKV(e.ctx, "Failed to start alarm sound", "error", err)
	}

	e.playback = playback
	e.playbackTimer = e.clock.AfterFunc(e.playbackLimit, func() {
		e.stopPlayback(generation, StopReasonTimeout)
	})
}

// detachPlaybackLocked takes ownership of the active playback and cancels its timer. Must hold e.mu.
func (e *Engine) detachPlaybackLocked() sound.Playback {
	playback := e.playback
	e.playback = nil

	if e.playbackTimer != nil {
		e.playbackTimer.Stop()
		e.playbackTimer = nil
	}

	return playback
}

// stopPlayback ends the ring identified by generation, or the current one when generation is 0.
func (e *Engine) stopPlayback(generation uint64, reason string) {
	e.mu.Lock()

	if !e.state.IsPlaying || (generation != 0 && generation != e.generation) {
		e.mu.Unlock()
		return
	}

	e.state.IsPlaying = false
	playback := e.detachPlaybackLocked()
	result := e.state.Clone()
	e.mu.Unlock()

	if playback != nil {
		playback.Stop()
	}

	e.recorder.AlarmStopped(reason)
	logger.InfoKV(e.ctx, "Alarm stopped", "id", result.ID, "reason", reason)
	e.emit(result)
}

func (e *Engine) notify(label string) {
	ctx, cancel := context.WithTimeout(e.ctx, notifyTimeout)
	defer cancel()

	if err := e.notifier.Notify(ctx, "Alarm", fmt.Sprintf("It's %s", label)); err != nil {
		logger.WarnKV(ctx, "Alarm notification failed", "error", err)
	}
}

func (e *Engine) emit(state *domain.State) {
	if e.onChange != nil {
		e.onChange(state)
	}
}

type nopPlayer struct{}

//nolint:ireturn,nilnil // A silent player has nothing to release.
func (nopPlayer) Play(context.Context) (sound.Playback, error) { return nil, nil }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string) error { return nil }

type nopRecorder struct{}

func (nopRecorder) AlarmArmed()         {}
func (nopRecorder) AlarmTriggered()     {}
func (nopRecorder) AlarmStopped(string) {}
