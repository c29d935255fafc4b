package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oshokin/daylight/internal/clock"
	domain "github.com/oshokin/daylight/internal/domain/alarm"
	"github.com/oshokin/daylight/internal/domain/theme"
	"github.com/oshokin/daylight/internal/domain/timefmt"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/metrics"
	"github.com/oshokin/daylight/internal/service/alarm"
	"github.com/oshokin/daylight/internal/service/countdown"
	"github.com/oshokin/daylight/internal/service/sound"
	"github.com/oshokin/daylight/internal/service/stopwatch"
)

// Kind identifies what changed.
type Kind string

// Event kinds.
const (
	KindClock             Kind = "clock"
	KindTheme             Kind = "theme"
	KindAlarm             Kind = "alarm"
	KindAlarmTriggered    Kind = "alarm_triggered"
	KindCountdown         Kind = "countdown"
	KindCountdownFinished Kind = "countdown_finished"
	KindStopwatch         Kind = "stopwatch"
)

// Snapshot aggregates everything a screen renders.
type Snapshot struct {
	// Now is the clock time of the snapshot.
	Now time.Time
	// Digital is Now rendered as HH:MM:SS.
	Digital string
	// Hands are the analog clock hand angles for Now.
	Hands timefmt.Angles
	// Theme is the effective colour theme.
	Theme theme.Identifier
	// Palette holds the colours of Theme.
	Palette theme.Palette
	// Alarm is the alarm state.
	Alarm *domain.State
	// Countdown is the countdown state.
	Countdown countdown.Snapshot
	// Stopwatch is the stopwatch state.
	Stopwatch stopwatch.Snapshot
}

// Event is published to subscribers after a state change or a tick.
type Event struct {
	Kind     Kind
	Snapshot Snapshot
}

// Options configures a Session.
type Options struct {
	// Clock is the time source; the real clock when nil.
	Clock clock.Clock
	// Player plays the alarm sound; silent when nil.
	Player sound.Player
	// Notifier receives alarm and timer notifications; none when nil.
	Notifier alarm.Notifier
	// Metrics records engine activity; none when nil.
	Metrics *metrics.Service
	// PlaybackLimit caps alarm playback; the alarm default when zero.
	PlaybackLimit time.Duration
	// Mode pins a theme or selects it automatically.
	Mode theme.Mode
	// Preference is the initial system colour preference.
	Preference theme.Preference
	// Palettes overrides the built-in palettes.
	Palettes theme.Palettes
}

// Session owns one alarm, one countdown and one stopwatch and fans their changes out to subscribers.
type Session struct {
	ctx        context.Context
	clock      clock.Clock
	mode       theme.Mode
	palettes   theme.Palettes
	preference atomic.Int32

	alarm     *alarm.Engine
	countdown *countdown.Engine
	stopwatch *stopwatch.Engine

	// lastTheme is the theme observed on the previous clock tick.
	lastTheme atomic.Int32
	// playing is the alarm playback flag observed on the previous change.
	playing atomic.Bool

	subscribers map[int]chan Event
	nextID      int
	closed      bool
	mu          sync.Mutex
}

// New builds the session and its engines. Call Start to begin ticking.
func New(ctx context.Context, opts Options) *Session {
	c := opts.Clock
	if c == nil {
		c = clock.NewReal()
	}

	palettes := opts.Palettes
	if palettes == nil {
		palettes = theme.Builtin()
	}

	s := &Session{
		ctx:         logger.WithName(ctx, "session"),
		clock:       c,
		mode:        opts.Mode,
		palettes:    palettes,
		subscribers: make(map[int]chan Event),
	}

	s.preference.Store(int32(opts.Preference))
	s.lastTheme.Store(int32(s.resolveTheme(c.Now())))

	alarmOpts := []alarm.Option{
		alarm.WithPlayer(opts.Player),
		alarm.WithNotifier(opts.Notifier),
		alarm.WithPlaybackLimit(opts.PlaybackLimit),
		alarm.WithOnChange(s.onAlarmChange),
		alarm.WithOnTick(s.onClockTick),
	}

	countdownOpts := []countdown.Option{
		countdown.WithOnTick(func(countdown.Snapshot) { s.publish(KindCountdown) }),
		countdown.WithOnFinish(func(countdown.Snapshot) { s.publish(KindCountdownFinished) }),
	}

	if opts.Notifier != nil {
		countdownOpts = append(countdownOpts, countdown.WithNotifier(opts.Notifier))
	}

	stopwatchOpts := []stopwatch.Option{
		stopwatch.WithOnTick(func(stopwatch.Snapshot) { s.publish(KindStopwatch) }),
	}

	if opts.Metrics != nil {
		alarmOpts = append(alarmOpts, alarm.WithRecorder(opts.Metrics))
		countdownOpts = append(countdownOpts, countdown.WithRecorder(opts.Metrics))
		stopwatchOpts = append(stopwatchOpts, stopwatch.WithRecorder(opts.Metrics))
	}

	s.alarm = alarm.New(ctx, c, alarmOpts...)
	s.countdown = countdown.New(ctx, c, countdownOpts...)
	s.stopwatch = stopwatch.New(ctx, c, stopwatchOpts...)

	return s
}

// Start begins the one-second clock that evaluates the alarm and refreshes the theme.
func (s *Session) Start() {
	s.alarm.Start()
}

// Alarm returns the alarm engine.
func (s *Session) Alarm() *alarm.Engine {
	return s.alarm
}

// Countdown returns the countdown engine.
func (s *Session) Countdown() *countdown.Engine {
	return s.countdown
}

// Stopwatch returns the stopwatch engine.
func (s *Session) Stopwatch() *stopwatch.Engine {
	return s.stopwatch
}

// SetPreference updates the system colour preference, for example after the terminal answered a background query.
func (s *Session) SetPreference(preference theme.Preference) {
	if theme.Preference(s.preference.Swap(int32(preference))) == preference {
		return
	}

	s.refreshTheme(s.clock.Now())
}

// Snapshot aggregates the current state of every engine.
func (s *Session) Snapshot() Snapshot {
	now := s.clock.Now()
	id := s.resolveTheme(now)

	return Snapshot{
		Now:       now,
		Digital:   timefmt.Digital(now),
		Hands:     timefmt.HandAngles(now),
		Theme:     id,
		Palette:   s.palettes.Get(id),
		Alarm:     s.alarm.Snapshot(),
		Countdown: s.countdown.Snapshot(),
		Stopwatch: s.stopwatch.Snapshot(),
	}
}

// Subscribe returns a channel receiving events and a function releasing it.
// Events are dropped for subscribers that do not keep up.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}

	ch := make(chan Event, buffer)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		})
	}
}

// Close stops every ticker, releases alarm playback and closes the subscriptions.
func (s *Session) Close() {
	s.alarm.Close()
	s.countdown.Close()
	s.stopwatch.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true

	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}

	logger.Debug(s.ctx, "Session closed")
}

func (s *Session) resolveTheme(now time.Time) theme.Identifier {
	return theme.Select(s.mode, now, theme.Preference(s.preference.Load()))
}

func (s *Session) onClockTick(now time.Time) {
	s.refreshTheme(now)
	s.publish(KindClock)
}

func (s *Session) refreshTheme(now time.Time) {
	id := s.resolveTheme(now)
	if theme.Identifier(s.lastTheme.Swap(int32(id))) == id {
		return
	}

	logger.InfoKV(s.ctx, "Theme changed", "theme", id.String())
	s.publish(KindTheme)
}

func (s *Session) onAlarmChange(state *domain.State) {
	wasPlaying := s.playing.Swap(state.IsPlaying)
	if state.IsPlaying && !wasPlaying {
		s.publish(KindAlarmTriggered)
		return
	}

	s.publish(KindAlarm)
}

func (s *Session) publish(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || len(s.subscribers) == 0 {
		return
	}

	event := Event{
		Kind:     kind,
		Snapshot: s.Snapshot(),
	}

	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
