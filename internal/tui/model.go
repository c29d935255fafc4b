package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	domain "github.com/oshokin/daylight/internal/domain/alarm"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/service/countdown"
	"github.com/oshokin/daylight/internal/service/session"
)

// Controller is the session surface the UI drives.
type Controller interface {
	Snapshot() session.Snapshot
	Subscribe(buffer int) (<-chan session.Event, func())
	ArmAlarm(ctx context.Context, input string, actor *domain.Actor) error
	CancelAlarm(ctx context.Context)
	StopAlarm()
	SetAlarmEnabled(ctx context.Context, enabled bool)
	ConfigureCountdown(hours, minutes, seconds int) error
	StartCountdown()
	StopCountdown()
	ResetCountdown()
	StartStopwatch()
	StopStopwatch()
	ResetStopwatch()
	LapStopwatch() bool
}

type screen int

const (
	screenHome screen = iota
	screenClock
	screenTimer
	screenStopwatch
	screenCount
)

func (s screen) String() string {
	switch s {
	case screenClock:
		return "Clock"
	case screenTimer:
		return "Timer"
	case screenStopwatch:
		return "Stopwatch"
	default:
		return "Home"
	}
}

// Timer selector fields.
const (
	fieldHours = iota
	fieldMinutes
	fieldSeconds
	fieldCount
)

// Upper bounds of the timer selectors.
var fieldLimits = [fieldCount]int{24, 60, 60} //nolint:gochecknoglobals // Constant table.

const eventBuffer = 32

// eventMsg carries a session event into the update loop.
type eventMsg struct {
	event session.Event
}

// sessionClosedMsg is delivered once the session closed the subscription.
type sessionClosedMsg struct{}

// Model is the bubbletea model of the whole UI.
type Model struct {
	ctx      context.Context //nolint:containedctx // Commands log through it.
	ctl      Controller
	events   <-chan session.Event
	release  func()
	snapshot session.Snapshot
	styles   styles
	keys     keyMap
	help     help.Model

	screen     screen
	homeCursor int

	// Alarm input on the clock screen.
	input   textinput.Model
	editing bool

	// Timer selectors: hours, minutes and seconds.
	field  int
	fields [fieldCount]int

	// notice is a one-shot message, cleared by the next key press.
	notice   string
	failure  string
	width    int
	height   int
	quitting bool
}

// New subscribes to the controller and returns the initial model.
// Call Release when the program ends.
func New(ctx context.Context, ctl Controller) Model {
	input := textinput.New()
	input.Placeholder = "7:45 pm"
	input.CharLimit = 16
	input.Width = 16
	input.Prompt = "Alarm at: "

	events, release := ctl.Subscribe(eventBuffer)
	snapshot := ctl.Snapshot()

	m := Model{
		ctx:      logger.WithName(ctx, "tui"),
		ctl:      ctl,
		events:   events,
		release:  release,
		snapshot: snapshot,
		styles:   newStyles(snapshot.Palette),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
	}

	m.loadTimerFields(snapshot.Countdown)

	return m
}

// Release drops the session subscription.
func (m Model) Release() {
	if m.release != nil {
		m.release()
	}
}

// Screen returns the active screen name.
func (m Model) Screen() string {
	return m.screen.String()
}

// Init starts listening for session events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return sessionClosedMsg{}
		}

		return eventMsg{event: event}
	}
}

// Update handles window, session and key messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

		return m, nil
	case eventMsg:
		m.applyEvent(msg.event)
		return m, waitForEvent(m.events)
	case sessionClosedMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) applyEvent(event session.Event) {
	m.snapshot = event.Snapshot

	switch event.Kind {
	case session.KindTheme:
		m.styles = newStyles(event.Snapshot.Palette)
	case session.KindAlarmTriggered:
		m.screen = screenClock
	case session.KindCountdownFinished:
		m.notice = "Time's up"
		m.loadTimerFields(event.Snapshot.Countdown)
	case session.KindCountdown:
		if !event.Snapshot.Countdown.Running && event.Snapshot.Countdown.Remaining == event.Snapshot.Countdown.Configured {
			m.loadTimerFields(event.Snapshot.Countdown)
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.editing {
		return m.handleAlarmInput(msg)
	}

	m.notice = ""
	m.failure = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.screen = screenHome
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.screen = (m.screen + 1) % screenCount
		return m, nil
	}

	switch m.screen {
	case screenHome:
		m.handleHomeKey(msg)
	case screenClock:
		return m.handleClockKey(msg)
	case screenTimer:
		m.handleTimerKey(msg)
	case screenStopwatch:
		m.handleStopwatchKey(msg)
	}

	return m, nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) {
	entries := int(screenCount) - 1

	switch {
	case key.Matches(msg, m.keys.Up):
		m.homeCursor = (m.homeCursor - 1 + entries) % entries
	case key.Matches(msg, m.keys.Down):
		m.homeCursor = (m.homeCursor + 1) % entries
	case key.Matches(msg, m.keys.Open):
		m.screen = screen(m.homeCursor + 1)
	}
}

func (m Model) handleClockKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SetAlarm):
		m.editing = true
		m.input.Reset()
		cmd := m.input.Focus()

		return m, cmd
	case key.Matches(msg, m.keys.Enable):
		if state := m.alarmState(); state.IsArmed {
			m.ctl.SetAlarmEnabled(m.ctx, !state.IsEnabled)
		}
	case key.Matches(msg, m.keys.Silence):
		m.ctl.StopAlarm()
	case key.Matches(msg, m.keys.Cancel):
		m.ctl.CancelAlarm(m.ctx)
	}

	m.snapshot = m.ctl.Snapshot()

	return m, nil
}

func (m Model) handleAlarmInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()

		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		if err := m.ctl.ArmAlarm(m.ctx, value, nil); err != nil {
			m.failure = describeAlarmError(err)
			return m, nil
		}

		m.editing = false
		m.failure = ""
		m.input.Blur()
		m.snapshot = m.ctl.Snapshot()
		m.notice = "Alarm set for " + m.alarmState().Target.String()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func describeAlarmError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAlarmTime):
		return "That time has already passed today"
	case errors.Is(err, domain.ErrParse):
		return "Use a time like 07:45, 7:45 pm or 19:30"
	default:
		return err.Error()
	}
}

func (m *Model) handleTimerKey(msg tea.KeyMsg) {
	running := m.snapshot.Countdown.Running

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if running {
			m.ctl.StopCountdown()
		} else {
			m.ctl.StartCountdown()
		}
	case key.Matches(msg, m.keys.Reset):
		m.ctl.ResetCountdown()
	case key.Matches(msg, m.keys.Left):
		m.field = (m.field - 1 + fieldCount) % fieldCount
	case key.Matches(msg, m.keys.Right):
		m.field = (m.field + 1) % fieldCount
	case key.Matches(msg, m.keys.Up):
		m.adjustField(1)
	case key.Matches(msg, m.keys.Down):
		m.adjustField(-1)
	}

	m.snapshot = m.ctl.Snapshot()
}

func (m *Model) adjustField(delta int) {
	if m.snapshot.Countdown.Running {
		m.failure = "Stop the timer to change it"
		return
	}

	limit := fieldLimits[m.field]
	m.fields[m.field] = (m.fields[m.field] + delta + limit) % limit

	err := m.ctl.ConfigureCountdown(m.fields[fieldHours], m.fields[fieldMinutes], m.fields[fieldSeconds])
	if errors.Is(err, countdown.ErrRunning) {
		m.failure = "Stop the timer to change it"
	} else if err != nil {
		m.failure = err.Error()
	}
}

func (m *Model) loadTimerFields(snapshot countdown.Snapshot) {
	total := snapshot.Configured
	m.fields = [fieldCount]int{total / 3600, total % 3600 / 60, total % 60}
}

func (m *Model) handleStopwatchKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.snapshot.Stopwatch.Running {
			m.ctl.StopStopwatch()
		} else {
			m.ctl.StartStopwatch()
		}
	case key.Matches(msg, m.keys.Lap):
		if !m.ctl.LapStopwatch() {
			m.failure = "Laps are recorded while running"
		}
	case key.Matches(msg, m.keys.Reset):
		m.ctl.ResetStopwatch()
	}

	m.snapshot = m.ctl.Snapshot()
}
