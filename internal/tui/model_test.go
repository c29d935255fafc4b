package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/daylight/internal/clock"
	domain "github.com/oshokin/daylight/internal/domain/alarm"
	"github.com/oshokin/daylight/internal/service/session"
)

func newTestModel(t *testing.T) (Model, *session.Session, *clock.Fake) {
	t.Helper()

	fake := clock.NewFake(time.Date(2025, time.March, 3, 18, 30, 0, 0, time.Local))
	s := session.New(t.Context(), session.Options{Clock: fake})
	t.Cleanup(s.Close)

	m := New(t.Context(), s)
	t.Cleanup(m.Release)

	return m, s, fake
}

// update sends a message through Update and returns the updated Model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)

	next, ok := updated.(Model)
	require.True(t, ok)

	return next, cmd
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()

	for _, k := range keys {
		m, _ = update(t, m, k)
	}

	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestNavigation(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)
	require.Equal(t, "Home", m.Screen())

	m = press(t, m, keyTab)
	require.Equal(t, "Clock", m.Screen())

	m = press(t, m, keyTab, keyTab, keyTab)
	require.Equal(t, "Home", m.Screen())

	m = press(t, m, keyDown, keyEnter)
	require.Equal(t, "Timer", m.Screen())

	m = press(t, m, keyEsc, keyDown, keyEnter)
	require.Equal(t, "Stopwatch", m.Screen())
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)

	m, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, m.View())
}

func TestClock_ArmAlarm(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestModel(t)
	m = press(t, m, keyTab, runes("a"))
	require.True(t, m.editing)

	// Keys go to the input while editing.
	m = press(t, m, runes("q"))
	require.Equal(t, "Clock", m.Screen())

	m.input.SetValue("25:00")
	m = press(t, m, keyEnter)
	require.True(t, m.editing)
	require.NotEmpty(t, m.failure)

	m.input.SetValue("07:00")
	m = press(t, m, keyEnter)
	require.Equal(t, "That time has already passed today", m.failure)

	m.input.SetValue("7:45 pm")
	m = press(t, m, keyEnter)
	require.False(t, m.editing)
	require.Equal(t, "Alarm set for 19:45", m.notice)

	state := s.Snapshot().Alarm
	require.Equal(t, domain.StatusArmed, state.Status())
	require.Equal(t, "7:45 pm", state.Label)
	require.Contains(t, m.View(), "Alarm 19:45 [on]")

	m = press(t, m, runes("t"))
	require.False(t, s.Snapshot().Alarm.IsEnabled)
	require.Contains(t, m.View(), "[off]")

	m = press(t, m, runes("x"))
	require.Equal(t, domain.StatusUnarmed, s.Snapshot().Alarm.Status())
	require.Contains(t, m.View(), "No alarm set")
}

func TestClock_EscapeLeavesInput(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestModel(t)
	m = press(t, m, keyTab, runes("a"), keyEsc)
	require.False(t, m.editing)
	require.Equal(t, "Clock", m.Screen())
	require.False(t, s.Snapshot().Alarm.IsArmed)
}

func TestTimer_ConfigureAndRun(t *testing.T) {
	t.Parallel()

	m, s, fake := newTestModel(t)
	m = press(t, m, keyTab, keyTab)
	require.Equal(t, "Timer", m.Screen())
	require.Equal(t, [fieldCount]int{0, 1, 0}, m.fields)

	m = press(t, m, keyUp)
	require.Equal(t, 3660, s.Snapshot().Countdown.Configured)

	m = press(t, m, keyDown, keyDown)
	require.Equal(t, [fieldCount]int{23, 1, 0}, m.fields)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, keyDown)
	require.Equal(t, [fieldCount]int{23, 1, 59}, m.fields)

	m = press(t, m, keyUp, keyUp)
	require.Equal(t, 23*3600+60+1, s.Snapshot().Countdown.Configured)

	m = press(t, m, keySpace)
	require.True(t, s.Snapshot().Countdown.Running)

	fake.Advance(time.Second)
	require.Equal(t, 23*3600+60, s.Snapshot().Countdown.Remaining)

	m = press(t, m, keyUp)
	require.Equal(t, "Stop the timer to change it", m.failure)

	m = press(t, m, keySpace)
	require.False(t, s.Snapshot().Countdown.Running)

	m = press(t, m, runes("r"))
	require.Equal(t, 23*3600+60+1, s.Snapshot().Countdown.Remaining)
	require.Contains(t, m.View(), "23:01:01")
}

func TestStopwatch_StartLapStopReset(t *testing.T) {
	t.Parallel()

	m, s, fake := newTestModel(t)
	m = press(t, m, keyTab, keyTab, keyTab)
	require.Equal(t, "Stopwatch", m.Screen())

	m = press(t, m, runes("p"))
	require.Equal(t, "Laps are recorded while running", m.failure)

	m = press(t, m, keySpace)
	require.True(t, s.Snapshot().Stopwatch.Running)

	fake.Advance(1500 * time.Millisecond)

	m = press(t, m, runes("p"), keySpace)
	snapshot := s.Snapshot().Stopwatch
	require.False(t, snapshot.Running)
	require.Equal(t, []time.Duration{1500 * time.Millisecond}, snapshot.Laps)
	require.Contains(t, m.View(), "Lap 1  00:01:50")

	press(t, m, runes("r"))
	require.Zero(t, s.Snapshot().Stopwatch.Elapsed)
}

func TestEvents(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)

	snapshot := m.snapshot
	snapshot.Alarm = &domain.State{Label: "7:45 pm", IsPlaying: true}

	m, cmd := update(t, m, eventMsg{event: session.Event{Kind: session.KindAlarmTriggered, Snapshot: snapshot}})
	require.NotNil(t, cmd)
	require.Equal(t, "Clock", m.Screen())
	require.Contains(t, m.View(), "Alarm: It's 7:45 pm")

	m, _ = update(t, m, eventMsg{event: session.Event{Kind: session.KindCountdownFinished, Snapshot: snapshot}})
	require.Equal(t, "Time's up", m.notice)

	m, cmd = update(t, m, sessionClosedMsg{})
	require.True(t, m.quitting)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInit_DeliversSessionClose(t *testing.T) {
	t.Parallel()

	m, s, _ := newTestModel(t)
	cmd := m.Init()

	s.Close()

	for {
		msg := cmd()
		if _, ok := msg.(sessionClosedMsg); ok {
			return
		}

		require.IsType(t, eventMsg{}, msg)
	}
}

func TestView_AllScreens(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	for range screenCount {
		require.NotEmpty(t, m.View())
		m = press(t, m, keyTab)
	}

	require.Contains(t, m.View(), "18:30:00")
}
