package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domain "github.com/oshokin/daylight/internal/domain/alarm"
	"github.com/oshokin/daylight/internal/domain/timefmt"
)

const dialRadius = 6

// View renders the active screen, the alert banner and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.styles.title.Render("daylight · " + m.screen.String())}

	if banner := m.banner(); banner != "" {
		sections = append(sections, m.styles.alert.Render(banner))
	}

	switch m.screen {
	case screenHome:
		sections = append(sections, m.viewHome())
	case screenClock:
		sections = append(sections, m.viewClock())
	case screenTimer:
		sections = append(sections, m.viewTimer())
	case screenStopwatch:
		sections = append(sections, m.viewStopwatch())
	}

	if m.notice != "" {
		sections = append(sections, m.styles.accent.Render(m.notice))
	}

	if m.failure != "" {
		sections = append(sections, m.styles.accent.Render("! "+m.failure))
	}

	sections = append(sections, m.styles.subText.Render(m.help.View(m.keys.forScreen(m.screen))))

	body := lipgloss.JoinVertical(lipgloss.Left, joinSections(sections)...)

	app := m.styles.app
	if m.width > 0 && m.height > 0 {
		app = app.Width(m.width).Height(m.height)
	}

	return app.Render(body)
}

// joinSections separates sections with a blank line.
func joinSections(sections []string) []string {
	out := make([]string, 0, len(sections)*2)

	for i, section := range sections {
		if i > 0 {
			out = append(out, "")
		}

		out = append(out, section)
	}

	return out
}

func (m Model) banner() string {
	state := m.alarmState()
	if !state.IsPlaying {
		return ""
	}

	return fmt.Sprintf("Alarm: It's %s (press s to stop)", state.Label)
}

func (m Model) alarmState() *domain.State {
	if m.snapshot.Alarm == nil {
		return &domain.State{}
	}

	return m.snapshot.Alarm
}

func (m Model) viewHome() string {
	lines := []string{m.styles.text.Render(m.snapshot.Digital), ""}

	for i := range int(screenCount) - 1 {
		label := screen(i + 1).String()

		if i == m.homeCursor {
			lines = append(lines, m.styles.selected.Render("> "+label))
		} else {
			lines = append(lines, m.styles.button.Render("  "+label))
		}
	}

	lines = append(lines, "", m.styles.subText.Render("Theme: "+m.snapshot.Theme.String()))

	return strings.Join(lines, "\n")
}

func (m Model) viewClock() string {
	dial := m.styles.accent.Render(renderDial(m.snapshot.Hands, dialRadius))
	digital := m.styles.title.Render(m.snapshot.Digital)

	lines := []string{dial, "", digital, "", m.alarmLine()}

	if m.editing {
		lines = append(lines, m.input.View())
	}

	return strings.Join(lines, "\n")
}

func (m Model) alarmLine() string {
	state := m.alarmState()

	switch state.Status() {
	case domain.StatusTriggered:
		return m.styles.accent.Render("Ringing: " + state.Label)
	case domain.StatusArmed:
		toggle := "on"
		if !state.IsEnabled {
			toggle = "off"
		}

		return m.styles.text.Render(fmt.Sprintf("Alarm %s [%s]", state.Target.String(), toggle))
	default:
		return m.styles.subText.Render("No alarm set")
	}
}

func (m Model) viewTimer() string {
	snapshot := m.snapshot.Countdown

	labels := [fieldCount]string{"h", "m", "s"}
	selectors := make([]string, 0, fieldCount)

	for i, value := range m.fields {
		cell := fmt.Sprintf("%02d%s", value, labels[i])

		if i == m.field && !snapshot.Running {
			selectors = append(selectors, m.styles.selected.Render(cell))
		} else {
			selectors = append(selectors, m.styles.button.Render(cell))
		}
	}

	state := "stopped"
	if snapshot.Running {
		state = "running"
	}

	return strings.Join([]string{
		lipgloss.JoinHorizontal(lipgloss.Center, selectors...),
		"",
		m.styles.title.Render(snapshot.String()),
		m.styles.subText.Render(state),
	}, "\n")
}

func (m Model) viewStopwatch() string {
	snapshot := m.snapshot.Stopwatch

	lines := []string{m.styles.title.Render(snapshot.String())}

	for i, split := range snapshot.Laps {
		lines = append(lines, m.styles.subText.Render(fmt.Sprintf("Lap %d  %s", i+1, timefmt.Elapsed(split))))
	}

	return strings.Join(lines, "\n")
}
