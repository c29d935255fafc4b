package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/daylight/internal/domain/theme"
)

// styles are the lipgloss styles derived from one palette.
type styles struct {
	app      lipgloss.Style
	title    lipgloss.Style
	text     lipgloss.Style
	subText  lipgloss.Style
	accent   lipgloss.Style
	button   lipgloss.Style
	selected lipgloss.Style
	alert    lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	background := lipgloss.Color(p.Background)
	base := lipgloss.NewStyle().Background(background)

	return styles{
		app: base.
			Foreground(lipgloss.Color(p.Text)).
			Padding(1, 2),
		title:   base.Foreground(lipgloss.Color(p.Accent)).Bold(true),
		text:    base.Foreground(lipgloss.Color(p.Text)),
		subText: base.Foreground(lipgloss.Color(p.SubText)),
		accent:  base.Foreground(lipgloss.Color(p.Accent)),
		button: lipgloss.NewStyle().
			Background(lipgloss.Color(p.ButtonBackground)).
			Foreground(lipgloss.Color(p.Text)).
			Padding(0, 1),
		selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Accent)).
			Foreground(background).
			Bold(true).
			Padding(0, 1),
		alert: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Accent)).
			Foreground(background).
			Bold(true).
			Padding(0, 2),
	}
}
