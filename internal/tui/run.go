package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the UI until the user quits, the session closes or ctx is canceled.
func Run(ctx context.Context, ctl Controller, opts ...tea.ProgramOption) error {
	m := New(ctx, ctl)
	defer m.Release()

	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	if _, err := tea.NewProgram(m, options...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("run terminal UI: %w", err)
	}

	return nil
}
