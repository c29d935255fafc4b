package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/domain/theme"
	"github.com/oshokin/daylight/internal/logger"
)

func TestRun_RequiresTerminal(t *testing.T) {
	t.Parallel()

	// Test binaries run with redirected standard streams.
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("running attached to a terminal")
	}

	require.ErrorIs(t, Run(t.Context(), &Options{}), ErrNotTerminal)
}

func TestSystemPreference_Ignored(t *testing.T) {
	t.Parallel()

	require.Equal(t, theme.PreferenceUnknown, systemPreference(false))
}

func TestRedirectLogs(t *testing.T) {
	previous, level := logger.Logger(), logger.Level()

	t.Cleanup(func() {
		logger.SetLogger(previous)
		logger.SetLevel(level)
	})

	path := filepath.Join(t.TempDir(), "ui.log")

	settings := config.Default()
	settings.LogFile = path
	settings.LogLevel = "debug"

	closer, err := redirectLogs(settings)
	require.NoError(t, err)

	logger.Info(t.Context(), "written to file")
	require.NoError(t, closer.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "written to file")
}
