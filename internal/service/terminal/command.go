package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/domain/theme"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/service/session"
	"github.com/oshokin/daylight/internal/tui"
)

// Options controls the terminal UI process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Theme overrides the configured theme mode when set.
	Theme string
}

// DefaultLogFilename is used when the settings leave log_file empty; stdout belongs to the screen.
const DefaultLogFilename = "daylight.log"

// ErrNotTerminal is returned when stdin or stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("daylight needs an interactive terminal")

// Run shows the terminal UI on top of a local session until the user quits or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.Theme != "" {
		settings.Theme.Mode = opts.Theme
	}

	closeLog, err := redirectLogs(settings)
	if err != nil {
		return err
	}

	defer func() {
		_ = closeLog.Close()
	}()

	ctx = logger.WithName(ctx, "daylight")

	sess, err := session.FromConfig(ctx, settings, session.Environment{
		Preference: systemPreference(settings.Theme.FollowSystem),
		Bell:       os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("initialise session: %w", err)
	}

	defer sess.Close()

	sess.Start()
	logger.Info(ctx, "Terminal UI started")

	return tui.Run(ctx, sess)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// systemPreference reads the terminal background when the settings follow the system.
func systemPreference(follow bool) theme.Preference {
	if !follow {
		return theme.PreferenceUnknown
	}

	if termenv.HasDarkBackground() {
		return theme.PreferenceDark
	}

	return theme.PreferenceLight
}

// redirectLogs sends logs to the configured file, or to a file in the temp directory.
func redirectLogs(settings *config.Config) (io.Closer, error) {
	level, _ := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)

	path := settings.LogFile
	if path == "" {
		path = filepath.Join(os.TempDir(), DefaultLogFilename)
	}

	l, closer, err := logger.NewWithFile(path, logger.AtomicLevel())
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger.SetLogger(l)

	return closer, nil
}
