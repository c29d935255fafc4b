package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/service/terminal"
	"github.com/oshokin/daylight/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// themeMode pins the theme for this run.
	themeMode string

	// rootCmd represents the base command for the terminal UI.
	rootCmd = &cobra.Command{
		Use:   "daylight",
		Short: "Clock, alarm, timer and stopwatch in the terminal.",
		Long: `Shows a clock with an analog dial and an alarm, a countdown timer and a stopwatch.

Colours follow the time of day: light in the morning, green in the afternoon and
dark in the evening. A dark terminal background keeps the dark theme all day
unless theme.follow_system is turned off. Logs go to log_file (or daylight.log in
the temp directory) because the screen owns standard output.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return terminal.Run(ctx, &terminal.Options{
				ConfigPath: cfgPath,
				Theme:      themeMode,
			})
		},
	}
)

// Execute runs the daylight CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&themeMode, "theme", "t", "", "theme mode: auto, light, green or dark")
}
