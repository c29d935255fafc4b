package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/service/server"
	"github.com/oshokin/daylight/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// httpAddress overrides the status endpoint address.
	httpAddress string
	// replace terminates a running server before starting.
	replace bool

	// rootCmd represents the base command for running the headless server.
	rootCmd = &cobra.Command{
		Use:   "daylight-server [listen-address]",
		Short: "Run a headless daylight session with a gRPC control API.",
		Long: `Starts a clock session (alarm, countdown timer, stopwatch, theme) without a screen.

The session is driven over the gRPC ClockService, which daylight-ctl uses.
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:8080).
Health, Prometheus metrics and a JSON snapshot are served over HTTP on http_addr;
pass --http - to disable it. Only one server runs per machine unless --replace is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				HTTPAddress:   httpAddress,
				Replace:       replace,
			})
		},
	}
)

// Execute runs the daylight-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&httpAddress, "http", "", "status endpoint address, \"-\" disables it")
	rootCmd.Flags().BoolVar(&replace, "replace", false, "terminate a running server instead of refusing to start")
}
