package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/service/client"
	"github.com/oshokin/daylight/internal/service/common"
	"github.com/oshokin/daylight/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// serverAddress overrides the server address from the configuration.
	serverAddress string
	// asJSON prints snapshots as JSON.
	asJSON bool
	// wait retries while the server is unavailable.
	wait bool

	// rootCmd represents the base command for controlling a daylight server.
	rootCmd = &cobra.Command{
		Use:   "daylight-ctl",
		Short: "Control a running daylight-server.",
		Long: `Sends commands to the daylight-server ClockService and prints the resulting snapshot.

Every command prints the session state after it ran: time and theme, alarm,
countdown timer and stopwatch. Use --json for the raw snapshot. The caller's
user and host name are sent along and recorded with the alarm.`,
		SilenceUsage: true,
	}
)

// Execute runs the daylight-ctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext returns a context canceled on SIGTERM or SIGINT.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// call runs one ClockService action with the persistent flags applied.
func call(cmd *cobra.Command, action client.Action) error {
	ctx, stop := signalContext()
	defer stop()

	return client.Run(ctx, &client.Options{
		ConfigPath:    configPath,
		ServerAddress: serverAddress,
		JSON:          asJSON,
		Wait:          wait,
		Output:        cmd.OutOrStdout(),
	}, action)
}

// simple builds a command that runs a parameterless ClockService call.
//
//nolint:revive // fn takes method expressions, which put the receiver first.
func simple(use, short string, fn func(c *common.Client, ctx context.Context) (*structpb.Struct, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(cmd, func(ctx context.Context, c *common.Client) (*structpb.Struct, error) {
				return fn(c, ctx)
			})
		},
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&serverAddress, "server", "s", "", "server address, overrides server_addr from the configuration")
	flags.BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	flags.BoolVarP(&wait, "wait", "w", false, "retry until the server is reachable")

	rootCmd.AddCommand(statusCmd(), watchCmd(), alarmCmd(), timerCmd(), stopwatchCmd())
}
