package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/daylight/internal/service/common"
	"github.com/oshokin/daylight/internal/service/watch"
)

// errCountdownFormat is returned for timer durations that cannot be parsed.
var errCountdownFormat = errors.New("use HH:MM:SS, H M S or a duration such as 90s")

const maxCountdown = 24 * time.Hour

func statusCmd() *cobra.Command {
	return simple("status", "Print the session snapshot.", (*common.Client).Snapshot)
}

func watchCmd() *cobra.Command {
	var reconnect time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever the session changes.",
		Long: `Follows the snapshot stream of the server and prints one line per visible change.
The stream is re-opened after failures until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return watch.Run(ctx, &watch.Options{
				ConfigPath:        configPath,
				ServerAddress:     serverAddress,
				ReconnectInterval: reconnect,
				Output:            cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().DurationVar(&reconnect, "reconnect", watch.DefaultReconnectInterval, "pause before re-opening a broken stream")

	return cmd
}

func alarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarm",
		Short: "Set, clear, silence or toggle the alarm.",
	}

	set := &cobra.Command{
		Use:   "set TIME",
		Short: "Arm the alarm for a time later today, e.g. 07:45, \"7:45 pm\" or 19:30.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")

			return call(cmd, func(ctx context.Context, c *common.Client) (*structpb.Struct, error) {
				return c.ArmAlarm(ctx, input)
			})
		},
	}

	enable := func(use, short string, enabled bool) *cobra.Command {
		return simple(use, short, func(c *common.Client, ctx context.Context) (*structpb.Struct, error) {
			return c.SetAlarmEnabled(ctx, enabled)
		})
	}

	cmd.AddCommand(
		set,
		simple("cancel", "Disarm the alarm.", (*common.Client).CancelAlarm),
		simple("stop", "Silence a ringing alarm.", (*common.Client).StopAlarm),
		enable("enable", "Evaluate the armed alarm again.", true),
		enable("disable", "Keep the alarm set but do not ring.", false),
	)

	return cmd
}

func timerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Configure and run the countdown timer.",
	}

	set := &cobra.Command{
		Use:   "set DURATION",
		Short: "Set the countdown, e.g. 00:05:00, \"0 5 0\" or 5m.",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, minutes, seconds, err := parseCountdown(args)
			if err != nil {
				return err
			}

			return call(cmd, func(ctx context.Context, c *common.Client) (*structpb.Struct, error) {
				return c.ConfigureCountdown(ctx, hours, minutes, seconds)
			})
		},
	}

	cmd.AddCommand(
		set,
		simple("start", "Start the countdown.", (*common.Client).StartCountdown),
		simple("stop", "Pause the countdown.", (*common.Client).StopCountdown),
		simple("reset", "Restore the configured duration.", (*common.Client).ResetCountdown),
	)

	return cmd
}

func stopwatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Run the stopwatch.",
	}

	cmd.AddCommand(
		simple("start", "Start or resume the stopwatch.", (*common.Client).StartStopwatch),
		simple("stop", "Stop the stopwatch.", (*common.Client).StopStopwatch),
		simple("reset", "Clear elapsed time and laps.", (*common.Client).ResetStopwatch),
		simple("lap", "Record a lap.", (*common.Client).LapStopwatch),
	)

	return cmd
}

// parseCountdown accepts "HH:MM:SS", three numbers or a Go duration.
// Range checks are left to the server.
func parseCountdown(args []string) (int, int, int, error) {
	parts := args
	if len(args) == 1 {
		parts = strings.Split(args[0], ":")
	}

	if len(parts) == 3 {
		values := make([]int, 3)

		for i, part := range parts {
			value, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return 0, 0, 0, fmt.Errorf("%w: %q", errCountdownFormat, part)
			}

			values[i] = value
		}

		return values[0], values[1], values[2], nil
	}

	if len(args) != 1 {
		return 0, 0, 0, errCountdownFormat
	}

	d, err := time.ParseDuration(args[0])
	if err != nil || d < 0 || d >= maxCountdown || d%time.Second != 0 {
		return 0, 0, 0, fmt.Errorf("%w: %q", errCountdownFormat, args[0])
	}

	total := int(d / time.Second)

	return total / 3600, total % 3600 / 60, total % 60, nil
}
