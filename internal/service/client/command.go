package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	control "github.com/oshokin/daylight/internal/api/grpc/control"
	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/service/common"
)

// Options configures a single daylight-ctl call.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// JSON prints the raw snapshot as JSON instead of the summary.
	JSON bool
	// Wait keeps retrying while the server is unavailable.
	Wait bool
	// Output receives the printed snapshot, os.Stdout when nil.
	Output io.Writer
}

// Action is one ClockService call returning the resulting snapshot.
type Action func(ctx context.Context, client *common.Client) (*structpb.Struct, error)

// defaultRetryInterval defines the delay between attempts while waiting for the server.
const defaultRetryInterval = 1 * time.Second

// Run connects to the server, performs action and prints the snapshot it returns.
func Run(ctx context.Context, opts *Options, action Action) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "daylight-ctl")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return err
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout), common.WithActor(actor))
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Calling daylight server", "server_address", serverAddress, "actor", actor.String())

	message, err := callWithRetry(ctx, client, action, opts.Wait)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	return Print(output, message, opts.JSON)
}

// callWithRetry runs action once, and when wait is set keeps retrying while the server is unavailable.
func callWithRetry(ctx context.Context, client *common.Client, action Action, wait bool) (*structpb.Struct, error) {
	message, err := action(ctx, client)
	if !wait || !isUnavailable(err) {
		return message, err
	}

	ticker := time.NewTicker(defaultRetryInterval)
	defer ticker.Stop()

	for {
		logger.WarnKV(ctx, "Server unavailable, retrying", "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			message, err = action(ctx, client)
			if !isUnavailable(err) {
				return message, err
			}
		}
	}
}

func isUnavailable(err error) bool {
	return err != nil && status.Code(err) == codes.Unavailable
}

// Print writes the snapshot as indented JSON or as a short summary.
func Print(w io.Writer, message *structpb.Struct, asJSON bool) error {
	if asJSON {
		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(message)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	}

	view, err := control.Decode(message)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, Summary(view))

	return err
}

// Summary renders a snapshot view as aligned lines.
func Summary(view *control.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %s (theme %s)\n", "Time", view.Digital, view.Theme)
	fmt.Fprintf(&b, "%-10s %s\n", "Alarm", formatAlarm(view))
	fmt.Fprintf(&b, "%-10s %s of %s, %s\n", "Timer",
		view.Countdown.Remaining, view.Countdown.Configured, runState(view.Countdown.Running))
	fmt.Fprintf(&b, "%-10s %s, %s, %d laps\n", "Stopwatch",
		view.Stopwatch.Elapsed, runState(view.Stopwatch.Running), len(view.Stopwatch.Laps))

	return b.String()
}

func formatAlarm(view *control.View) string {
	alarm := view.Alarm
	if alarm.Status == "unarmed" {
		return "not set"
	}

	enabled := "enabled"
	if !alarm.Enabled {
		enabled = "disabled"
	}

	text := fmt.Sprintf("%s at %s %q, %s", alarm.Status, alarm.Target, alarm.Label, enabled)
	if alarm.ArmedBy != "" {
		text += " by " + alarm.ArmedBy
	}

	return text
}

func runState(running bool) string {
	if running {
		return "running"
	}

	return "stopped"
}
