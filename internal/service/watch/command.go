package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	control "github.com/oshokin/daylight/internal/api/grpc/control"
	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/service/common"
)

// Options controls the watch stream and reconnection behavior.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// ReconnectInterval defines the pause before re-opening a broken stream.
	ReconnectInterval time.Duration
	// Output receives one line per snapshot change, os.Stdout when nil.
	Output io.Writer
}

// DefaultReconnectInterval defines the pause before re-opening a broken stream.
const DefaultReconnectInterval = 5 * time.Second

// Run streams snapshots from the server and prints a line whenever the visible state changes.
// It reconnects after stream failures until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "daylight-watch")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = DefaultReconnectInterval
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	// Determine server address: command line argument overrides config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	actor, err := common.DetectActor()
	if err != nil {
		return fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout), common.WithActor(actor))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching snapshots", "server_address", serverAddress)

	var last string

	for {
		err = stream(ctx, client, output, &last)

		switch {
		case ctx.Err() != nil:
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case err != nil && status.Code(err) != codes.Unavailable && !errors.Is(err, io.EOF):
			return err
		}

		logger.WarnKV(ctx, "Stream interrupted, reconnecting", "error", err, "interval", opts.ReconnectInterval.String())

		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-time.After(opts.ReconnectInterval):
		}
	}
}

// stream reads snapshots until the stream ends and prints the ones whose line differs from last.
func stream(ctx context.Context, client *common.Client, output io.Writer, last *string) error {
	snapshots, err := client.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		message, err := snapshots.Recv()
		if err != nil {
			return err
		}

		view, err := control.Decode(message)
		if err != nil {
			return err
		}

		line := Line(view)
		if line == *last {
			continue
		}

		*last = line

		if _, err = fmt.Fprintln(output, line); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
}

// Line renders the state a watcher cares about on one line.
func Line(view *control.View) string {
	alarm := view.Alarm.Status
	if view.Alarm.Target != "" && view.Alarm.Status != "unarmed" {
		alarm += " " + view.Alarm.Target
	}

	if view.Alarm.Armed && !view.Alarm.Enabled {
		alarm += " (disabled)"
	}

	// Whole seconds keep a running stopwatch from printing every refresh.
	elapsed := (time.Duration(view.Stopwatch.ElapsedMS) * time.Millisecond).Truncate(time.Second)

	return fmt.Sprintf("%s theme=%s alarm=%s timer=%s/%t stopwatch=%s/%t",
		view.Digital, view.Theme, alarm,
		view.Countdown.Remaining, view.Countdown.Running,
		elapsed, view.Stopwatch.Running)
}
