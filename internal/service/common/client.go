//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	control "github.com/oshokin/daylight/internal/api/grpc/control"
	"github.com/oshokin/daylight/internal/config"
	domain "github.com/oshokin/daylight/internal/domain/alarm"
)

// Client wraps the ClockService client with call timeouts and the caller identity.
type Client struct {
	// conn is the underlying gRPC connection to the daylight server.
	conn *grpc.ClientConn
	// api is the ClockService client.
	api *control.ClockServiceClient
	// actor is sent with every call, nil for anonymous calls.
	actor *domain.Actor
	// dialOptions are appended to the defaults when connecting.
	dialOptions []grpc.DialOption

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor sends the actor with every call.
func WithActor(actor *domain.Actor) Option {
	return func(c *Client) {
		c.actor = actor.Clone()
	}
}

// WithDialOptions adds gRPC dial options, for example a custom dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, opts...)
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the daylight server.
// Note: this uses insecure transport credentials; the server listens on loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	dialOptions := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, client.dialOptions...)

	conn, err := grpc.NewClient(address, dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("dial daylight server: %w", err)
	}

	client.conn = conn
	client.api = control.NewClockServiceClient(conn)

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Snapshot retrieves the session snapshot.
func (c *Client) Snapshot(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "get snapshot", c.api.GetSnapshot)
}

// Watch streams snapshots until ctx is cancelled. No call timeout applies.
func (c *Client) Watch(ctx context.Context) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.api.WatchSnapshots(control.WithActor(ctx, c.actor))
	if err != nil {
		return nil, fmt.Errorf("watch snapshots: %w", err)
	}

	return stream, nil
}

// ArmAlarm arms the alarm with a user-entered time such as "07:45" or "7:45 PM".
func (c *Client) ArmAlarm(ctx context.Context, input string) (*structpb.Struct, error) {
	return c.call(ctx, "arm alarm", func(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
		return c.api.ArmAlarm(ctx, input, opts...)
	})
}

// CancelAlarm disarms the alarm.
func (c *Client) CancelAlarm(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "cancel alarm", c.api.CancelAlarm)
}

// StopAlarm silences the alarm.
func (c *Client) StopAlarm(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "stop alarm", c.api.StopAlarm)
}

// SetAlarmEnabled toggles alarm evaluation.
func (c *Client) SetAlarmEnabled(ctx context.Context, enabled bool) (*structpb.Struct, error) {
	return c.call(ctx, "set alarm enabled", func(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
		return c.api.SetAlarmEnabled(ctx, enabled, opts...)
	})
}

// ConfigureCountdown sets the countdown duration.
func (c *Client) ConfigureCountdown(ctx context.Context, hours, minutes, seconds int) (*structpb.Struct, error) {
	return c.call(ctx, "configure countdown", func(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
		return c.api.ConfigureCountdown(ctx, hours, minutes, seconds, opts...)
	})
}

// StartCountdown starts the countdown.
func (c *Client) StartCountdown(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "start countdown", c.api.StartCountdown)
}

// StopCountdown pauses the countdown.
func (c *Client) StopCountdown(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "stop countdown", c.api.StopCountdown)
}

// ResetCountdown restores the configured countdown duration.
func (c *Client) ResetCountdown(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "reset countdown", c.api.ResetCountdown)
}

// StartStopwatch starts the stopwatch.
func (c *Client) StartStopwatch(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "start stopwatch", c.api.StartStopwatch)
}

// StopStopwatch stops the stopwatch.
func (c *Client) StopStopwatch(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "stop stopwatch", c.api.StopStopwatch)
}

// ResetStopwatch clears the stopwatch.
func (c *Client) ResetStopwatch(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "reset stopwatch", c.api.ResetStopwatch)
}

// LapStopwatch records a lap.
func (c *Client) LapStopwatch(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "lap stopwatch", c.api.LapStopwatch)
}

type rpc func(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error)

// call runs fn with the call timeout and actor metadata applied.
func (c *Client) call(ctx context.Context, operation string, fn rpc) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := fn(control.WithActor(callCtx, c.actor))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return response, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
