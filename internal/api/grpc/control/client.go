package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ClockServiceClient calls the clock service over a client connection.
type ClockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClockServiceClient wraps a connection.
func NewClockServiceClient(cc grpc.ClientConnInterface) *ClockServiceClient {
	return &ClockServiceClient{cc: cc}
}

// GetSnapshot returns the session snapshot.
func (c *ClockServiceClient) GetSnapshot(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodGetSnapshot, new(emptypb.Empty), opts...)
}

// WatchSnapshots streams snapshots until ctx is cancelled.
func (c *ClockServiceClient) WatchSnapshots(
	ctx context.Context,
	opts ...grpc.CallOption,
) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], FullMethod(MethodWatchSnapshots), opts...)
	if err != nil {
		return nil, err
	}

	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.SendMsg(new(emptypb.Empty)); err != nil {
		return nil, err
	}

	if err := x.CloseSend(); err != nil {
		return nil, err
	}

	return x, nil
}

// ArmAlarm arms the alarm with a user-entered time.
func (c *ClockServiceClient) ArmAlarm(ctx context.Context, input string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodArmAlarm, wrapperspb.String(input), opts...)
}

// CancelAlarm disarms the alarm.
func (c *ClockServiceClient) CancelAlarm(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodCancelAlarm, new(emptypb.Empty), opts...)
}

// StopAlarm silences the alarm.
func (c *ClockServiceClient) StopAlarm(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodStopAlarm, new(emptypb.Empty), opts...)
}

// SetAlarmEnabled toggles alarm evaluation.
func (c *ClockServiceClient) SetAlarmEnabled(ctx context.Context, enabled bool, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodSetAlarmEnabled, wrapperspb.Bool(enabled), opts...)
}

// ConfigureCountdown sets the countdown duration.
func (c *ClockServiceClient) ConfigureCountdown(
	ctx context.Context,
	hours, minutes, seconds int,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.call(ctx, MethodConfigureCountdown, countdownRequest(hours, minutes, seconds), opts...)
}

// StartCountdown starts the countdown.
func (c *ClockServiceClient) StartCountdown(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodStartCountdown, new(emptypb.Empty), opts...)
}

// StopCountdown pauses the countdown.
func (c *ClockServiceClient) StopCountdown(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodStopCountdown, new(emptypb.Empty), opts...)
}

// ResetCountdown restores the configured countdown duration.
func (c *ClockServiceClient) ResetCountdown(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodResetCountdown, new(emptypb.Empty), opts...)
}

// StartStopwatch starts the stopwatch.
func (c *ClockServiceClient) StartStopwatch(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodStartStopwatch, new(emptypb.Empty), opts...)
}

// StopStopwatch stops the stopwatch.
func (c *ClockServiceClient) StopStopwatch(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodStopStopwatch, new(emptypb.Empty), opts...)
}

// ResetStopwatch clears the stopwatch.
func (c *ClockServiceClient) ResetStopwatch(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodResetStopwatch, new(emptypb.Empty), opts...)
}

// LapStopwatch records a lap.
func (c *ClockServiceClient) LapStopwatch(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, MethodLapStopwatch, new(emptypb.Empty), opts...)
}

func (c *ClockServiceClient) call(ctx context.Context, method string, in proto.Message, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func countdownRequest(hours, minutes, seconds int) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"hours":   structpb.NewNumberValue(float64(hours)),
			"minutes": structpb.NewNumberValue(float64(minutes)),
			"seconds": structpb.NewNumberValue(float64(seconds)),
		},
	}
}
