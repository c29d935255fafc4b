package control

import (
	"context"
	"errors"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/daylight/internal/domain/alarm"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/service/countdown"
	"github.com/oshokin/daylight/internal/service/session"
)

// watchBuffer is the per-stream event backlog; older events are dropped when a client is slow.
const watchBuffer = 16

// Service abstracts the session operations the transport layer depends on.
type Service interface {
	Snapshot() session.Snapshot
	Subscribe(buffer int) (<-chan session.Event, func())
	ArmAlarm(ctx context.Context, input string, actor *domain.Actor) error
	CancelAlarm(ctx context.Context)
	StopAlarm()
	SetAlarmEnabled(ctx context.Context, enabled bool)
	ConfigureCountdown(hours, minutes, seconds int) error
	StartCountdown()
	StopCountdown()
	ResetCountdown()
	StartStopwatch()
	StopStopwatch()
	ResetStopwatch()
	LapStopwatch() bool
}

// Server implements the ClockService gRPC API.
type Server struct {
	// service provides the session operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetSnapshot returns the current session snapshot.
func (s *Server) GetSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return s.snapshot()
}

// WatchSnapshots sends the current snapshot and then one snapshot per session event.
func (s *Server) WatchSnapshots(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	events, unsubscribe := s.service.Subscribe(watchBuffer)
	defer unsubscribe()

	current, err := s.snapshot()
	if err != nil {
		return err
	}

	if err = stream.Send(current); err != nil {
		return err
	}

	ctx := stream.Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}

			message, err := ToStruct(event.Snapshot)
			if err != nil {
				return status.Error(codes.Internal, err.Error())
			}

			if err = stream.Send(message); err != nil {
				return err
			}
		}
	}
}

// ArmAlarm parses the requested time and arms the alarm.
func (s *Server) ArmAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil || req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm time is required")
	}

	if err := s.service.ArmAlarm(ctx, req.GetValue(), ActorFromContext(ctx)); err != nil {
		return nil, toStatus(err)
	}

	return s.snapshot()
}

// CancelAlarm disarms the alarm.
func (s *Server) CancelAlarm(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.service.CancelAlarm(ctx)

	return s.snapshot()
}

// StopAlarm silences a ringing alarm.
func (s *Server) StopAlarm(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s.service.StopAlarm()

	return s.snapshot()
}

// SetAlarmEnabled toggles the alarm.
func (s *Server) SetAlarmEnabled(ctx context.Context, req *wrapperspb.BoolValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	s.service.SetAlarmEnabled(ctx, req.GetValue())

	return s.snapshot()
}

// ConfigureCountdown sets the countdown from the hours, minutes and seconds fields.
func (s *Server) ConfigureCountdown(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var parts [3]int

	for i, key := range []string{"hours", "minutes", "seconds"} {
		value, err := wholeNumber(req, key)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		parts[i] = value
	}

	if err := s.service.ConfigureCountdown(parts[0], parts[1], parts[2]); err != nil {
		return nil, toStatus(err)
	}

	return s.snapshot()
}

// StartCountdown starts the countdown.
func (s *Server) StartCountdown(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s.service.StartCountdown()

	return s.snapshot()
}

// StopCountdown pauses the countdown.
func (s *Server) StopCountdown(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s.service.StopCountdown()

	return s.snapshot()
}

// ResetCountdown restores the configured duration.
func (s *Server) ResetCountdown(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s.service.ResetCountdown()

	return s.snapshot()
}

// StartStopwatch starts the stopwatch.
func (s *Server) StartStopwatch(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s.service.StartStopwatch()

	return s.snapshot()
}

// StopStopwatch stops the stopwatch.
func (s *Server) StopStopwatch(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s.service.StopStopwatch()

	return s.snapshot()
}

// ResetStopwatch clears the stopwatch.
func (s *Server) ResetStopwatch(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	s.service.ResetStopwatch()

	return s.snapshot()
}

// LapStopwatch records a lap of the running stopwatch.
func (s *Server) LapStopwatch(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	if !s.service.LapStopwatch() {
		return nil, status.Error(codes.FailedPrecondition, "stopwatch is not running")
	}

	return s.snapshot()
}

func (s *Server) snapshot() (*structpb.Struct, error) {
	result, err := ToStruct(s.service.Snapshot())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return result, nil
}

// toStatus maps engine errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrParse), errors.Is(err, countdown.ErrInvalidDuration):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrInvalidAlarmTime), errors.Is(err, countdown.ErrRunning):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// wholeNumber reads an optional integral field; a missing field is zero.
func wholeNumber(req *structpb.Struct, key string) (int, error) {
	value, ok := req.GetFields()[key]
	if !ok {
		return 0, nil
	}

	number, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}

	if number.NumberValue != math.Trunc(number.NumberValue) || math.Abs(number.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a whole number", key)
	}

	return int(number.NumberValue), nil
}

// UnaryInterceptor logs every call and reports it to recorder when set.
func UnaryInterceptor(ctx context.Context, recorder interface{ RPCHandled(method, code string) }) grpc.UnaryServerInterceptor {
	ctx = logger.WithName(ctx, "rpc")

	return func(callCtx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(callCtx, req)

		code := status.Code(err)
		if recorder != nil {
			recorder.RPCHandled(info.FullMethod, code.String())
		}

		if err != nil {
			logger.WarnKV(ctx, "Request failed", "method", info.FullMethod, "code", code.String(), "actor", ActorFromContext(callCtx).String(), "error", err)
		} else {
			logger.DebugKV(ctx, "Request handled", "method", info.FullMethod, "actor", ActorFromContext(callCtx).String())
		}

		return resp, err
	}
}
