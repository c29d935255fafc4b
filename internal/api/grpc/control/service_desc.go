package control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "daylight.v1.ClockService"

// Method names.
const (
	MethodGetSnapshot        = "GetSnapshot"
	MethodWatchSnapshots     = "WatchSnapshots"
	MethodArmAlarm           = "ArmAlarm"
	MethodCancelAlarm        = "CancelAlarm"
	MethodStopAlarm          = "StopAlarm"
	MethodSetAlarmEnabled    = "SetAlarmEnabled"
	MethodConfigureCountdown = "ConfigureCountdown"
	MethodStartCountdown     = "StartCountdown"
	MethodStopCountdown      = "StopCountdown"
	MethodResetCountdown     = "ResetCountdown"
	MethodStartStopwatch     = "StartStopwatch"
	MethodStopStopwatch      = "StopStopwatch"
	MethodResetStopwatch     = "ResetStopwatch"
	MethodLapStopwatch       = "LapStopwatch"
)

// ClockServiceServer is the server API of the clock service.
// Every unary method answers with the session snapshot after the operation.
type ClockServiceServer interface {
	GetSnapshot(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	WatchSnapshots(in *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error
	ArmAlarm(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	CancelAlarm(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	StopAlarm(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	SetAlarmEnabled(ctx context.Context, in *wrapperspb.BoolValue) (*structpb.Struct, error)
	ConfigureCountdown(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	StartCountdown(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	StopCountdown(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	ResetCountdown(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	StartStopwatch(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	StopStopwatch(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	ResetStopwatch(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	LapStopwatch(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the clock service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level values in generated gRPC code as well.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary[emptypb.Empty](MethodGetSnapshot, ClockServiceServer.GetSnapshot),
		unary[wrapperspb.StringValue](MethodArmAlarm, ClockServiceServer.ArmAlarm),
		unary[emptypb.Empty](MethodCancelAlarm, ClockServiceServer.CancelAlarm),
		unary[emptypb.Empty](MethodStopAlarm, ClockServiceServer.StopAlarm),
		unary[wrapperspb.BoolValue](MethodSetAlarmEnabled, ClockServiceServer.SetAlarmEnabled),
		unary[structpb.Struct](MethodConfigureCountdown, ClockServiceServer.ConfigureCountdown),
		unary[emptypb.Empty](MethodStartCountdown, ClockServiceServer.StartCountdown),
		unary[emptypb.Empty](MethodStopCountdown, ClockServiceServer.StopCountdown),
		unary[emptypb.Empty](MethodResetCountdown, ClockServiceServer.ResetCountdown),
		unary[emptypb.Empty](MethodStartStopwatch, ClockServiceServer.StartStopwatch),
		unary[emptypb.Empty](MethodStopStopwatch, ClockServiceServer.StopStopwatch),
		unary[emptypb.Empty](MethodResetStopwatch, ClockServiceServer.ResetStopwatch),
		unary[emptypb.Empty](MethodLapStopwatch, ClockServiceServer.LapStopwatch),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    MethodWatchSnapshots,
			Handler:       watchSnapshotsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "daylight/v1/clock.proto",
}

// RegisterClockServiceServer registers srv on the provided registrar.
func RegisterClockServiceServer(s grpc.ServiceRegistrar, srv ClockServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FullMethod returns the /service/method path of a method name.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary builds the descriptor of a unary method that decodes T and calls call.
func unary[T any, PT interface {
	*T
	proto.Message
}](name string, call func(ClockServiceServer, context.Context, PT) (*structpb.Struct, error)) grpc.MethodDesc {
	fullMethod := FullMethod(name)

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PT(new(T))
			if err := dec(in); err != nil {
				return nil, err
			}

			server, _ := srv.(ClockServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}

			handler := func(ctx context.Context, req any) (any, error) {
				request, _ := req.(PT)

				return call(server, ctx, request)
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}

func watchSnapshotsHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}

	server, _ := srv.(ClockServiceServer)

	return server.WatchSnapshots(in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}
