package timeline

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully-qualified gRPC service name.
	ServiceName = "machinetimeline.v1.TimelineService"
	// ClassifyMethod is the full method name of Classify.
	ClassifyMethod = "/" + ServiceName + "/Classify"
	// GetTimelineMethod is the full method name of GetTimeline.
	GetTimelineMethod = "/" + ServiceName + "/GetTimeline"
)

// TimelineServiceServer is the server API of the TimelineService.
type TimelineServiceServer interface {
	// Classify maps {"signals": {...}} to {"state", "label"}.
	Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	// GetTimeline maps {"start_date", "end_date"} to an encoded dataset.
	GetTimeline(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the TimelineService for grpc.Server registration.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TimelineServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Classify",
			Handler:    classifyHandler,
		},
		{
			MethodName: "GetTimeline",
			Handler:    getTimelineHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

// Register adds srv to the registrar under ServiceDesc.
func Register(registrar grpc.ServiceRegistrar, srv TimelineServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

func classifyHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	server := srv.(TimelineServiceServer) //nolint:forcetypeassert // Guaranteed by HandlerType.
	if interceptor == nil {
		return server.Classify(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ClassifyMethod,
	}

	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return server.Classify(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // Decoded above.
	})
}

func getTimelineHandler(
	srv any,
	ctx context.Context, //nolint:revive // Signature fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	server := srv.(TimelineServiceServer) //nolint:forcetypeassert // Guaranteed by HandlerType.
	if interceptor == nil {
		return server.GetTimeline(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetTimelineMethod,
	}

	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return server.GetTimeline(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // Decoded above.
	})
}
