package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "manoria.v1.SettlementService"

// SettlementServiceServer is the server API for the settlement service.
// Every method takes and returns a google.protobuf.Struct.
type SettlementServiceServer interface {
	CurrentAmount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SnapshotHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SettlementResources(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EnqueueConstruction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	QueueStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdjustResource(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreatePlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FoundSettlement(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSettlement(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSettlements(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type serviceMethod func(SettlementServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call serviceMethod) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + name

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SettlementServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SettlementServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func method(name string, call serviceMethod) grpc.MethodDesc {
	return grpc.MethodDesc{MethodName: name, Handler: unaryHandler(name, call)}
}

// SettlementServiceDesc describes the settlement service for grpc.Server.RegisterService
var SettlementServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SettlementServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method("CurrentAmount", SettlementServiceServer.CurrentAmount),
		method("SnapshotHistory", SettlementServiceServer.SnapshotHistory),
		method("SettlementResources", SettlementServiceServer.SettlementResources),
		method("EnqueueConstruction", SettlementServiceServer.EnqueueConstruction),
		method("QueueStatus", SettlementServiceServer.QueueStatus),
		method("AdjustResource", SettlementServiceServer.AdjustResource),
		method("CreatePlayer", SettlementServiceServer.CreatePlayer),
		method("FoundSettlement", SettlementServiceServer.FoundSettlement),
		method("GetSettlement", SettlementServiceServer.GetSettlement),
		method("ListSettlements", SettlementServiceServer.ListSettlements),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "manoria/v1/settlement.proto",
}

// RegisterSettlementServiceServer registers srv with s
func RegisterSettlementServiceServer(s grpc.ServiceRegistrar, srv SettlementServiceServer) {
	s.RegisterService(&SettlementServiceDesc, srv)
}
