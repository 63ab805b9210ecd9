package processorpb

import (
	"context"

	"google.golang.org/grpc"
)

// ProcessorServiceServer is the four-method service of spec.md §6. The
// first three methods are unary; ProcessBindingsStream is the bidirectional
// stream every processing session rides on.
type ProcessorServiceServer interface {
	Start(context.Context, *StartRequest) (*StartResponse, error)
	GetConfig(context.Context, *Empty) (*GetConfigResponse, error)
	UpdateTemplates(context.Context, *UpdateTemplatesRequest) (*Empty, error)
	ProcessBindingsStream(ProcessorService_ProcessBindingsStreamServer) error
}

// ProcessorService_ProcessBindingsStreamServer is the per-connection
// bidirectional stream handle a server implementation reads/writes through.
type ProcessorService_ProcessBindingsStreamServer interface {
	Send(*ProcessBindingsResponse) error
	Recv() (*ProcessBindingsRequest, error)
	grpc.ServerStream
}

// RegisterProcessorServiceServer wires srv into s using a hand-rolled
// ServiceDesc, since no protoc-generated registration helper exists in this
// tree.
func RegisterProcessorServiceServer(s grpc.ServiceRegistrar, srv ProcessorServiceServer) {
	s.RegisterService(&_ProcessorService_serviceDesc, srv)
}

var _ProcessorService_serviceDesc = grpc.ServiceDesc{
	ServiceName: "processor.v1.ProcessorService",
	HandlerType: (*ProcessorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Start",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := new(StartRequest)
				if err := dec(in); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return srv.(ProcessorServiceServer).Start(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/processor.v1.ProcessorService/Start"}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return srv.(ProcessorServiceServer).Start(ctx, req.(*StartRequest))
				}
				return interceptor(ctx, in, info, handler)
			},
		},
		{
			MethodName: "GetConfig",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := new(Empty)
				if err := dec(in); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return srv.(ProcessorServiceServer).GetConfig(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/processor.v1.ProcessorService/GetConfig"}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return srv.(ProcessorServiceServer).GetConfig(ctx, req.(*Empty))
				}
				return interceptor(ctx, in, info, handler)
			},
		},
		{
			MethodName: "UpdateTemplates",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := new(UpdateTemplatesRequest)
				if err := dec(in); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return srv.(ProcessorServiceServer).UpdateTemplates(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/processor.v1.ProcessorService/UpdateTemplates"}
				handler := func(ctx context.Context, req interface{}) (interface{}, error) {
					return srv.(ProcessorServiceServer).UpdateTemplates(ctx, req.(*UpdateTemplatesRequest))
				}
				return interceptor(ctx, in, info, handler)
			},
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ProcessBindingsStream",
			ServerStreams: true,
			ClientStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				return srv.(ProcessorServiceServer).ProcessBindingsStream(&processorServiceProcessBindingsStreamServer{stream})
			},
		},
	},
}

type processorServiceProcessBindingsStreamServer struct {
	grpc.ServerStream
}

func (x *processorServiceProcessBindingsStreamServer) Send(m *ProcessBindingsResponse) error {
	return x.ServerStream.SendMsg(m)
}

func (x *processorServiceProcessBindingsStreamServer) Recv() (*ProcessBindingsRequest, error) {
	m := new(ProcessBindingsRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
