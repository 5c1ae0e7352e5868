package transport

import (
	"context"

	"recordstore/internal/host"
	"recordstore/internal/transport/handler"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "recordstore.v1.RecordHost"

type hostServer interface {
	Handle(ctx context.Context, method string, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

var _ hostServer = (*handler.HostHandler)(nil)

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// serviceDesc exposes every host method as a unary RPC of the same name.
func serviceDesc() *grpc.ServiceDesc {
	methods := make([]grpc.MethodDesc, 0, len(host.Methods))
	for _, m := range host.Methods {
		methods = append(methods, grpc.MethodDesc{
			MethodName: m,
			Handler:    methodHandler(m),
		})
	}

	return &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*hostServer)(nil),
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
		Metadata:    "recordstore/v1/host",
	}
}

func methodHandler(method string) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(wrapperspb.BytesValue)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return srv.(hostServer).Handle(ctx, method, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		h := func(ctx context.Context, req any) (any, error) {
			return srv.(hostServer).Handle(ctx, method, req.(*wrapperspb.BytesValue))
		}
		return interceptor(ctx, in, info, h)
	}
}
