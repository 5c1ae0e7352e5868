package metrics

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor counts every RPC by service, method and status code.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		service, method := splitMethodName(info.FullMethod)

		GRPCRequestsTotal.WithLabelValues(service, method, code.String()).Inc()
		GRPCRequestDuration.WithLabelValues(service, method).Observe(elapsed.Seconds())

		if code != codes.OK {
			slog.Debug("rpc failed", "method", info.FullMethod, "code", code.String(), "elapsed", elapsed)
		}
		return resp, err
	}
}

func splitMethodName(fullMethod string) (string, string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	if fullMethod == "" {
		return "unknown", "unknown"
	}
	service, method, ok := strings.Cut(fullMethod, "/")
	if !ok {
		return "unknown", fullMethod
	}
	return service, method
}
