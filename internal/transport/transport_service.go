package transport

import (
	"context"
	"log/slog"
	"net"
	"time"

	"recordstore/internal/configuration"
	"recordstore/internal/metrics"
	"recordstore/internal/transport/handler"

	"google.golang.org/grpc"
)

type Service struct {
	network              string
	address              string
	timeout              time.Duration
	maxConcurrentStreams uint32
	invoker              handler.Invoker
	listener             net.Listener
	Server               *grpc.Server
}

func NewTransportService(cfg *configuration.TransportConfigurationProperties, invoker handler.Invoker) *Service {
	ts := &Service{
		network:              cfg.Network,
		address:              cfg.Addr(),
		timeout:              cfg.TimeoutDuration(),
		maxConcurrentStreams: cfg.MaxConcurrentStreams,
		invoker:              invoker,
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			metrics.UnaryServerInterceptor(),
			timeoutInterceptor(ts.timeout),
		),
	}
	if ts.maxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(ts.maxConcurrentStreams))
	}

	ts.Server = grpc.NewServer(opts...)
	ts.Server.RegisterService(serviceDesc(), handler.NewHostHandler(invoker))

	return ts
}

// StartServer listens on the configured address and serves in the background.
func (ts *Service) StartServer() (net.Listener, error) {
	lis, err := net.Listen(ts.network, ts.address)
	if err != nil {
		return nil, err
	}

	ts.listener = lis
	slog.Info("transport listening", "addr", lis.Addr().String(), "timeout", ts.timeout)
	go ts.Serve(lis)

	return lis, nil
}

// Addr is the bound address once StartServer has run, else the configured one.
func (ts *Service) Addr() string {
	if ts.listener == nil {
		return ts.address
	}
	return ts.listener.Addr().String()
}

func (ts *Service) Serve(lis net.Listener) {
	if err := ts.Server.Serve(lis); err != nil {
		slog.Error("failed to serve listener", "error", err)
	}
}

func (ts *Service) Stop() {
	ts.Server.GracefulStop()
	slog.Info("transport stopped")
}

func timeoutInterceptor(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return next(ctx, req)
	}
}
