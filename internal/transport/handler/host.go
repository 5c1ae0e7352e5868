package handler

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Invoker interface {
	Invoke(ctx context.Context, method string, args []byte) ([]byte, error)
}

// HostHandler serves host methods over gRPC. Arguments and results travel as
// JSON inside a BytesValue.
type HostHandler struct {
	invoker Invoker
}

func NewHostHandler(invoker Invoker) *HostHandler {
	return &HostHandler{invoker: invoker}
}

func (h *HostHandler) Handle(ctx context.Context, method string, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	slog.Debug("received invocation", "method", method, "argsBytes", len(req.GetValue()))

	result, err := h.invoker.Invoke(ctx, method, req.GetValue())
	if err != nil {
		return nil, ToGRPCError(method, err)
	}

	return wrapperspb.Bytes(result), nil
}
