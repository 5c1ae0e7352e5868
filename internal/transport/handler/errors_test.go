package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recordstore/internal/codec"
	"recordstore/internal/host"
	"recordstore/internal/store"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToGRPCError_Codes(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: id 3", store.ErrNotFound), codes.NotFound},
		{host.ErrNotInitialized, codes.FailedPrecondition},
		{host.ErrAlreadyInitialized, codes.AlreadyExists},
		{fmt.Errorf("%w: missing field", codec.ErrInvalidArgument), codes.InvalidArgument},
		{host.ErrUnknownMethod, codes.Unimplemented},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{context.Canceled, codes.Canceled},
		{errors.New("disk full"), codes.Internal},
	}

	for _, c := range cases {
		assert.Equal(t, c.code, status.Code(ToGRPCError("set_text", c.err)), c.err.Error())
	}
}

func TestFromGRPCError_RestoresSentinel(t *testing.T) {
	err := FromGRPCError(ToGRPCError("set_text", fmt.Errorf("%w: id 3", store.ErrNotFound)))
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "id 3")

	plain := status.Error(codes.Unavailable, "down")
	assert.Equal(t, plain, FromGRPCError(plain))

	assert.Nil(t, FromGRPCError(nil))
}

type stubInvoker struct {
	method string
	args   []byte
}

func (s *stubInvoker) Invoke(_ context.Context, method string, args []byte) ([]byte, error) {
	s.method, s.args = method, args
	return []byte("7"), nil
}

func TestHostHandler_PassesMethodAndArgs(t *testing.T) {
	inv := &stubInvoker{}
	h := NewHostHandler(inv)

	out, err := h.Handle(context.Background(), "create_record", nil)
	assert.NoError(t, err)
	assert.Equal(t, "7", string(out.GetValue()))
	assert.Equal(t, "create_record", inv.method)
}
