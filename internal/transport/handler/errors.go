package handler

import (
	"context"
	"errors"
	"fmt"

	"recordstore/internal/codec"
	"recordstore/internal/host"
	"recordstore/internal/store"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "recordstore"

var reasons = []struct {
	err    error
	code   codes.Code
	reason string
}{
	{store.ErrNotFound, codes.NotFound, "RECORD_NOT_FOUND"},
	{host.ErrNotInitialized, codes.FailedPrecondition, "NOT_INITIALIZED"},
	{host.ErrAlreadyInitialized, codes.AlreadyExists, "ALREADY_INITIALIZED"},
	{codec.ErrInvalidArgument, codes.InvalidArgument, "INVALID_ARGUMENT"},
	{host.ErrUnknownMethod, codes.Unimplemented, "UNKNOWN_METHOD"},
}

func ToGRPCError(method string, err error) error {
	for _, r := range reasons {
		if !errors.Is(err, r.err) {
			continue
		}
		st := status.New(r.code, err.Error())
		ds, detailErr := st.WithDetails(&errdetails.ErrorInfo{
			Reason:   r.reason,
			Domain:   errorDomain,
			Metadata: map[string]string{"method": method},
		})
		if detailErr != nil {
			return st.Err()
		}
		return ds.Err()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "invocation timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "invocation canceled")
	default:
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}

// FromGRPCError turns a status carrying one of our ErrorInfo reasons back into
// an error matching the original sentinel with errors.Is.
func FromGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}

	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorDomain {
			continue
		}
		for _, r := range reasons {
			if r.reason == info.GetReason() {
				return fmt.Errorf("%w: %s", r.err, st.Message())
			}
		}
	}

	return err
}
