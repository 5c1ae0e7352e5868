package transport

import (
	"context"
	"fmt"

	"recordstore/internal/codec"
	"recordstore/internal/host"
	"recordstore/internal/transport/handler"
	"recordstore/internal/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a plaintext client for target. Extra options are appended.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Invoke calls a host method with raw JSON arguments. Errors carrying a known
// reason match the host and store sentinels with errors.Is.
func (c *Client) Invoke(ctx context.Context, method string, args []byte) ([]byte, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.conn.Invoke(ctx, FullMethod(method), wrapperspb.Bytes(args), out); err != nil {
		return nil, handler.FromGRPCError(err)
	}
	return out.GetValue(), nil
}

func (c *Client) New(ctx context.Context) error {
	_, err := c.Invoke(ctx, host.MethodNew, nil)
	return err
}

func (c *Client) CreateRecord(ctx context.Context, text string) (types.RecordID, error) {
	args, err := codec.EncodeArgs(codec.CreateArgs{Text: text})
	if err != nil {
		return 0, err
	}
	result, err := c.Invoke(ctx, host.MethodCreateRecord, args)
	if err != nil {
		return 0, err
	}
	return codec.DecodeID(result)
}

func (c *Client) ListRecords(ctx context.Context) ([]types.RecordWithID, error) {
	result, err := c.Invoke(ctx, host.MethodListRecords, nil)
	if err != nil {
		return nil, err
	}
	return codec.DecodeList(result)
}

func (c *Client) SetStatus(ctx context.Context, id types.RecordID, status types.Status) error {
	return c.invokeArgs(ctx, host.MethodSetStatus, codec.SetStatusArgs{ID: id, Status: status})
}

func (c *Client) SetText(ctx context.Context, id types.RecordID, text string) error {
	return c.invokeArgs(ctx, host.MethodSetText, codec.SetTextArgs{ID: id, Text: text})
}

func (c *Client) DeleteRecord(ctx context.Context, id types.RecordID) error {
	return c.invokeArgs(ctx, host.MethodDeleteRecord, codec.DeleteArgs{ID: id})
}

func (c *Client) invokeArgs(ctx context.Context, method string, v any) error {
	args, err := codec.EncodeArgs(v)
	if err != nil {
		return err
	}
	_, err = c.Invoke(ctx, method, args)
	return err
}
