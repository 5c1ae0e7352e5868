package persistence

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

func encodeCall(c Call) []byte {
	b := protowire.AppendString(nil, c.Method)
	return protowire.AppendBytes(b, c.Args)
}

func decodeCall(b []byte) (Call, error) {
	method, n := protowire.ConsumeString(b)
	if n < 0 {
		return Call{}, fmt.Errorf("call method: %w", protowire.ParseError(n))
	}
	b = b[n:]

	args, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return Call{}, fmt.Errorf("call args: %w", protowire.ParseError(n))
	}

	return Call{Method: method, Args: append([]byte(nil), args...)}, nil
}
