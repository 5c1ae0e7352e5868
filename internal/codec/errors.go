package codec

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMalformedState  = errors.New("malformed state")
)
