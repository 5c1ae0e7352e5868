package host

import "errors"

var (
	ErrNotInitialized     = errors.New("store not initialized")
	ErrAlreadyInitialized = errors.New("store already initialized")
	ErrUnknownMethod      = errors.New("unknown method")
)
