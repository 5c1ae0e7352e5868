// Package persistence keeps the committed host state across restarts.
//
// Committed invocations are appended to a log. Every so often the whole store
// is written as a snapshot record and everything before it is dropped, so a
// replay is at most one snapshot plus a bounded tail of calls.
package persistence

import (
	"encoding/binary"
	"io"

	"recordstore/internal/store"
)

const (
	RecordTypeCall     byte = 1
	RecordTypeSnapshot byte = 2
)

// Call is one committed host invocation.
type Call struct {
	Method string
	Args   []byte
}

// Replay is what a Persister hands back on startup: the latest snapshot, if
// any, and the calls committed after it, oldest first.
type Replay struct {
	Snapshot []byte
	Calls    []Call
}

func (r Replay) Empty() bool {
	return r.Snapshot == nil && len(r.Calls) == 0
}

type Persister interface {
	Load() (Replay, error)
	// Commit records call; committed is the store state after it applied.
	Commit(call Call, committed *store.Store) error
	Close() error
}

func marshalRecord(recType byte, payload []byte) []byte {
	buf := make([]byte, 1+binary.MaxVarintLen64+len(payload))
	buf[0] = recType
	n := binary.PutUvarint(buf[1:], uint64(len(payload)))
	copy(buf[1+n:], payload)
	return buf[:1+n+len(payload)]
}

func unmarshalRecord(data []byte) (byte, []byte, error) {
	if len(data) < 2 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	recType := data[0]
	length, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	start := 1 + n
	end := start + int(length)
	if end > len(data) || end < start {
		return 0, nil, io.ErrUnexpectedEOF
	}
	return recType, data[start:end], nil
}
