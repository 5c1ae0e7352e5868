package persistence

import (
	"sync"

	"recordstore/internal/store"
)

// Memory is a Persister without a disk. State survives a host restart only
// when the same Memory value is handed to the new host.
type Memory struct {
	mu        sync.Mutex
	snapCount uint64
	replay    Replay
}

func NewMemory(snapCount uint64) *Memory {
	return &Memory{snapCount: snapCount}
}

func (m *Memory) Load() (Replay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := Replay{
		Snapshot: m.replay.Snapshot,
		Calls:    append([]Call(nil), m.replay.Calls...),
	}
	return out, nil
}

func (m *Memory) Commit(call Call, committed *store.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replay.Calls = append(m.replay.Calls, Call{
		Method: call.Method,
		Args:   append([]byte(nil), call.Args...),
	})

	if m.snapCount == 0 || uint64(len(m.replay.Calls)) < m.snapCount {
		return nil
	}

	data, err := committed.Snapshot()
	if err != nil {
		return err
	}
	m.replay = Replay{Snapshot: data}
	return nil
}

func (m *Memory) Close() error { return nil }
