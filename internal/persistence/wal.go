package persistence

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"recordstore/internal/metrics"
	"recordstore/internal/store"

	"github.com/tidwall/wal"
)

const walFolder = "wal"

var ErrClosed = errors.New("persister closed")

type WAL struct {
	mu sync.Mutex

	log       *wal.Log
	noSync    bool
	snapCount uint64

	nextIdx       uint64
	sinceSnapshot uint64
	closed        bool
}

func OpenWAL(dir string, noSync bool, snapCount uint64) (*WAL, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	opts := *wal.DefaultOptions
	opts.NoSync = noSync
	log, err := wal.Open(filepath.Join(dir, walFolder), &opts)
	if err != nil {
		return nil, fmt.Errorf("wal.Open: %w", err)
	}

	last, err := log.LastIndex()
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("wal.LastIndex: %w", err)
	}

	slog.Info("opened state log", "dir", dir, "lastIndex", last, "noSync", noSync, "snapCount", snapCount)

	return &WAL{
		log:       log,
		noSync:    noSync,
		snapCount: snapCount,
		nextIdx:   last + 1,
	}, nil
}

func (w *WAL) Load() (Replay, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return Replay{}, ErrClosed
	}

	first, err := w.log.FirstIndex()
	if err != nil {
		return Replay{}, fmt.Errorf("wal.FirstIndex: %w", err)
	}
	last, err := w.log.LastIndex()
	if err != nil {
		return Replay{}, fmt.Errorf("wal.LastIndex: %w", err)
	}
	if last == 0 {
		return Replay{}, nil
	}

	var replay Replay
	for idx := first; idx <= last; idx++ {
		data, err := w.log.Read(idx)
		if err != nil {
			return Replay{}, fmt.Errorf("wal.Read(%d): %w", idx, err)
		}

		recType, payload, err := unmarshalRecord(data)
		if err != nil {
			return Replay{}, fmt.Errorf("unmarshal record %d: %w", idx, err)
		}

		switch recType {
		case RecordTypeSnapshot:
			replay.Snapshot = append([]byte(nil), payload...)
			replay.Calls = nil

		case RecordTypeCall:
			call, err := decodeCall(payload)
			if err != nil {
				return Replay{}, fmt.Errorf("decode call %d: %w", idx, err)
			}
			replay.Calls = append(replay.Calls, call)

		default:
			return Replay{}, fmt.Errorf("record %d: unknown type %d", idx, recType)
		}
	}

	w.sinceSnapshot = uint64(len(replay.Calls))
	slog.Debug("loaded state log",
		"first", first,
		"last", last,
		"hasSnapshot", replay.Snapshot != nil,
		"calls", len(replay.Calls),
	)

	return replay, nil
}

func (w *WAL) Commit(call Call, committed *store.Store) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	if err := w.appendLocked(RecordTypeCall, encodeCall(call)); err != nil {
		return err
	}
	w.sinceSnapshot++

	if w.snapCount == 0 || w.sinceSnapshot < w.snapCount {
		return nil
	}

	// The call is already durable; a failed snapshot only delays compaction.
	if err := w.snapshotLocked(committed); err != nil {
		slog.Warn("state snapshot failed", "error", err)
	}
	return nil
}

func (w *WAL) snapshotLocked(committed *store.Store) error {
	start := time.Now()

	data, err := committed.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot store: %w", err)
	}

	snapIdx := w.nextIdx
	if err := w.appendLocked(RecordTypeSnapshot, data); err != nil {
		return err
	}

	if err := w.log.TruncateFront(snapIdx); err != nil {
		return fmt.Errorf("wal.TruncateFront: %w", err)
	}
	w.sinceSnapshot = 0

	metrics.SnapshotsTotal.Inc()
	metrics.SnapshotSize.Set(float64(len(data)))
	metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	slog.Debug("wrote state snapshot", "index", snapIdx, "bytes", len(data), "records", committed.Len())

	return nil
}

func (w *WAL) appendLocked(recType byte, payload []byte) error {
	start := time.Now()

	data := marshalRecord(recType, payload)
	if err := w.log.Write(w.nextIdx, data); err != nil {
		return fmt.Errorf("wal.Write(%d): %w", w.nextIdx, err)
	}
	w.nextIdx++

	metrics.WALWritesTotal.Inc()
	metrics.WALWriteDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.log.Sync(); err != nil {
		slog.Warn("state log sync on close failed", "error", err)
	}
	return w.log.Close()
}
