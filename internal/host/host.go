// Package host runs store invocations one at a time and keeps the committed
// state durable between them.
//
// An invocation either commits completely, in memory and in the persister,
// or leaves no trace. Failed calls are never written to the log.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"recordstore/internal/metrics"
	"recordstore/internal/persistence"
	"recordstore/internal/store"

	"github.com/google/uuid"
)

type Host struct {
	mu        sync.Mutex
	persister persistence.Persister
	state     *store.Store
}

// Open rebuilds the committed state from p and returns a host serving it.
func Open(p persistence.Persister) (*Host, error) {
	replay, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	h := &Host{persister: p}

	if replay.Snapshot != nil {
		st, err := store.Restore(replay.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
		h.state = st
	}

	for i, call := range replay.Calls {
		out, err := apply(h.state, call.Method, call.Args)
		if err != nil {
			return nil, fmt.Errorf("replay call %d (%s): %w", i, call.Method, err)
		}
		h.state = out.next
	}

	h.observe()
	slog.Info("host state restored",
		"initialized", h.state != nil,
		"fromSnapshot", replay.Snapshot != nil,
		"replayedCalls", len(replay.Calls),
		"records", h.records(),
	)

	return h, nil
}

// Invoke runs one host method with JSON arguments and returns its JSON result.
// Methods without a result return nil.
func (h *Host) Invoke(ctx context.Context, method string, args []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	invocationID := uuid.New()
	label := method
	if !knownMethod(method) {
		label = "unknown"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	slog.Debug("invocation started", "invocation", invocationID, "method", method)

	result, err := h.invokeLocked(method, args)

	metrics.InvocationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InvocationsTotal.WithLabelValues(label, "error").Inc()
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("invocation aborted", "invocation", invocationID, "method", method, "reason", err.Error())
		} else {
			slog.Debug("invocation failed", "invocation", invocationID, "method", method, "reason", err.Error())
		}
		return nil, err
	}

	metrics.InvocationsTotal.WithLabelValues(label, "ok").Inc()
	slog.Debug("invocation committed", "invocation", invocationID, "method", method, "elapsed", time.Since(start))
	return result, nil
}

func (h *Host) invokeLocked(method string, args []byte) ([]byte, error) {
	out, err := apply(h.state, method, args)
	if err != nil {
		return nil, err
	}

	if !out.mutated {
		return out.result, nil
	}

	if err := h.persister.Commit(persistence.Call{Method: method, Args: args}, out.next); err != nil {
		return nil, fmt.Errorf("persist %s: %w", method, err)
	}

	h.state = out.next
	h.observe()
	return out.result, nil
}

func (h *Host) Initialized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state != nil
}

func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.persister.Close()
}

func (h *Host) records() int {
	if h.state == nil {
		return 0
	}
	return h.state.Len()
}

func (h *Host) observe() {
	if h.state == nil {
		metrics.Initialized.Set(0)
		metrics.RecordsTotal.Set(0)
		metrics.NextID.Set(0)
		return
	}
	metrics.Initialized.Set(1)
	metrics.RecordsTotal.Set(float64(h.state.Len()))
	metrics.NextID.Set(float64(h.state.NextID()))
}
