package host

import (
	"context"
	"errors"
	"testing"

	"recordstore/internal/codec"
	"recordstore/internal/persistence"
	"recordstore/internal/store"
	"recordstore/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPersister struct {
	*persistence.Memory
	fail bool
}

func (p *failingPersister) Commit(call persistence.Call, committed *store.Store) error {
	if p.fail {
		return errors.New("disk full")
	}
	return p.Memory.Commit(call, committed)
}

func newHost(t *testing.T) *Host {
	t.Helper()
	h, err := Open(persistence.NewMemory(0))
	require.NoError(t, err)
	return h
}

func invoke(t *testing.T, h *Host, method, args string) []byte {
	t.Helper()
	out, err := h.Invoke(context.Background(), method, []byte(args))
	require.NoError(t, err, "%s %s", method, args)
	return out
}

func list(t *testing.T, h *Host) []types.RecordWithID {
	t.Helper()
	records, err := codec.DecodeList(invoke(t, h, MethodListRecords, ""))
	require.NoError(t, err)
	return records
}

func rec(id types.RecordID, text string, status types.Status) types.RecordWithID {
	return types.RecordWithID{ID: id, Record: types.Record{Text: text, Status: status}}
}

func TestInvoke_BeforeNewFails(t *testing.T) {
	h := newHost(t)

	for _, m := range []string{MethodCreateRecord, MethodListRecords, MethodSetStatus, MethodSetText, MethodDeleteRecord} {
		_, err := h.Invoke(context.Background(), m, []byte(`{"id":0,"text":"a","status":"Pending"}`))
		assert.ErrorIs(t, err, ErrNotInitialized, m)
	}
	assert.False(t, h.Initialized())
}

func TestInvoke_NewOnlyOnce(t *testing.T) {
	h := newHost(t)
	invoke(t, h, MethodNew, "")
	assert.True(t, h.Initialized())

	_, err := h.Invoke(context.Background(), MethodNew, nil)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestInvoke_UnknownMethod(t *testing.T) {
	h := newHost(t)
	_, err := h.Invoke(context.Background(), "add_todo", nil)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestInvoke_CanceledContext(t *testing.T) {
	h := newHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Invoke(ctx, MethodNew, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, h.Initialized())
}

func TestInvoke_Scenario(t *testing.T) {
	h := newHost(t)
	invoke(t, h, MethodNew, "")

	assert.Equal(t, "0", string(invoke(t, h, MethodCreateRecord, `{"text":"a"}`)))
	assert.Equal(t, "1", string(invoke(t, h, MethodCreateRecord, `{"text":"b"}`)))
	assert.Nil(t, invoke(t, h, MethodSetStatus, `{"id":0,"status":"Completed"}`))
	assert.Nil(t, invoke(t, h, MethodDeleteRecord, `{"id":1}`))

	assert.JSONEq(t, `[{"id":0,"text":"a","status":"Completed"}]`, string(invoke(t, h, MethodListRecords, "")))
}

func TestInvoke_UnknownIDTolerance(t *testing.T) {
	h := newHost(t)
	invoke(t, h, MethodNew, "")

	invoke(t, h, MethodSetStatus, `{"id":999,"status":"Completed"}`)
	invoke(t, h, MethodDeleteRecord, `{"id":999}`)

	assert.Empty(t, list(t, h))
	assert.Equal(t, "0", string(invoke(t, h, MethodCreateRecord, `{"text":"x"}`)))
}

func TestInvoke_SetTextUnknownIDAborts(t *testing.T) {
	h := newHost(t)
	invoke(t, h, MethodNew, "")
	invoke(t, h, MethodCreateRecord, `{"text":"X"}`)

	_, err := h.Invoke(context.Background(), MethodSetText, []byte(`{"id":999,"text":"Y"}`))
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, []types.RecordWithID{rec(0, "X", types.StatusPending)}, list(t, h))
}

func TestInvoke_SetText(t *testing.T) {
	h := newHost(t)
	invoke(t, h, MethodNew, "")
	invoke(t, h, MethodCreateRecord, `{"text":"X"}`)
	invoke(t, h, MethodSetStatus, `{"id":0,"status":"Completed"}`)
	invoke(t, h, MethodSetText, `{"id":0,"text":""}`)

	assert.Equal(t, []types.RecordWithID{rec(0, "", types.StatusCompleted)}, list(t, h))
}

func TestInvoke_BadStatusTagIsFormatError(t *testing.T) {
	h := newHost(t)
	invoke(t, h, MethodNew, "")
	invoke(t, h, MethodCreateRecord, `{"text":"X"}`)

	_, err := h.Invoke(context.Background(), MethodSetStatus, []byte(`{"id":0,"status":"Done"}`))
	assert.ErrorIs(t, err, codec.ErrInvalidArgument)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestInvoke_PersistFailureLeavesStateUntouched(t *testing.T) {
	p := &failingPersister{Memory: persistence.NewMemory(0)}
	h, err := Open(p)
	require.NoError(t, err)

	invoke(t, h, MethodNew, "")
	invoke(t, h, MethodCreateRecord, `{"text":"a"}`)

	p.fail = true
	_, err = h.Invoke(context.Background(), MethodCreateRecord, []byte(`{"text":"b"}`))
	require.Error(t, err)
	_, err = h.Invoke(context.Background(), MethodSetText, []byte(`{"id":0,"text":"z"}`))
	require.Error(t, err)

	p.fail = false
	assert.Equal(t, []types.RecordWithID{rec(0, "a", types.StatusPending)}, list(t, h))
	assert.Equal(t, "1", string(invoke(t, h, MethodCreateRecord, `{"text":"b"}`)))
}

func TestOpen_ReplaysCommittedState(t *testing.T) {
	for name, snapCount := range map[string]uint64{"no snapshots": 0, "snapshot every 2": 2} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()

			w, err := persistence.OpenWAL(dir, true, snapCount)
			require.NoError(t, err)
			h, err := Open(w)
			require.NoError(t, err)

			invoke(t, h, MethodNew, "")
			invoke(t, h, MethodCreateRecord, `{"text":"a"}`)
			invoke(t, h, MethodCreateRecord, `{"text":"b"}`)
			invoke(t, h, MethodCreateRecord, `{"text":"c"}`)
			invoke(t, h, MethodSetStatus, `{"id":0,"status":"Completed"}`)
			invoke(t, h, MethodDeleteRecord, `{"id":2}`)
			invoke(t, h, MethodSetText, `{"id":1,"text":"B"}`)
			_, err = h.Invoke(context.Background(), MethodSetText, []byte(`{"id":2,"text":"gone"}`))
			require.ErrorIs(t, err, store.ErrNotFound)
			require.NoError(t, h.Close())

			w, err = persistence.OpenWAL(dir, true, snapCount)
			require.NoError(t, err)
			h, err = Open(w)
			require.NoError(t, err)
			defer h.Close()

			assert.True(t, h.Initialized())
			assert.ElementsMatch(t, []types.RecordWithID{
				rec(0, "a", types.StatusCompleted),
				rec(1, "B", types.StatusPending),
			}, list(t, h))

			assert.Equal(t, "3", string(invoke(t, h, MethodCreateRecord, `{"text":"d"}`)))

			_, err = h.Invoke(context.Background(), MethodNew, nil)
			assert.ErrorIs(t, err, ErrAlreadyInitialized)
		})
	}
}
