package store

import (
	"testing"

	"recordstore/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id types.RecordID, text string, status types.Status) types.RecordWithID {
	return types.RecordWithID{ID: id, Record: types.Record{Text: text, Status: status}}
}

func TestNew_IsEmpty(t *testing.T) {
	s := New()
	assert.Empty(t, s.List())
	assert.Zero(t, s.NextID())
}

func TestCreate_IdsAreMonotonicAcrossDeletes(t *testing.T) {
	s := New()
	var last types.RecordID
	for i := 0; i < 20; i++ {
		id := s.Create("x")
		if i > 0 {
			assert.Greater(t, id, last)
		}
		last = id
		if i%3 == 0 {
			s.Delete(id)
		}
	}
	assert.Equal(t, types.RecordID(20), s.NextID())
}

func TestCreate_RoundTrip(t *testing.T) {
	s := New()
	id := s.Create("X")

	assert.Equal(t, []types.RecordWithID{rec(id, "X", types.StatusPending)}, s.List())
}

func TestCreate_AcceptsEmptyText(t *testing.T) {
	s := New()
	id := s.Create("")

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "", got.Text)
}

func TestUpdateStatus_Visible(t *testing.T) {
	s := New()
	id := s.Create("X")

	assert.True(t, s.UpdateStatus(id, types.StatusCompleted))
	assert.Equal(t, []types.RecordWithID{rec(id, "X", types.StatusCompleted)}, s.List())
}

func TestUnknownID_Tolerated(t *testing.T) {
	s := New()

	assert.False(t, s.UpdateStatus(999, types.StatusCompleted))
	assert.False(t, s.Delete(999))
	assert.Empty(t, s.List())
	assert.Zero(t, s.NextID())
}

func TestUpdateText(t *testing.T) {
	s := New()
	id := s.Create("X")
	s.UpdateStatus(id, types.StatusCompleted)

	require.NoError(t, s.UpdateText(id, "Y"))
	assert.Equal(t, []types.RecordWithID{rec(id, "Y", types.StatusCompleted)}, s.List())
}

func TestUpdateText_UnknownIDFails(t *testing.T) {
	s := New()
	s.Create("X")

	err := s.UpdateText(999, "Y")
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := s.Get(999)
	assert.False(t, ok)
	assert.Equal(t, []types.RecordWithID{rec(0, "X", types.StatusPending)}, s.List())
}

func TestDelete_RemovesAndIsIdempotent(t *testing.T) {
	s := New()
	id := s.Create("X")

	assert.True(t, s.Delete(id))
	assert.Empty(t, s.List())
	assert.False(t, s.Delete(id))
}

func TestScenario(t *testing.T) {
	s := New()
	assert.Equal(t, types.RecordID(0), s.Create("a"))
	assert.Equal(t, types.RecordID(1), s.Create("b"))
	s.UpdateStatus(0, types.StatusCompleted)
	s.Delete(1)

	assert.Equal(t, []types.RecordWithID{rec(0, "a", types.StatusCompleted)}, s.List())
}

func TestList_ComparedAsSet(t *testing.T) {
	s := New()
	s.Create("a")
	s.Create("b")
	s.Create("c")

	assert.ElementsMatch(t, []types.RecordWithID{
		rec(0, "a", types.StatusPending),
		rec(1, "b", types.StatusPending),
		rec(2, "c", types.StatusPending),
	}, s.List())
}

func TestClone_IsIndependent(t *testing.T) {
	s := New()
	s.Create("a")

	c := s.Clone()
	c.Create("b")
	require.NoError(t, c.UpdateText(0, "changed"))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, types.RecordID(1), s.NextID())
	got, _ := s.Get(0)
	assert.Equal(t, "a", got.Text)
}

func TestSnapshotRestore(t *testing.T) {
	s := New()
	s.Create("a")
	s.Create("b")
	s.Create("c")
	s.Delete(2)
	s.UpdateStatus(1, types.StatusCompleted)

	data, err := s.Snapshot()
	require.NoError(t, err)

	restored, err := Restore(data)
	require.NoError(t, err)
	assert.Equal(t, types.RecordID(3), restored.NextID())
	assert.ElementsMatch(t, s.List(), restored.List())

	assert.Equal(t, types.RecordID(3), restored.Create("d"))
}

func TestRestore_RejectsIDAtOrAboveNext(t *testing.T) {
	s := New()
	s.Create("a")
	s.nextID = 0

	data, err := s.Snapshot()
	require.NoError(t, err)

	_, err = Restore(data)
	assert.ErrorIs(t, err, ErrCorruptState)
}
