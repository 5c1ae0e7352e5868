// Package store holds the record collection and the operations over it.
// A Store is not safe for concurrent use; callers serialize access.
package store

import (
	"fmt"

	"recordstore/internal/codec"
	"recordstore/internal/types"
)

type Store struct {
	records map[types.RecordID]types.Record
	nextID  types.RecordID
}

func New() *Store {
	return &Store{
		records: make(map[types.RecordID]types.Record),
	}
}

// Create stores text as a pending record under the next free id.
func (s *Store) Create(text string) types.RecordID {
	id := s.nextID
	s.records[id] = types.Record{
		Text:   text,
		Status: types.StatusPending,
	}
	s.nextID++
	return id
}

// List returns every record with its id. Order is unspecified.
func (s *Store) List() []types.RecordWithID {
	out := make([]types.RecordWithID, 0, len(s.records))
	for id, rec := range s.records {
		out = append(out, types.RecordWithID{ID: id, Record: rec})
	}
	return out
}

func (s *Store) Get(id types.RecordID) (types.Record, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

// UpdateStatus reports whether id was found. An unknown id is not an error.
func (s *Store) UpdateStatus(id types.RecordID, status types.Status) bool {
	rec, ok := s.records[id]
	if !ok {
		return false
	}
	rec.Status = status
	s.records[id] = rec
	return true
}

func (s *Store) UpdateText(id types.RecordID, text string) error {
	rec, ok := s.records[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	rec.Text = text
	s.records[id] = rec
	return nil
}

// Delete reports whether a record was removed.
func (s *Store) Delete(id types.RecordID) bool {
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) NextID() types.RecordID {
	return s.nextID
}

func (s *Store) Clone() *Store {
	c := &Store{
		records: make(map[types.RecordID]types.Record, len(s.records)),
		nextID:  s.nextID,
	}
	for id, rec := range s.records {
		c.records[id] = rec
	}
	return c
}

func (s *Store) Snapshot() ([]byte, error) {
	return codec.EncodeState(s.nextID, s.List())
}

// Restore decodes a snapshot into a fresh Store.
func Restore(data []byte) (*Store, error) {
	nextID, records, err := codec.DecodeState(data)
	if err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	s := &Store{
		records: make(map[types.RecordID]types.Record, len(records)),
		nextID:  nextID,
	}
	for _, r := range records {
		if r.ID >= nextID {
			return nil, fmt.Errorf("%w: id %d not below next id %d", ErrCorruptState, r.ID, nextID)
		}
		if _, dup := s.records[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrCorruptState, r.ID)
		}
		s.records[r.ID] = r.Record
	}
	return s, nil
}
