package types

import (
	"errors"
	"fmt"
)

type RecordID = uint64

type Status uint8

const (
	StatusPending Status = iota
	StatusCompleted
)

var ErrUnknownStatus = errors.New("unknown status")

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// ParseStatus accepts exactly the two boundary tags, case-sensitive.
func ParseStatus(tag string) (Status, error) {
	switch tag {
	case "Pending":
		return StatusPending, nil
	case "Completed":
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, tag)
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Record struct {
	Text   string `json:"text"`
	Status Status `json:"status"`
}

// RecordWithID is the listing element; the id sits next to the record fields, not above them.
type RecordWithID struct {
	ID RecordID `json:"id"`
	Record
}
