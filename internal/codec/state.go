package codec

import (
	"fmt"

	"recordstore/internal/types"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the persisted state. They are part of the on-disk format.
const (
	stateNextID  protowire.Number = 1
	stateRecord  protowire.Number = 2
	recordID     protowire.Number = 1
	recordText   protowire.Number = 2
	recordStatus protowire.Number = 3
)

// EncodeState writes the next id and all records in protobuf wire format.
func EncodeState(nextID types.RecordID, records []types.RecordWithID) ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, stateNextID, protowire.VarintType)
	b = protowire.AppendVarint(b, nextID)

	for _, r := range records {
		if !r.Status.Valid() {
			return nil, fmt.Errorf("%w: record %d has status %d", ErrMalformedState, r.ID, uint8(r.Status))
		}
		b = protowire.AppendTag(b, stateRecord, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeRecord(r))
	}
	return b, nil
}

func encodeRecord(r types.RecordWithID) []byte {
	var b []byte
	b = protowire.AppendTag(b, recordID, protowire.VarintType)
	b = protowire.AppendVarint(b, r.ID)
	b = protowire.AppendTag(b, recordText, protowire.BytesType)
	b = protowire.AppendString(b, r.Text)
	b = protowire.AppendTag(b, recordStatus, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Status))
	return b
}

func DecodeState(b []byte) (types.RecordID, []types.RecordWithID, error) {
	var (
		nextID  types.RecordID
		records []types.RecordWithID
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return 0, nil, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == stateNextID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, nil, fmt.Errorf("%w: next id: %v", ErrMalformedState, protowire.ParseError(n))
			}
			nextID = v
			b = b[n:]

		case num == stateRecord && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, nil, fmt.Errorf("%w: record: %v", ErrMalformedState, protowire.ParseError(n))
			}
			r, err := decodeRecord(raw)
			if err != nil {
				return 0, nil, err
			}
			records = append(records, r)
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return 0, nil, fmt.Errorf("%w: field %d: %v", ErrMalformedState, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return nextID, records, nil
}

func decodeRecord(b []byte) (types.RecordWithID, error) {
	var r types.RecordWithID

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return r, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == recordID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return r, fmt.Errorf("%w: record id: %v", ErrMalformedState, protowire.ParseError(n))
			}
			r.ID = v
			b = b[n:]

		case num == recordText && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return r, fmt.Errorf("%w: record text: %v", ErrMalformedState, protowire.ParseError(n))
			}
			r.Text = v
			b = b[n:]

		case num == recordStatus && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return r, fmt.Errorf("%w: record status: %v", ErrMalformedState, protowire.ParseError(n))
			}
			status := types.Status(v)
			if v > 0xff || !status.Valid() {
				return r, fmt.Errorf("%w: record %d has status %d", ErrMalformedState, r.ID, v)
			}
			r.Status = status
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return r, fmt.Errorf("%w: record field %d: %v", ErrMalformedState, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return r, nil
}
