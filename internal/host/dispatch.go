package host

import (
	"fmt"

	"recordstore/internal/codec"
	"recordstore/internal/store"
)

const (
	MethodNew          = "new"
	MethodCreateRecord = "create_record"
	MethodListRecords  = "list_records"
	MethodSetStatus    = "set_status"
	MethodSetText      = "set_text"
	MethodDeleteRecord = "delete_record"
)

var Methods = []string{
	MethodNew,
	MethodCreateRecord,
	MethodListRecords,
	MethodSetStatus,
	MethodSetText,
	MethodDeleteRecord,
}

func knownMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

type outcome struct {
	next    *store.Store
	result  []byte
	mutated bool
}

// apply runs method against current without touching it. Mutating methods
// work on a clone which the caller commits or drops.
func apply(current *store.Store, method string, args []byte) (outcome, error) {
	if !knownMethod(method) {
		return outcome{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	if method == MethodNew {
		if current != nil {
			return outcome{}, ErrAlreadyInitialized
		}
		return outcome{next: store.New(), mutated: true}, nil
	}

	if current == nil {
		return outcome{}, ErrNotInitialized
	}

	switch method {
	case MethodListRecords:
		result, err := codec.EncodeList(current.List())
		if err != nil {
			return outcome{}, fmt.Errorf("encode records: %w", err)
		}
		return outcome{next: current, result: result}, nil

	case MethodCreateRecord:
		a, err := codec.DecodeCreateArgs(args)
		if err != nil {
			return outcome{}, err
		}
		work := current.Clone()
		id := work.Create(a.Text)
		return outcome{next: work, result: codec.EncodeID(id), mutated: true}, nil

	case MethodSetStatus:
		a, err := codec.DecodeSetStatusArgs(args)
		if err != nil {
			return outcome{}, err
		}
		work := current.Clone()
		found := work.UpdateStatus(a.ID, a.Status)
		return outcome{next: work, mutated: found}, nil

	case MethodSetText:
		a, err := codec.DecodeSetTextArgs(args)
		if err != nil {
			return outcome{}, err
		}
		work := current.Clone()
		if err := work.UpdateText(a.ID, a.Text); err != nil {
			return outcome{}, err
		}
		return outcome{next: work, mutated: true}, nil

	case MethodDeleteRecord:
		a, err := codec.DecodeDeleteArgs(args)
		if err != nil {
			return outcome{}, err
		}
		work := current.Clone()
		found := work.Delete(a.ID)
		return outcome{next: work, mutated: found}, nil
	}

	return outcome{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
}
