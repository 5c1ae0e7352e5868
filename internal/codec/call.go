package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"recordstore/internal/types"

	"github.com/tidwall/gjson"
)

type CreateArgs struct {
	Text string `json:"text"`
}

type SetStatusArgs struct {
	ID     types.RecordID `json:"id"`
	Status types.Status   `json:"status"`
}

type SetTextArgs struct {
	ID   types.RecordID `json:"id"`
	Text string         `json:"text"`
}

type DeleteArgs struct {
	ID types.RecordID `json:"id"`
}

func DecodeCreateArgs(args []byte) (CreateArgs, error) {
	obj, err := parseArgs(args)
	if err != nil {
		return CreateArgs{}, err
	}
	text, err := stringField(obj, "text")
	if err != nil {
		return CreateArgs{}, err
	}
	return CreateArgs{Text: text}, nil
}

func DecodeSetStatusArgs(args []byte) (SetStatusArgs, error) {
	obj, err := parseArgs(args)
	if err != nil {
		return SetStatusArgs{}, err
	}
	id, err := idField(obj)
	if err != nil {
		return SetStatusArgs{}, err
	}
	tag, err := stringField(obj, "status")
	if err != nil {
		return SetStatusArgs{}, err
	}
	status, err := types.ParseStatus(tag)
	if err != nil {
		return SetStatusArgs{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return SetStatusArgs{ID: id, Status: status}, nil
}

func DecodeSetTextArgs(args []byte) (SetTextArgs, error) {
	obj, err := parseArgs(args)
	if err != nil {
		return SetTextArgs{}, err
	}
	id, err := idField(obj)
	if err != nil {
		return SetTextArgs{}, err
	}
	text, err := stringField(obj, "text")
	if err != nil {
		return SetTextArgs{}, err
	}
	return SetTextArgs{ID: id, Text: text}, nil
}

func DecodeDeleteArgs(args []byte) (DeleteArgs, error) {
	obj, err := parseArgs(args)
	if err != nil {
		return DeleteArgs{}, err
	}
	id, err := idField(obj)
	if err != nil {
		return DeleteArgs{}, err
	}
	return DeleteArgs{ID: id}, nil
}

// EncodeArgs renders call arguments the way the Decode* functions expect them.
func EncodeArgs(v any) ([]byte, error) {
	return json.Marshal(v)
}

func EncodeID(id types.RecordID) []byte {
	return strconv.AppendUint(nil, id, 10)
}

func DecodeID(result []byte) (types.RecordID, error) {
	id, err := strconv.ParseUint(string(bytes.TrimSpace(result)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id result %q", ErrInvalidArgument, result)
	}
	return id, nil
}

func EncodeList(records []types.RecordWithID) ([]byte, error) {
	if records == nil {
		records = []types.RecordWithID{}
	}
	return json.Marshal(records)
}

func DecodeList(result []byte) ([]types.RecordWithID, error) {
	var records []types.RecordWithID
	if err := json.Unmarshal(result, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return records, nil
}

// parseArgs treats empty input as an empty object.
func parseArgs(args []byte) (gjson.Result, error) {
	args = bytes.TrimSpace(args)
	if len(args) == 0 {
		args = []byte("{}")
	}
	if !gjson.ValidBytes(args) {
		return gjson.Result{}, fmt.Errorf("%w: arguments are not valid JSON", ErrInvalidArgument)
	}
	obj := gjson.ParseBytes(args)
	if !obj.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: arguments must be a JSON object", ErrInvalidArgument)
	}
	return obj, nil
}

func stringField(obj gjson.Result, name string) (string, error) {
	f := obj.Get(name)
	if !f.Exists() {
		return "", fmt.Errorf("%w: missing field %q", ErrInvalidArgument, name)
	}
	if f.Type != gjson.String {
		return "", fmt.Errorf("%w: field %q must be a string", ErrInvalidArgument, name)
	}
	return f.String(), nil
}

func idField(obj gjson.Result) (types.RecordID, error) {
	f := obj.Get("id")
	if !f.Exists() {
		return 0, fmt.Errorf("%w: missing field %q", ErrInvalidArgument, "id")
	}
	if f.Type != gjson.Number {
		return 0, fmt.Errorf("%w: field %q must be a number", ErrInvalidArgument, "id")
	}
	id, err := strconv.ParseUint(f.Raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q must be an unsigned 64-bit integer, got %s", ErrInvalidArgument, "id", f.Raw)
	}
	return id, nil
}
