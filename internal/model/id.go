package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ID is the key the store assigned to an item. It is opaque: whatever JSON
// token the store produced (a number such as 12 or a string such as a UUID)
// is kept verbatim, and the same token is used to address the item later.
// The zero value means no id was given.
type ID struct {
	raw json.RawMessage
}

var errInvalidID = errors.New("id must be a number or a string")

// TextID builds a string id.
func TextID(s string) ID {
	b, _ := json.Marshal(s)
	return ID{raw: b}
}

// IDFromJSON wraps a raw JSON token read back from storage.
func IDFromJSON(raw []byte) (ID, error) {
	var id ID
	if err := id.UnmarshalJSON(raw); err != nil {
		return ID{}, err
	}
	return id, nil
}

// IsZero reports whether no id was given.
func (id ID) IsZero() bool {
	return len(id.raw) == 0
}

// String renders the id the way filters and SQL parameters need it:
// numbers as written, strings unquoted.
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	var s string
	if id.raw[0] == '"' && json.Unmarshal(id.raw, &s) == nil {
		return s
	}
	return string(id.raw)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return id.raw, nil
}

// UnmarshalJSON accepts a number or a string. null and "" leave the id
// zero.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		id.raw = nil
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
	case string:
		if v == "" {
			id.raw = nil
			return nil
		}
	default:
		return errInvalidID
	}

	id.raw = append(json.RawMessage(nil), data...)
	return nil
}
