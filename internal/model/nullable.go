package model

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch value that tells an absent JSON field apart from an
// explicit null. Set is true once the field appeared in the document. A
// null sets Null and leaves Value at its zero value.
type Nullable[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// SetTo returns a Nullable holding v.
func SetTo[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Set: true}
}

// SetNull returns a Nullable that clears the field.
func SetNull[T any]() Nullable[T] {
	return Nullable[T]{Set: true, Null: true}
}

// Ptr returns nil for null, otherwise a pointer to a copy of Value.
func (n Nullable[T]) Ptr() *T {
	if n.Null {
		return nil
	}
	v := n.Value
	return &v
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Null {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	var zero T
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = zero
		n.Null = true
		return nil
	}

	n.Null = false
	return json.Unmarshal(data, &n.Value)
}
