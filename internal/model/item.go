package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Item is a single shopping-list entry.
//
// ID and CreatedAt are assigned by the store on insert and never change.
type Item struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Quantity  Quantity  `json:"quantity"`
	Place     *string   `json:"place"`
	Purchased bool      `json:"purchased"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItem is the row written by an insert. Purchased is always false.
type NewItem struct {
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
	Place    *string  `json:"place"`
}

// ItemPatch lists the fields an update writes. Nil pointers and unset
// Nullable fields are left untouched; a Nullable set to null clears the
// column.
type ItemPatch struct {
	Name      *string
	Quantity  Nullable[Quantity]
	Place     Nullable[string]
	Purchased *bool
}

// IsEmpty reports whether the patch writes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && !p.Quantity.Set && !p.Place.Set && p.Purchased == nil
}

// Quantity is an amount given either as a JSON number (12) or a JSON
// string ("2 bags"). The original JSON token is kept verbatim so the value
// reads back exactly as it was written. The zero value is null.
type Quantity struct {
	raw json.RawMessage
}

var errInvalidQuantity = errors.New("quantity must be a number or a string")

// NumberQuantity builds a numeric quantity.
func NumberQuantity(n float64) Quantity {
	b, _ := json.Marshal(n)
	return Quantity{raw: b}
}

// TextQuantity builds a textual quantity.
func TextQuantity(s string) Quantity {
	b, _ := json.Marshal(s)
	return Quantity{raw: b}
}

// QuantityFromJSON wraps a raw JSON token read back from storage.
// Empty input and JSON null both give the null quantity.
func QuantityFromJSON(raw []byte) (Quantity, error) {
	var q Quantity
	if err := q.UnmarshalJSON(raw); err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// IsNull reports whether no quantity was given.
func (q Quantity) IsNull() bool {
	return len(q.raw) == 0
}

// Raw returns the JSON token, or nil for the null quantity.
func (q Quantity) Raw() json.RawMessage {
	return q.raw
}

// String renders the quantity for logs and comparisons: numbers as
// written, strings unquoted, null as "".
func (q Quantity) String() string {
	if q.IsNull() {
		return ""
	}
	var s string
	if q.raw[0] == '"' && json.Unmarshal(q.raw, &s) == nil {
		return s
	}
	return string(q.raw)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsNull() {
		return []byte("null"), nil
	}
	return q.raw, nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		q.raw = nil
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case float64, string:
	default:
		return errInvalidQuantity
	}

	q.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Sort selects the order of a listing.
type Sort string

const (
	// SortCreatedDesc lists newest items first. It is the default.
	SortCreatedDesc Sort = ""

	// SortPlace lists items by place, ascending.
	SortPlace Sort = "place"
)

// ListQuery is the filter and order of a listing. Empty fields do not filter.
type ListQuery struct {
	// Search matches a case-insensitive substring of the item name.
	Search string

	// Place matches the item place exactly.
	Place string

	Sort Sort
}

// likeEscaper escapes the LIKE metacharacters so a search term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes %, _ and \ in s for use inside a LIKE/ILIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
