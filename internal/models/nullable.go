package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NullableInt64 distinguishes between a JSON field that was absent, one that
// was explicitly null (or an empty string), and one that carried a number.
// Plain pointer fields cannot make that distinction, and order edits need it:
// an absent table_number leaves the column alone while a null clears it.
type NullableInt64 struct {
	Set   bool  // the field appeared in the payload
	Valid bool  // the field carried a usable number
	Int64 int64 // the value, when Valid
}

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (n *NullableInt64) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Valid = false

	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		n.Valid = true
		n.Int64 = v
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n.Valid = true
	n.Int64 = int64(f)
	return nil
}

// MarshalJSON renders the value or null.
func (n NullableInt64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Int64)
}

// NewNullString returns a pointer to s, or nil when s is empty.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
