// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Kid describes one child on a parent profile.
type Kid struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// JSONStringList is a []string persisted as a JSON text column.
// A null, empty or malformed stored value scans to an empty list.
type JSONStringList []string

// Value serializes the list to JSON text for storage.
func (l JSONStringList) Value() (driver.Value, error) {
	if l == nil {
		l = JSONStringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes JSON text from storage, defaulting to an empty list.
func (l *JSONStringList) Scan(value interface{}) error {
	*l = JSONStringList{}
	raw, ok := bytesOf(value)
	if !ok || len(raw) == 0 {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Malformed stored JSON degrades to an empty list rather than
		// failing the whole row read.
		return nil
	}
	if parsed != nil {
		*l = parsed
	}
	return nil
}

// MarshalJSON ensures a nil list serializes as [] on the wire.
func (l JSONStringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// JSONKidList is a []Kid persisted as a JSON text column with the same
// null/malformed-to-empty semantics as JSONStringList.
type JSONKidList []Kid

// Value serializes the list to JSON text for storage.
func (l JSONKidList) Value() (driver.Value, error) {
	if l == nil {
		l = JSONKidList{}
	}
	b, err := json.Marshal([]Kid(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes JSON text from storage, defaulting to an empty list.
func (l *JSONKidList) Scan(value interface{}) error {
	*l = JSONKidList{}
	raw, ok := bytesOf(value)
	if !ok || len(raw) == 0 {
		return nil
	}
	var parsed []Kid
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	if parsed != nil {
		*l = parsed
	}
	return nil
}

// MarshalJSON ensures a nil list serializes as [] on the wire.
func (l JSONKidList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Kid(l))
}

func bytesOf(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return []byte(fmt.Sprint(v)), true
	}
}
