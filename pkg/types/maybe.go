package types

import (
	"encoding/json"
	"fmt"
)

// Unknown is how an absent Maybe renders.
const Unknown = "unknown"

// Maybe holds a value that may be absent. The zero value is absent.
//
// It replaces in-band sentinels such as "unknown" so callers can tell a
// missing reading apart from a real zero or empty value.
type Maybe[T any] struct {
	v  T
	ok bool
}

// Some returns a present Maybe holding v.
func Some[T any](v T) Maybe[T] { return Maybe[T]{v: v, ok: true} }

// None returns an absent Maybe.
func None[T any]() Maybe[T] { return Maybe[T]{} }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.v, m.ok }

// Valid reports whether the value is present.
func (m Maybe[T]) Valid() bool { return m.ok }

// Or returns the value, or def when absent.
func (m Maybe[T]) Or(def T) T {
	if !m.ok {
		return def
	}
	return m.v
}

// String formats the value with %v, or Unknown when absent.
func (m Maybe[T]) String() string {
	if !m.ok {
		return Unknown
	}
	return fmt.Sprint(m.v)
}

// MarshalJSON encodes an absent value as null.
func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("null"), nil
	}
	return json.Marshal(m.v)
}

// UnmarshalJSON treats null as absent.
func (m *Maybe[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Maybe[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}
