// Package optional provides a three-state wrapper for JSON payload fields.
//
// A partial-update payload needs to distinguish a field that was omitted
// entirely from one that was explicitly sent as null, and both from a field
// carrying a value. encoding/json alone collapses the first two into the
// zero value, so update DTOs wrap every field in a Value[T]:
//
//	absent        -> IsSet() == false
//	explicit null -> IsSet() == true, IsNull() == true
//	value         -> IsSet() == true, IsNull() == false
package optional

import "encoding/json"

// Value is a JSON field that tracks whether it appeared in the payload and
// whether it was an explicit null. The zero Value is "absent".
type Value[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// Null returns a Value that was explicitly set to null.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (v Value[T]) IsSet() bool { return v.set }

// IsNull reports whether the field was an explicit JSON null.
func (v Value[T]) IsNull() bool { return v.set && v.null }

// Get returns the held value and true when the field carried a non-null value.
func (v Value[T]) Get() (T, bool) {
	if !v.set || v.null {
		var zero T
		return zero, false
	}
	return v.value, true
}

// MustGet returns the held value, or the zero value when absent or null.
func (v Value[T]) MustGet() T { return v.value }

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present in the payload, which is what flips the set flag.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if string(data) == "null" {
		v.null = true
		var zero T
		v.value = zero
		return nil
	}
	v.null = false
	return json.Unmarshal(data, &v.value)
}

// MarshalJSON implements json.Marshaler. Absent and null values both encode
// as null; callers that need omission use pointer indirection instead.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
