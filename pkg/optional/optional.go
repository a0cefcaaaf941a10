// Package optional distinguishes a field that was never supplied from one
// that was supplied, possibly as null.
package optional

import "encoding/json"

// Field holds a value together with whether it was provided at all.
// Use Field[*T] for nullable columns: a JSON null decodes to a set field
// with a nil value, while a missing key leaves the field unset.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a provided field.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// None returns an unset field.
func None[T any]() Field[T] {
	return Field[T]{}
}

func (f Field[T]) IsSet() bool {
	return f.set
}

func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// IsNull reports whether the field was supplied as a JSON null. For a
// non-pointer T the value is then the zero value, not something the caller
// sent.
func (f Field[T]) IsNull() bool {
	return f.null
}

// Value returns the held value, or the zero value when unset.
func (f Field[T]) Value() T {
	return f.value
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	f.set = true
	f.null = string(data) == "null"
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
