// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"bytes"
	"encoding/json"
)

// Opt is a patch field that distinguishes an absent key from an explicit
// null. Set is true when the key was present; Null is true when its value
// was null.
type Opt[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a set, non-null Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Set: true, Value: v}
}

// UnmarshalJSON is only invoked for keys present in the document.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON writes null for unset or null values.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil when the value is null, otherwise a pointer to a copy.
func (o Opt[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Validatable returns the value validator should check, or nil when there
// is nothing to check.
func (o Opt[T]) Validatable() any {
	if !o.Set || o.Null {
		return nil
	}
	return o.Value
}
