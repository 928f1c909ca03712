/**
 * Copyright (c) 2026, The Restforge Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package value implements the dynamically typed value tree that flows
// through every layer of the core: adapter results, request payloads, and
// hydrated response graphs all share this representation.
package value

import (
	"fmt"
)

// Kind tags the dynamic type carried by a Value.
type Kind int

// The kinds a Value may hold.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindBytes
	KindArray
	KindDictionary
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindArray:
		return "Array"
	case KindDictionary:
		return "Dictionary"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged union over the tree shapes the core exchanges with the
// Storage Adapter and with request/response bodies. The zero Value is Null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	d     float64
	s     string
	bytes []byte
	arr   []Value
	dict  *Dictionary
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit integer, used for oids, counters and limits alike.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double wraps a floating point number.
func Double(d float64) Value { return Value{kind: KindDouble, d: d} }

// String wraps a UTF-8 string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes wraps an opaque byte slice (e.g. a Uuid-transformed field's raw
// bytes before string formatting).
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// NewArray wraps a slice of Values.
func NewArray(items []Value) Value { return Value{kind: KindArray, arr: items} }

// NewDictionary wraps an insertion-ordered dictionary.
func NewDictionary(d *Dictionary) Value {
	if d == nil {
		d = NewDict()
	}
	return Value{kind: KindDictionary, dict: d}
}

// Kind reports the dynamic type carried by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; ok is false if v is not a Bool.
func (v Value) Bool() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Int returns the integer payload; ok is false if v is not an Int.
func (v Value) Int() (i int64, ok bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Double returns the float payload; ok is false if v is not a Double.
func (v Value) Double() (d float64, ok bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.d, true
}

// String returns the string payload; ok is false if v is not a String.
func (v Value) String() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Bytes returns the byte payload; ok is false if v is not Bytes.
func (v Value) Bytes() (b []byte, ok bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.bytes, true
}

// Array returns the element slice; ok is false if v is not an Array.
func (v Value) Array() (items []Value, ok bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Dictionary returns the backing dictionary; ok is false if v is not a
// Dictionary.
func (v Value) Dictionary() (d *Dictionary, ok bool) {
	if v.kind != KindDictionary {
		return nil, false
	}
	return v.dict, true
}

// AsInt64 coerces numeric-ish kinds (Int, Double, Bool) to an int64; the
// FieldObject resource uses it to read a stored reference oid.
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindDouble:
		return int64(v.d), true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Equal reports deep equality between two Values; Dictionary.Equal uses it
// to compare entry values.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindDouble:
		return a.d == b.d
	case KindString:
		return a.s == b.s
	case KindBytes:
		if len(a.bytes) != len(b.bytes) {
			return false
		}
		for i := range a.bytes {
			if a.bytes[i] != b.bytes[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindDictionary:
		return a.dict.Equal(b.dict)
	default:
		return false
	}
}
