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

package value

import (
	"encoding/base64"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode parses JSON bytes (an adapter response body, or an inbound write
// payload) into a Value tree, preserving object key order.
func Decode(data []byte) (Value, error) {
	iter := jsoniter.ParseBytes(json, data)
	v, err := decodeAny(iter)
	if err != nil {
		return Value{}, err
	}
	// A top-level number runs to the end of the input, which leaves io.EOF
	// in iter.Error; that is the normal end of the document, not a failure.
	if iter.Error != nil && iter.Error != io.EOF {
		return Value{}, iter.Error
	}
	return v, nil
}

func decodeAny(iter *jsoniter.Iterator) (Value, error) {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null(), iter.Error
	case jsoniter.BoolValue:
		return Bool(iter.ReadBool()), iter.Error
	case jsoniter.NumberValue:
		num := iter.ReadNumber()
		if i, err := num.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := num.Float64()
		if err != nil {
			return Value{}, err
		}
		return Double(f), nil
	case jsoniter.StringValue:
		return String(iter.ReadString()), iter.Error
	case jsoniter.ArrayValue:
		var items []Value
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			v, err := decodeAny(it)
			if err != nil {
				it.ReportError("decodeAny", err.Error())
				return false
			}
			items = append(items, v)
			return true
		})
		return NewArray(items), iter.Error
	case jsoniter.ObjectValue:
		dict := NewDict()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			v, err := decodeAny(it)
			if err != nil {
				it.ReportError("decodeAny", err.Error())
				return false
			}
			dict.Set(field, v)
			return true
		})
		return NewDictionary(dict), iter.Error
	default:
		return Value{}, fmt.Errorf("value: unsupported JSON token")
	}
}

// Encode serializes v to compact JSON. handler.HTTPHandler uses it to write
// the response envelope and the error envelope as the HTTP body.
func Encode(v Value) ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)
	encodeAny(stream, v)
	if stream.Error != nil {
		return nil, stream.Error
	}
	out := append([]byte(nil), stream.Buffer()...)
	return out, nil
}

func encodeAny(stream *jsoniter.Stream, v Value) {
	switch v.Kind() {
	case KindNull:
		stream.WriteNil()
	case KindBool:
		b, _ := v.Bool()
		stream.WriteBool(b)
	case KindInt:
		i, _ := v.Int()
		stream.WriteInt64(i)
	case KindDouble:
		d, _ := v.Double()
		stream.WriteFloat64(d)
	case KindString:
		s, _ := v.String()
		stream.WriteString(s)
	case KindBytes:
		b, _ := v.Bytes()
		stream.WriteString(base64.StdEncoding.EncodeToString(b))
	case KindArray:
		items, _ := v.Array()
		stream.WriteArrayStart()
		for i, item := range items {
			if i > 0 {
				stream.WriteMore()
			}
			encodeAny(stream, item)
		}
		stream.WriteArrayEnd()
	case KindDictionary:
		dict, _ := v.Dictionary()
		stream.WriteObjectStart()
		first := true
		dict.Range(func(key string, val Value) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(key)
			encodeAny(stream, val)
			return true
		})
		stream.WriteObjectEnd()
	}
}
