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

package handler

import (
	"github.com/restforge/core/value"
)

// Cursor is the pagination summary in the response envelope: `{start,
// end, total, count, field, next?, prev?}`. Handle populates it for a GET
// against every resource kind except Object; Object fetches carry no
// cursor.
type Cursor struct {
	Start int
	End   int
	Total int64
	Count int
	Field string
	Next  *int
	Prev  *int
}

// toValue renders the Cursor as its envelope Dictionary form.
func (c *Cursor) toValue() value.Value {
	if c == nil {
		return value.Null()
	}
	d := value.NewDict()
	d.Set("start", value.Int(int64(c.Start)))
	d.Set("end", value.Int(int64(c.End)))
	d.Set("total", value.Int(c.Total))
	d.Set("count", value.Int(int64(c.Count)))
	if c.Field != "" {
		d.Set("field", value.String(c.Field))
	}
	if c.Next != nil {
		d.Set("next", value.Int(int64(*c.Next)))
	}
	if c.Prev != nil {
		d.Set("prev", value.Int(int64(*c.Prev)))
	}
	return value.NewDictionary(d)
}

// NewCursor computes the cursor summary from the resolved page window,
// the number of rows actually returned, and (when known) the total row
// count across the whole query. field names the ordering
// field driving pagination, if any.
func NewCursor(page int, count int, total int64, field string) *Cursor {
	c := &Cursor{
		Start: page,
		End:   page + count,
		Total: total,
		Count: count,
		Field: field,
	}
	if int64(c.End) < total {
		next := c.End
		c.Next = &next
	}
	if c.Start > 0 {
		prevStart := c.Start - count
		if prevStart < 0 {
			prevStart = 0
		}
		c.Prev = &prevStart
	}
	return c
}

// Response is the fully shaped result of one Handler Facade call: the
// decoded status, the envelope value ready for JSON encoding, and the
// Last-Modified hint for the transport layer to surface as a header.
type Response struct {
	Status       int
	Envelope     value.Value
	LastModified int64
	HasLastMod   bool
	NotModified  bool
}

// buildEnvelope assembles the `{date, delta?, cursor?, result, OK,
// errors?, debug?}` response dictionary. now is the request's
// Unix-microsecond timestamp, threaded in rather than read from the
// clock so the facade stays deterministic and testable.
func buildEnvelope(now int64, result value.Value, delta *int64, cursor *Cursor, errs []string, debug []string) value.Value {
	d := value.NewDict()
	d.Set("date", value.Int(now))
	if delta != nil {
		d.Set("delta", value.Int(*delta))
	}
	if cursor != nil {
		d.Set("cursor", cursor.toValue())
	}
	d.Set("result", result)
	d.Set("OK", value.Bool(len(errs) == 0))
	if len(errs) > 0 {
		items := make([]value.Value, len(errs))
		for i, e := range errs {
			items[i] = value.String(e)
		}
		d.Set("errors", value.NewArray(items))
	}
	if len(debug) > 0 {
		items := make([]value.Value, len(debug))
		for i, m := range debug {
			items[i] = value.String(m)
		}
		d.Set("debug", value.NewArray(items))
	}
	return value.NewDictionary(d)
}
