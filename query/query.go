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

// Package query implements the per-segment Query and the ordered Query
// List: the typed selection tree the Path Resolver builds and the
// Resource Family executes against the Storage Adapter.
package query

import "github.com/restforge/core/scheme"

// Comparator enumerates the select predicate operators.
type Comparator uint8

// The supported comparators.
const (
	Eq Comparator = iota
	Neq
	Lt
	Le
	Gt
	Ge
	Bw  // between, exclusive
	Be  // between, inclusive
	Nbw // not between, exclusive
	Nbe // not between, inclusive
)

// IsBetween reports whether c consumes two values instead of one.
func (c Comparator) IsBetween() bool {
	switch c {
	case Bw, Be, Nbw, Nbe:
		return true
	default:
		return false
	}
}

// Direction is an ordering direction.
type Direction uint8

// The two ordering directions.
const (
	Asc Direction = iota
	Desc
)

// Predicate is one `(field, comparator, value1, value2)` selection term.
type Predicate struct {
	Field      string
	Comparator Comparator
	Value1     interface{}
	Value2     interface{} // only set when Comparator.IsBetween()
}

// Order is one `(field, direction)` ordering term.
type Order struct {
	Field     string
	Direction Direction
}

// FullTextQuery holds a `search` sub-query against a FullTextView field.
type FullTextQuery struct {
	Field      string
	Text       string
	LanguageHint string
}

// Anchor is the `first`/`last` selection form: take Count rows ordered by
// Field, from the given end.
type Anchor struct {
	Field string
	Count int
	Last  bool
}

// Query is a single segment's selection record.
type Query struct {
	// Scheme this segment targets; set by the Path Resolver when the
	// segment is built.
	Scheme *scheme.Scheme

	// Ref is the field on the previous segment's scheme that bound this
	// segment to it; nil for item #0.
	Ref *scheme.Field

	OidTarget   *int64
	AliasField  string
	AliasTarget *string

	Predicates []Predicate
	Orderings  []Order

	Limit  *int
	Offset *int

	Anchor *Anchor

	FullText *FullTextQuery

	ContinueToken string

	// SelectFields, when non-nil, restricts the columns the Adapter is
	// asked to return; an empty/nil slice means "all fields."
	SelectFields []string
}

// IsSingleObject reports whether this segment's selection is known, by
// construction, to match at most one row — materialized per segment
// rather than as a resolver-wide flag so a QueryList can ask it of its
// tail item.
func (q *Query) IsSingleObject() bool {
	if q.OidTarget != nil || q.AliasTarget != nil {
		return true
	}
	if q.Limit != nil && *q.Limit == 1 {
		return true
	}
	if q.Anchor != nil && q.Anchor.Count == 1 {
		return true
	}
	for _, p := range q.Predicates {
		if p.Comparator == Eq && isUniqueOrAlias(q, p.Field) {
			return true
		}
	}
	return false
}

func isUniqueOrAlias(q *Query, fieldName string) bool {
	if q.Scheme == nil {
		return false
	}
	f, ok := q.Scheme.Field(fieldName)
	if !ok {
		return false
	}
	return f.Flags().Has(scheme.Unique) || f.Transform() == scheme.AliasTransform
}
