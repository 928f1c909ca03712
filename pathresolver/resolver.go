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

package pathresolver

import (
	"strconv"
	"strings"

	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// SubFilter is a subset of the sub-filter value kinds the Path Resolver
// accepts to pre-seed a selection: an optional dictionary, integer, or
// string value.
type SubFilter struct {
	Dict *value.Dictionary
	Int  *int64
	Str  *string
}

// state is the Path Resolver's one latched flag plus the scheme cursor it
// is currently positioned at.
type state struct {
	cursor         *cursor
	list           *query.List
	isSingleObject bool
	maxDepth       int
}

// Resolve walks tokens (given in normal left-to-right path order) against
// root, producing a built query.List or a structured error. maxDepth is
// the configured ResourceResolverMaxDepth.
func Resolve(tokens []string, root *scheme.Scheme, sub *SubFilter, maxDepth int) (*query.List, error) {
	st := &state{
		cursor:   newCursor(tokens),
		list:     query.New(root, query.KindResourceList, maxDepth),
		maxDepth: maxDepth,
	}

	if sub != nil {
		if err := st.applySubFilter(sub); err != nil {
			return nil, err
		}
	}

	for st.cursor.more() {
		tok, _ := st.cursor.pop()
		if err := st.step(tok); err != nil {
			return nil, err
		}
	}

	if st.isSingleObject && st.list.Kind() == query.KindResourceList {
		st.list.SetKind(query.KindObject)
	}

	return st.list, nil
}

func (st *state) applySubFilter(sub *SubFilter) error {
	tail := st.list.Tail()
	switch {
	case sub.Int != nil:
		tail.OidTarget = sub.Int
		st.isSingleObject = true
	case sub.Str != nil:
		tail.AliasTarget = sub.Str
		st.isSingleObject = true
	case sub.Dict != nil:
		return st.list.ApplyPredicate(sub.Dict)
	}
	return nil
}

// step dispatches one token per the path grammar table.
func (st *state) step(tok string) error {
	tail := st.list.Tail()

	switch {
	case strings.HasPrefix(tok, "id") && isAllDigits(tok[2:]) && len(tok) > 2:
		oid, err := strconv.ParseInt(tok[2:], 10, 64)
		if err != nil {
			return errs.New("malformed oid token \""+tok+"\"", errs.Op("pathresolver.step"), errs.KindInput)
		}
		tail.OidTarget = &oid
		st.isSingleObject = true
		return nil

	case strings.HasPrefix(tok, "named-") && len(tok) > len("named-"):
		alias := tok[len("named-"):]
		tail.AliasTarget = &alias
		st.isSingleObject = true
		return nil

	case tok == "all":
		tail.Limit = nil
		return nil

	case tok == "select":
		return st.stepSelect(tail)

	case tok == "search":
		return st.stepSearch(tail)

	case tok == "order":
		return st.stepOrder(tail)

	case strings.HasPrefix(tok, "+") && len(tok) > 1:
		return st.stepShorthandOrder(tail, tok[1:], query.Asc)

	case strings.HasPrefix(tok, "-") && len(tok) > 1:
		return st.stepShorthandOrder(tail, tok[1:], query.Desc)

	case tok == "limit":
		return st.stepLimit(tail)

	case tok == "offset":
		return st.stepOffset(tail)

	case tok == "first":
		return st.stepAnchor(tail, false)

	case tok == "last":
		return st.stepAnchor(tail, true)

	default:
		return st.stepFieldName(tok)
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (st *state) requireField(name string) (*scheme.Field, error) {
	f, ok := st.list.Tail().Scheme.Field(name)
	if !ok {
		return nil, errs.New("unknown field \""+name+"\" on scheme \""+st.list.Tail().Scheme.Name()+"\"", errs.Op("pathresolver.requireField"), errs.KindInput)
	}
	return f, nil
}

func (st *state) requireIndexed(name string) (*scheme.Field, error) {
	f, err := st.requireField(name)
	if err != nil {
		return nil, err
	}
	if !f.Flags().Has(scheme.Indexed) {
		return nil, errs.New("field \""+name+"\" is not indexed", errs.Op("pathresolver.requireIndexed"), errs.KindInput)
	}
	return f, nil
}

func (st *state) stepSelect(tail *query.Query) error {
	fieldTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("select: missing field name", errs.Op("pathresolver.stepSelect"), errs.KindInput)
	}
	f, err := st.requireIndexed(fieldTok)
	if err != nil {
		return err
	}

	opTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("select: missing comparator", errs.Op("pathresolver.stepSelect"), errs.KindInput)
	}
	cmp, ok := parseComparator(opTok)
	if !ok {
		// A bare value without comparator is implicit eq.
		cmp = query.Eq
		v1, err := parseLiteral(f, opTok)
		if err != nil {
			return err
		}
		return st.finishSelect(tail, f, cmp, v1, nil)
	}

	if cmp.IsBetween() {
		switch f.Type() {
		case scheme.Integer, scheme.Float:
		default:
			return errs.New("between comparators require a numeric field, got "+f.Type().String(), errs.Op("pathresolver.stepSelect"), errs.KindInput)
		}
		v1Tok, ok := st.cursor.pop()
		if !ok {
			return errs.New("select: between comparator requires two values", errs.Op("pathresolver.stepSelect"), errs.KindInput)
		}
		v2Tok, ok := st.cursor.pop()
		if !ok {
			return errs.New("select: between comparator requires two values", errs.Op("pathresolver.stepSelect"), errs.KindInput)
		}
		v1, err := parseLiteral(f, v1Tok)
		if err != nil {
			return err
		}
		v2, err := parseLiteral(f, v2Tok)
		if err != nil {
			return err
		}
		return st.finishSelect(tail, f, cmp, v1, v2)
	}

	vTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("select: missing value", errs.Op("pathresolver.stepSelect"), errs.KindInput)
	}
	v1, err := parseLiteral(f, vTok)
	if err != nil {
		return err
	}
	return st.finishSelect(tail, f, cmp, v1, nil)
}

func (st *state) finishSelect(tail *query.Query, f *scheme.Field, cmp query.Comparator, v1, v2 interface{}) error {
	tail.Predicates = append(tail.Predicates, query.Predicate{
		Field: f.Name(), Comparator: cmp, Value1: v1, Value2: v2,
	})
	if cmp == query.Eq && (f.Flags().Has(scheme.Unique) || f.Transform() == scheme.AliasTransform) {
		st.isSingleObject = true
	}
	return nil
}

func (st *state) stepSearch(tail *query.Query) error {
	fieldTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("search: missing field name", errs.Op("pathresolver.stepSearch"), errs.KindInput)
	}
	f, err := st.requireField(fieldTok)
	if err != nil {
		return err
	}
	if f.Type() != scheme.FullTextView {
		return errs.New("search: field \""+fieldTok+"\" is not a FullTextView", errs.Op("pathresolver.stepSearch"), errs.KindInput)
	}
	st.list.SetKind(query.KindSearch)
	st.list.SetFieldName(fieldTok)
	return nil
}

func (st *state) stepOrder(tail *query.Query) error {
	fieldTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("order: missing field name", errs.Op("pathresolver.stepOrder"), errs.KindInput)
	}
	if _, err := st.requireIndexed(fieldTok); err != nil {
		return err
	}

	dir := query.Asc
	if next, ok := st.cursor.peek(); ok {
		switch next {
		case "asc":
			st.cursor.pop()
		case "desc":
			dir = query.Desc
			st.cursor.pop()
		}
	}
	tail.Orderings = append(tail.Orderings, query.Order{Field: fieldTok, Direction: dir})

	if next, ok := st.cursor.peek(); ok {
		if n, ok := parseCountSuffix(next); ok {
			st.cursor.pop()
			tail.Limit = &n
			if n == 1 {
				st.isSingleObject = true
			}
		}
	}
	return nil
}

// stepShorthandOrder implements the `+field`/`-field` shorthand. Only this
// branch is implemented; the original's second +field branch was
// unreachable and is intentionally omitted here.
func (st *state) stepShorthandOrder(tail *query.Query, fieldName string, dir query.Direction) error {
	if _, err := st.requireIndexed(fieldName); err != nil {
		return err
	}
	tail.Orderings = append(tail.Orderings, query.Order{Field: fieldName, Direction: dir})

	if next, ok := st.cursor.peek(); ok {
		if n, ok := parseCountSuffix(next); ok {
			st.cursor.pop()
			tail.Limit = &n
			if n == 1 {
				st.isSingleObject = true
			}
		}
	}
	return nil
}

func (st *state) stepLimit(tail *query.Query) error {
	nTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("limit: missing value", errs.Op("pathresolver.stepLimit"), errs.KindInput)
	}
	n, err := strconv.Atoi(nTok)
	if err != nil {
		return errs.New("limit: invalid integer \""+nTok+"\"", errs.Op("pathresolver.stepLimit"), errs.KindInput)
	}
	tail.Limit = &n
	if n == 1 {
		st.isSingleObject = true
	}
	return nil
}

func (st *state) stepOffset(tail *query.Query) error {
	nTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("offset: missing value", errs.Op("pathresolver.stepOffset"), errs.KindInput)
	}
	n, err := strconv.Atoi(nTok)
	if err != nil {
		return errs.New("offset: invalid integer \""+nTok+"\"", errs.Op("pathresolver.stepOffset"), errs.KindInput)
	}
	tail.Offset = &n
	return nil
}

func (st *state) stepAnchor(tail *query.Query, last bool) error {
	fieldTok, ok := st.cursor.pop()
	if !ok {
		return errs.New("first/last: missing field name", errs.Op("pathresolver.stepAnchor"), errs.KindInput)
	}
	if _, err := st.requireIndexed(fieldTok); err != nil {
		return err
	}

	count := 1
	if next, ok := st.cursor.peek(); ok {
		if n, ok := parseCountSuffix(next); ok {
			st.cursor.pop()
			count = n
		}
	}
	tail.Anchor = &query.Anchor{Field: fieldTok, Count: count, Last: last}
	if count == 1 {
		st.isSingleObject = true
	}
	return nil
}

// stepFieldName handles a bare field-name token: terminal content fields
// (File/Image/Array) switch the resource kind; reference fields
// (Object/Set/View) descend a new query.List item.
func (st *state) stepFieldName(name string) error {
	if !st.isSingleObject {
		return errs.New("field navigation token \""+name+"\" requires a single-object selection", errs.Op("pathresolver.stepFieldName"), errs.KindInput)
	}

	f, err := st.requireField(name)
	if err != nil {
		return err
	}

	switch f.Type() {
	case scheme.File, scheme.Image, scheme.Array:
		kind := query.KindFile
		if f.Type() == scheme.Array {
			kind = query.KindArray
		}
		st.list.SetKind(kind)
		st.list.SetFieldName(name)
		return nil

	case scheme.Object:
		if err := st.list.Push(f, f.Foreign()); err != nil {
			return err
		}
		// Descending into a to-one reference keeps/enters single-object mode.
		st.isSingleObject = true
		if st.list.Kind() != query.KindSearch {
			st.list.SetKind(query.KindFieldObject)
		}
		return nil

	case scheme.Set:
		if err := st.list.Push(f, f.Foreign()); err != nil {
			return err
		}
		st.isSingleObject = false
		// A Set field with an owning back-reference is a reverse collection
		// keyed by an owning scheme+field — a plain Set resource; a Set
		// field with no owner back-reference holds references directly on
		// the row and is a Reference-Set instead.
		if f.OwnerFieldName() != "" {
			st.list.SetKind(query.KindSet)
		} else {
			st.list.SetKind(query.KindReferenceSet)
		}
		st.list.SetFieldName(name)
		return nil

	case scheme.View:
		if err := st.list.Push(f, f.Foreign()); err != nil {
			return err
		}
		st.isSingleObject = false
		st.list.SetKind(query.KindView)
		st.list.SetFieldName(name)
		return nil

	default:
		return errs.New("field \""+name+"\" of type "+f.Type().String()+" cannot be navigated in a path", errs.Op("pathresolver.stepFieldName"), errs.KindInput)
	}
}
