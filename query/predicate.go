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

package query

import (
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/value"
)

// operatorComparator maps the `$op` keys accepted by the leading-paren
// predicate object onto Comparator.
var operatorComparator = map[string]Comparator{
	"$eq":  Eq,
	"$neq": Neq,
	"$lt":  Lt,
	"$le":  Le,
	"$gt":  Gt,
	"$ge":  Ge,
	"$bw":  Bw,
	"$be":  Be,
	"$nbw": Nbw,
	"$nbe": Nbe,
}

// ApplyPredicate merges a JSON-like predicate object onto the tail item's
// Predicates. The object is a dictionary keyed by field name; each value
// is either a bare scalar (implicit Eq) or a single-key object naming one
// of the `$eq`/`$lt`/... operators, whose value is itself a scalar or a
// two-element array for the between-family comparators.
func (l *List) ApplyPredicate(obj *value.Dictionary) error {
	tail := l.Tail()
	var outerErr error
	obj.Range(func(field string, v value.Value) bool {
		if v.Kind() == value.KindDictionary {
			sub, _ := v.Dictionary()
			if sub.Len() != 1 {
				outerErr = errs.New("predicate operator object for field \""+field+"\" must have exactly one key", errs.Op("query.List.ApplyPredicate"), errs.KindInput)
				return false
			}
			opKey := sub.Keys()[0]
			cmp, ok := operatorComparator[opKey]
			if !ok {
				outerErr = errs.New("unknown predicate operator \""+opKey+"\"", errs.Op("query.List.ApplyPredicate"), errs.KindInput)
				return false
			}
			opVal, _ := sub.Get(opKey)
			pred := Predicate{Field: field, Comparator: cmp}
			if cmp.IsBetween() {
				items, ok := opVal.Array()
				if !ok || len(items) != 2 {
					outerErr = errs.New("between predicate for field \""+field+"\" requires a two-element array", errs.Op("query.List.ApplyPredicate"), errs.KindInput)
					return false
				}
				pred.Value1 = items[0]
				pred.Value2 = items[1]
			} else {
				pred.Value1 = opVal
			}
			tail.Predicates = append(tail.Predicates, pred)
			return true
		}

		tail.Predicates = append(tail.Predicates, Predicate{Field: field, Comparator: Eq, Value1: v})
		return true
	})
	return outerErr
}
