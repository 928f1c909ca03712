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
	"github.com/restforge/core/scheme"
)

// Kind classifies the resource variant a resolved QueryList should be
// handed to.
type Kind uint8

// The supported resource kinds.
const (
	KindObject Kind = iota
	KindResourceList
	KindSet
	KindReferenceSet
	KindFile
	KindArray
	KindFieldObject
	KindView
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindResourceList:
		return "ResourceList"
	case KindSet:
		return "Set"
	case KindReferenceSet:
		return "ReferenceSet"
	case KindFile:
		return "File"
	case KindArray:
		return "Array"
	case KindFieldObject:
		return "FieldObject"
	case KindView:
		return "View"
	case KindSearch:
		return "Search"
	default:
		return "Unknown"
	}
}

// List is the non-empty ordered vector of Query items. Item #0 targets
// the root scheme; each later item carries Ref, the field on the
// previous item's scheme that bound it in.
type List struct {
	items        []*Query
	kind         Kind
	resolveDepth int
	maxDepth     int
	fieldName    string // the terminal field name for File/Array/Set/ReferenceSet/View/Search kinds
}

// New creates a List rooted at root, classified as kind. maxDepth is the
// configured ResourceResolverMaxDepth.
func New(root *scheme.Scheme, kind Kind, maxDepth int) *List {
	return &List{
		items:    []*Query{{Scheme: root}},
		kind:     kind,
		maxDepth: maxDepth,
	}
}

// Push appends a new item targeting s, bound in via the field ref on the
// previous tail's scheme. Push enforces the invariant that ref's foreign
// scheme must equal s.
func (l *List) Push(ref *scheme.Field, s *scheme.Scheme) error {
	if ref == nil {
		return errs.New("non-head query list item must carry a ref field", errs.Op("query.List.Push"), errs.KindInput)
	}
	if ref.Foreign() != s {
		return errs.New("ref field's foreign scheme does not match pushed scheme", errs.Op("query.List.Push"), errs.KindInput)
	}
	l.items = append(l.items, &Query{Scheme: s, Ref: ref})
	return nil
}

// Items returns the list's items in order. Callers must not mutate the
// returned slice's length; item contents may be set via the item's own
// setters while building the list.
func (l *List) Items() []*Query { return l.items }

// Tail returns the last item, which determines the effective scheme.
func (l *List) Tail() *Query { return l.items[len(l.items)-1] }

// EffectiveScheme is the scheme of the tail item.
func (l *List) EffectiveScheme() *scheme.Scheme { return l.Tail().Scheme }

// Kind reports the classified resource kind.
func (l *List) Kind() Kind { return l.kind }

// SetKind reclassifies the list; used by the Path Resolver when a later
// token changes the terminal resource kind (e.g. a File field).
func (l *List) SetKind(k Kind) { l.kind = k }

// FieldName is the terminal field name for File/Array/Set/ReferenceSet/
// View/Search kinds, set by the Path Resolver. A FieldObject list carries
// its field as the tail item's Ref instead.
func (l *List) FieldName() string { return l.fieldName }

// SetFieldName sets the terminal field name.
func (l *List) SetFieldName(name string) { l.fieldName = name }

// SetContinueToken sets the tail item's continue-token cursor.
func (l *List) SetContinueToken(token string) { l.Tail().ContinueToken = token }

// SetFullTextQuery sets the tail item's full-text sub-query.
func (l *List) SetFullTextQuery(q *FullTextQuery) { l.Tail().FullText = q }

// SetResolveDepth records the requested hydration depth, clamped to
// maxDepth.
func (l *List) SetResolveDepth(depth int) {
	if depth > l.maxDepth {
		depth = l.maxDepth
	}
	if depth < 0 {
		depth = 0
	}
	l.resolveDepth = depth
}

// ResolveDepth returns the clamped resolve depth.
func (l *List) ResolveDepth() int { return l.resolveDepth }

// MaxDepth returns the configured ResourceResolverMaxDepth.
func (l *List) MaxDepth() int { return l.maxDepth }

// SetQueryAsMtime substitutes the scheme's auto-mtime field as the tail
// item's sole select — used by the Handler Facade's conditional-GET
// check to fetch only the modification timestamp instead of the whole
// row.
func (l *List) SetQueryAsMtime() error {
	tail := l.Tail()
	mtimeField := tail.Scheme.AutoMTimeField()
	if mtimeField == "" {
		return errs.New("scheme \""+tail.Scheme.Name()+"\" has no AutoMTime field", errs.Op("query.List.SetQueryAsMtime"), errs.KindState)
	}
	tail.SelectFields = []string{mtimeField}
	tail.Predicates = nil
	tail.Orderings = nil
	tail.Limit = nil
	tail.Offset = nil
	tail.Anchor = nil
	return nil
}

// DeltaApplicable computes the "delta applicable" predicate: a
// structural check over the list's items, recomputed on every call. True
// iff every item selects by
// oid/alias/unique/first-or-last (i.e. IsSingleObject) and either the
// effective scheme has delta tracking enabled, or the terminal field (for
// a View kind) is itself delta-tracked.
func (l *List) DeltaApplicable() bool {
	for _, item := range l.items {
		if !item.IsSingleObject() {
			return false
		}
	}
	if l.kind == KindView {
		// A View's delta stream is delta-aware by construction, regardless
		// of the owning scheme's own tracking flag.
		return true
	}
	return l.EffectiveScheme().DeltaTrackingEnabled()
}
