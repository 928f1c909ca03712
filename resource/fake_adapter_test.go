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

package resource

import (
	"context"

	"github.com/restforge/core/adapter"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// fakeWorker is a no-op Worker: transactions always succeed, with simple
// re-entrancy bookkeeping matching the real contract's invariants.
type fakeWorker struct {
	depth int
}

func (w *fakeWorker) Begin(ctx context.Context) error { w.depth++; return nil }
func (w *fakeWorker) End(ctx context.Context) error {
	if w.depth > 0 {
		w.depth--
	}
	return nil
}
func (w *fakeWorker) Cancel(ctx context.Context)  {}
func (w *fakeWorker) InTransaction() bool         { return w.depth > 0 }

// fakeAdapter is an in-memory Adapter keyed by scheme name + oid, just
// enough to exercise the resource package's prepare/act/mass-update
// machinery without a real store.
type fakeAdapter struct {
	rows   map[string]map[int64]*value.Dictionary
	fields map[string]map[int64]map[string]value.Value
	nextID int64

	// Object-tier Restrict cases are exercised through the scheme's own
	// ObjectPermission hook in tests; the adapter itself restricts nothing.
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		rows:   make(map[string]map[int64]*value.Dictionary),
		fields: make(map[string]map[int64]map[string]value.Value),
	}
}

func (a *fakeAdapter) put(s *scheme.Scheme, oid int64, d *value.Dictionary) {
	if a.rows[s.Name()] == nil {
		a.rows[s.Name()] = make(map[int64]*value.Dictionary)
	}
	d.Set(value.KeyOid, value.Int(oid))
	a.rows[s.Name()][oid] = d
	if oid >= a.nextID {
		a.nextID = oid + 1
	}
}

func (a *fakeAdapter) Select(ctx context.Context, w adapter.Worker, q *query.Query) (value.Value, error) {
	if q.OidTarget == nil {
		return value.Null(), errs.New("fakeAdapter.Select requires an oid", errs.Op("fakeAdapter.Select"), errs.KindInput)
	}
	d, ok := a.rows[q.Scheme.Name()][*q.OidTarget]
	if !ok {
		return value.Null(), errs.New("no such row", errs.Op("fakeAdapter.Select"), errs.KindInput)
	}
	return value.NewDictionary(d), nil
}

func (a *fakeAdapter) Create(ctx context.Context, w adapter.Worker, s *scheme.Scheme, v value.Value) (value.Value, error) {
	d, ok := v.Dictionary()
	if !ok {
		d = value.NewDict()
	} else {
		d = d.Clone()
	}
	oid := a.nextID
	a.put(s, oid, d)
	return value.NewDictionary(d), nil
}

func (a *fakeAdapter) Save(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64, v value.Value, fields []string) (value.Value, error) {
	d, ok := v.Dictionary()
	if !ok {
		d = value.NewDict()
	}
	a.put(s, oid, d.Clone())
	return value.NewDictionary(a.rows[s.Name()][oid]), nil
}

func (a *fakeAdapter) Patch(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64, patch *value.Dictionary) (value.Value, error) {
	existing, ok := a.rows[s.Name()][oid]
	if !ok {
		existing = value.NewDict()
	}
	merged := existing.Clone()
	patch.Range(func(key string, v value.Value) bool {
		merged.Set(key, v)
		return true
	})
	a.put(s, oid, merged)
	return value.NewDictionary(merged), nil
}

func (a *fakeAdapter) Remove(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64) (bool, error) {
	if _, ok := a.rows[s.Name()][oid]; !ok {
		return false, nil
	}
	delete(a.rows[s.Name()], oid)
	return true, nil
}

func (a *fakeAdapter) Count(ctx context.Context, w adapter.Worker, q *query.Query) (int64, error) {
	return int64(len(a.rows[q.Scheme.Name()])), nil
}

func (a *fakeAdapter) Field(ctx context.Context, w adapter.Worker, action adapter.FieldAction, s *scheme.Scheme, oid int64, fieldName string, data value.Value) (value.Value, error) {
	if a.fields[s.Name()] == nil {
		a.fields[s.Name()] = make(map[int64]map[string]value.Value)
	}
	if a.fields[s.Name()][oid] == nil {
		a.fields[s.Name()][oid] = make(map[string]value.Value)
	}
	cur := a.fields[s.Name()][oid][fieldName]

	switch action {
	case adapter.FieldGet:
		return cur, nil
	case adapter.FieldSet:
		a.fields[s.Name()][oid][fieldName] = data
		return data, nil
	case adapter.FieldAppend:
		curItems, _ := cur.Array()
		newItems, _ := data.Array()
		merged := append(append([]value.Value(nil), curItems...), newItems...)
		out := value.NewArray(merged)
		a.fields[s.Name()][oid][fieldName] = out
		return out, nil
	case adapter.FieldClear:
		items, hasFilter := data.Array()
		if !hasFilter || len(items) == 0 {
			a.fields[s.Name()][oid][fieldName] = value.NewArray(nil)
			return value.NewArray(nil), nil
		}
		remove := map[int64]bool{}
		for _, it := range items {
			if id, ok := it.Int(); ok {
				remove[id] = true
			}
		}
		curItems, _ := cur.Array()
		var kept []value.Value
		for _, it := range curItems {
			if id, ok := it.Int(); ok && !remove[id] {
				kept = append(kept, it)
			}
		}
		out := value.NewArray(kept)
		a.fields[s.Name()][oid][fieldName] = out
		return out, nil
	}
	return value.Null(), errs.New("unknown field action", errs.Op("fakeAdapter.Field"), errs.KindState)
}

func (a *fakeAdapter) AddToView(ctx context.Context, w adapter.Worker, s *scheme.Scheme, parentOid int64, fieldName string, oid int64) error {
	return nil
}

func (a *fakeAdapter) RemoveFromView(ctx context.Context, w adapter.Worker, s *scheme.Scheme, parentOid int64, fieldName string, oid int64) error {
	return nil
}

func (a *fakeAdapter) GetReferenceParents(ctx context.Context, w adapter.Worker, s *scheme.Scheme, childOid int64, foreignScheme *scheme.Scheme, fieldName string) ([]int64, error) {
	return nil, nil
}

func (a *fakeAdapter) PerformQueryList(ctx context.Context, list *query.List, count int, forUpdate bool, field string) (value.Value, error) {
	s := list.EffectiveScheme()
	var out []value.Value
	for _, d := range a.rows[s.Name()] {
		out = append(out, value.NewDictionary(d))
	}
	return value.NewArray(out), nil
}

func (a *fakeAdapter) PerformQueryListForIds(ctx context.Context, list *query.List, count int) ([]int64, error) {
	s := list.EffectiveScheme()
	var ids []int64
	for oid := range a.rows[s.Name()] {
		ids = append(ids, oid)
	}
	return ids, nil
}

func (a *fakeAdapter) GetDeltaValue(ctx context.Context, s *scheme.Scheme, view string, oid int64) (int64, error) {
	return 42, nil
}

func (a *fakeAdapter) AuthorizeUser(ctx context.Context, w adapter.Worker, name, password string) (principal.User, error) {
	return nil, errs.New("not implemented in fakeAdapter", errs.Op("fakeAdapter.AuthorizeUser"), errs.KindState)
}

func (a *fakeAdapter) Broadcast(ctx context.Context, data value.Value) error { return nil }

func (a *fakeAdapter) NewWorker(ctx context.Context) (adapter.Worker, error) {
	return &fakeWorker{}, nil
}

var _ adapter.Adapter = (*fakeAdapter)(nil)
