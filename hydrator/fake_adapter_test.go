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

package hydrator

import (
	"context"

	"github.com/restforge/core/adapter"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// fakeWorker is a no-op transaction handle, just enough to satisfy the
// Adapter contract's Worker parameter; the Hydrator never opens a
// transaction of its own.
type fakeWorker struct{}

func (fakeWorker) Begin(ctx context.Context) error { return nil }
func (fakeWorker) End(ctx context.Context) error   { return nil }
func (fakeWorker) Cancel(ctx context.Context)      {}
func (fakeWorker) InTransaction() bool             { return false }

// fakeAdapter is an in-memory Adapter keyed by scheme name + oid, enough
// to exercise relation fetch/collapse without a real store.
type fakeAdapter struct {
	rows     map[string]map[int64]*value.Dictionary
	children map[string]map[int64][]int64 // parentScheme.fieldName -> parentOid -> child oids
	fields   map[string]map[int64]map[string]value.Value
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		rows:     make(map[string]map[int64]*value.Dictionary),
		children: make(map[string]map[int64][]int64),
		fields:   make(map[string]map[int64]map[string]value.Value),
	}
}

func (a *fakeAdapter) put(s *scheme.Scheme, oid int64, d *value.Dictionary) {
	if a.rows[s.Name()] == nil {
		a.rows[s.Name()] = make(map[int64]*value.Dictionary)
	}
	d.Set(value.KeyOid, value.Int(oid))
	a.rows[s.Name()][oid] = d
}

// link registers childOid as reachable from parent's Set/View field
// fieldName on parentOid, for fetchCollection to find via PerformQueryList.
func (a *fakeAdapter) link(parent *scheme.Scheme, fieldName string, parentOid, childOid int64) {
	key := parent.Name() + "." + fieldName
	if a.children[key] == nil {
		a.children[key] = make(map[int64][]int64)
	}
	a.children[key][parentOid] = append(a.children[key][parentOid], childOid)
}

func (a *fakeAdapter) putField(s *scheme.Scheme, oid int64, fieldName string, v value.Value) {
	if a.fields[s.Name()] == nil {
		a.fields[s.Name()] = make(map[int64]map[string]value.Value)
	}
	if a.fields[s.Name()][oid] == nil {
		a.fields[s.Name()][oid] = make(map[string]value.Value)
	}
	a.fields[s.Name()][oid][fieldName] = v
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
	return value.Null(), errs.New("not used", errs.Op("fakeAdapter.Create"), errs.KindState)
}

func (a *fakeAdapter) Save(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64, v value.Value, fields []string) (value.Value, error) {
	return value.Null(), errs.New("not used", errs.Op("fakeAdapter.Save"), errs.KindState)
}

func (a *fakeAdapter) Patch(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64, patch *value.Dictionary) (value.Value, error) {
	return value.Null(), errs.New("not used", errs.Op("fakeAdapter.Patch"), errs.KindState)
}

func (a *fakeAdapter) Remove(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64) (bool, error) {
	return false, errs.New("not used", errs.Op("fakeAdapter.Remove"), errs.KindState)
}

func (a *fakeAdapter) Count(ctx context.Context, w adapter.Worker, q *query.Query) (int64, error) {
	return 0, nil
}

func (a *fakeAdapter) Field(ctx context.Context, w adapter.Worker, action adapter.FieldAction, s *scheme.Scheme, oid int64, fieldName string, data value.Value) (value.Value, error) {
	if action != adapter.FieldGet {
		return value.Null(), errs.New("fakeAdapter only serves FieldGet in hydrator tests", errs.Op("fakeAdapter.Field"), errs.KindState)
	}
	v, ok := a.fields[s.Name()][oid][fieldName]
	if !ok {
		return value.Null(), nil
	}
	return v, nil
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

// PerformQueryList finds the pushed item's ref field to know which
// parent/fieldName link table to consult, using the root item's OidTarget
// as the parent oid — mirroring how the Hydrator's fetchCollection builds
// its two-item Query List.
func (a *fakeAdapter) PerformQueryList(ctx context.Context, list *query.List, count int, forUpdate bool, field string) (value.Value, error) {
	items := list.Items()
	root := items[0]
	tail := list.Tail()
	key := root.Scheme.Name() + "." + tail.Ref.Name()
	childOids := a.children[key][*root.OidTarget]

	out := make([]value.Value, 0, len(childOids))
	for _, oid := range childOids {
		if d, ok := a.rows[tail.Scheme.Name()][oid]; ok {
			out = append(out, value.NewDictionary(d))
		}
	}
	return value.NewArray(out), nil
}

func (a *fakeAdapter) PerformQueryListForIds(ctx context.Context, list *query.List, count int) ([]int64, error) {
	items := list.Items()
	root := items[0]
	tail := list.Tail()
	key := root.Scheme.Name() + "." + tail.Ref.Name()
	return a.children[key][*root.OidTarget], nil
}

func (a *fakeAdapter) GetDeltaValue(ctx context.Context, s *scheme.Scheme, view string, oid int64) (int64, error) {
	return 0, nil
}

func (a *fakeAdapter) AuthorizeUser(ctx context.Context, w adapter.Worker, name, password string) (principal.User, error) {
	return nil, errs.New("not used", errs.Op("fakeAdapter.AuthorizeUser"), errs.KindState)
}

func (a *fakeAdapter) Broadcast(ctx context.Context, data value.Value) error { return nil }

func (a *fakeAdapter) NewWorker(ctx context.Context) (adapter.Worker, error) { return fakeWorker{}, nil }

var _ adapter.Adapter = (*fakeAdapter)(nil)
