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
	"context"
	"sort"

	"github.com/restforge/core/adapter"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// fakeWorker is a no-op transaction handle, enough to satisfy the Adapter
// contract's Worker parameter for dispatch tests that never assert on
// transaction boundaries.
type fakeWorker struct{}

func (fakeWorker) Begin(ctx context.Context) error { return nil }
func (fakeWorker) End(ctx context.Context) error   { return nil }
func (fakeWorker) Cancel(ctx context.Context)      {}
func (fakeWorker) InTransaction() bool             { return false }

// fakeAdapter is an in-memory, single-scheme Adapter: enough rows and
// mtimes to exercise every verb the Handler Facade dispatches without a
// real store.
type fakeAdapter struct {
	rows  map[int64]*value.Dictionary
	mtime map[int64]int64
	next  int64
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{rows: make(map[int64]*value.Dictionary), mtime: make(map[int64]int64), next: 1}
}

func (a *fakeAdapter) put(oid int64, d *value.Dictionary, mtimeMicros int64) {
	d.Set(value.KeyOid, value.Int(oid))
	a.rows[oid] = d
	a.mtime[oid] = mtimeMicros
	if oid >= a.next {
		a.next = oid + 1
	}
}

func (a *fakeAdapter) sortedIds() []int64 {
	ids := make([]int64, 0, len(a.rows))
	for id := range a.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (a *fakeAdapter) Select(ctx context.Context, w adapter.Worker, q *query.Query) (value.Value, error) {
	if q.OidTarget == nil {
		return value.Null(), errs.New("fakeAdapter.Select requires an oid", errs.Op("fakeAdapter.Select"), errs.KindInput)
	}
	d, ok := a.rows[*q.OidTarget]
	if !ok {
		return value.Null(), errs.New("no such row", errs.Op("fakeAdapter.Select"), errs.KindInput)
	}
	return value.NewDictionary(d), nil
}

func (a *fakeAdapter) Create(ctx context.Context, w adapter.Worker, s *scheme.Scheme, v value.Value) (value.Value, error) {
	dict, ok := v.Dictionary()
	if !ok {
		dict = value.NewDict()
	} else {
		dict = dict.Clone()
	}
	oid := a.next
	a.put(oid, dict, 0)
	return value.NewDictionary(dict), nil
}

func (a *fakeAdapter) Save(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64, v value.Value, fields []string) (value.Value, error) {
	dict, ok := v.Dictionary()
	if !ok {
		return value.Null(), errs.New("fakeAdapter.Save requires a dictionary", errs.Op("fakeAdapter.Save"), errs.KindInput)
	}
	stored := dict.Clone()
	stored.Set(value.KeyOid, value.Int(oid))
	a.rows[oid] = stored
	return value.NewDictionary(stored), nil
}

func (a *fakeAdapter) Patch(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64, patch *value.Dictionary) (value.Value, error) {
	stored, ok := a.rows[oid]
	if !ok {
		return value.Null(), errs.New("no such row", errs.Op("fakeAdapter.Patch"), errs.KindInput)
	}
	for _, key := range patch.Keys() {
		v, _ := patch.Get(key)
		stored.Set(key, v)
	}
	return value.NewDictionary(stored), nil
}

func (a *fakeAdapter) Remove(ctx context.Context, w adapter.Worker, s *scheme.Scheme, oid int64) (bool, error) {
	if _, ok := a.rows[oid]; !ok {
		return false, nil
	}
	delete(a.rows, oid)
	delete(a.mtime, oid)
	return true, nil
}

func (a *fakeAdapter) Count(ctx context.Context, w adapter.Worker, q *query.Query) (int64, error) {
	return int64(len(a.rows)), nil
}

func (a *fakeAdapter) Field(ctx context.Context, w adapter.Worker, action adapter.FieldAction, s *scheme.Scheme, oid int64, fieldName string, data value.Value) (value.Value, error) {
	return value.Null(), errs.New("not used in handler tests", errs.Op("fakeAdapter.Field"), errs.KindState)
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
	tail := list.Tail()
	if tail.OidTarget != nil {
		d, ok := a.rows[*tail.OidTarget]
		if !ok {
			return value.Null(), nil
		}
		return value.NewDictionary(d), nil
	}
	out := make([]value.Value, 0, len(a.rows))
	for _, id := range a.sortedIds() {
		out = append(out, value.NewDictionary(a.rows[id]))
	}
	return value.NewArray(out), nil
}

func (a *fakeAdapter) PerformQueryListForIds(ctx context.Context, list *query.List, count int) ([]int64, error) {
	tail := list.Tail()
	if tail.OidTarget != nil {
		if _, ok := a.rows[*tail.OidTarget]; !ok {
			return nil, nil
		}
		return []int64{*tail.OidTarget}, nil
	}
	return a.sortedIds(), nil
}

func (a *fakeAdapter) GetDeltaValue(ctx context.Context, s *scheme.Scheme, view string, oid int64) (int64, error) {
	return a.mtime[oid], nil
}

func (a *fakeAdapter) AuthorizeUser(ctx context.Context, w adapter.Worker, name, password string) (principal.User, error) {
	return nil, errs.New("not used in handler tests", errs.Op("fakeAdapter.AuthorizeUser"), errs.KindState)
}

func (a *fakeAdapter) Broadcast(ctx context.Context, data value.Value) error { return nil }

func (a *fakeAdapter) NewWorker(ctx context.Context) (adapter.Worker, error) { return fakeWorker{}, nil }

var _ adapter.Adapter = (*fakeAdapter)(nil)

// fakeUser is a minimal principal.User for dispatch tests.
type fakeUser struct {
	oid   int64
	admin bool
}

func (u fakeUser) Oid() int64    { return u.oid }
func (u fakeUser) IsAdmin() bool { return u.admin }

var _ principal.User = fakeUser{}
