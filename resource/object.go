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

	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// ObjectResource is the single-row variant: the bound Query List's tail
// item is known (by construction — see query.Query.IsSingleObject) to
// select at most one row.
type ObjectResource struct {
	Base
}

var _ Resource = (*ObjectResource)(nil)

// PrepareCreate is always false for Object: a
// single already-addressed row cannot be the target of a POST.
func (r *ObjectResource) PrepareCreate() bool { return false }

// PrepareUpdate is true: PUT replaces the addressed row.
func (r *ObjectResource) PrepareUpdate() bool { return true }

// PrepareAppend is false: Object is not one of the three append-capable
// variants.
func (r *ObjectResource) PrepareAppend() bool { return false }

func (r *ObjectResource) oid(ctx context.Context) (int64, error) {
	ids, err := r.resolveIds(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, errs.New("no object matches the resolved query", errs.Op("resource.ObjectResource"), errs.KindInput)
	}
	return ids[0], nil
}

// RemoveObject implements Resource.
func (r *ObjectResource) RemoveObject(ctx context.Context) (bool, error) {
	return r.massRemove(ctx, scheme.ActionRemove)
}

// CreateObject always fails for Object.
func (r *ObjectResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), errs.New("Object does not support create", errs.Op("resource.ObjectResource.CreateObject"), errs.KindState)
}

// UpdateObject implements Resource: replaces the addressed row wholesale.
func (r *ObjectResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) {
	patch, _ := v.Dictionary()

	results, err := r.massUpdate(ctx, scheme.ActionUpdate, patch, func(ctx context.Context, s *scheme.Scheme, id int64) (value.Value, error) {
		return r.Adapter.Save(ctx, r.Worker, s, id, v, s.FieldNames())
	})
	if err != nil {
		return value.Null(), err
	}
	return unwrapSingle(results), nil
}

// AppendObject always fails for Object.
func (r *ObjectResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), errs.New("Object does not support append", errs.Op("resource.ObjectResource.AppendObject"), errs.KindState)
}

// GetResultObject implements Resource: fetches the addressed row under
// Read permission.
func (r *ObjectResource) GetResultObject(ctx context.Context) (value.Value, error) {
	oid, err := r.oid(ctx)
	if err != nil {
		return value.Null(), err
	}
	s := r.Scheme()
	v, err := r.Adapter.Select(ctx, r.Worker, &query.Query{Scheme: s, OidTarget: &oid})
	if err != nil {
		return value.Null(), err
	}
	perm, err := r.Policy.Evaluate(ctx, s, scheme.ActionRead, v, nil)
	if err != nil {
		return value.Null(), err
	}
	if perm == scheme.Restrict {
		return value.Null(), errs.New("permission denied for read on \""+s.Name()+"\"", errs.Op("resource.ObjectResource.GetResultObject"), errs.KindPermission)
	}
	return v, nil
}

// GetObjectMtime implements Resource: per-object modification timestamp,
// used by the Handler Facade's conditional GET.
func (r *ObjectResource) GetObjectMtime(ctx context.Context) (int64, bool, error) {
	oid, err := r.oid(ctx)
	if err != nil {
		return 0, false, err
	}
	s := r.Scheme()
	mtime, err := r.Adapter.GetDeltaValue(ctx, s, "", oid)
	if err != nil {
		return 0, false, err
	}
	return mtime, true, nil
}

// unwrapSingle returns arr[0] if arr is a one-element array Value, else
// arr unchanged; massUpdate always returns an Array even for the
// single-id Object case, and callers expect a bare Dictionary there.
func unwrapSingle(v value.Value) value.Value {
	items, ok := v.Array()
	if !ok || len(items) != 1 {
		return v
	}
	return items[0]
}
