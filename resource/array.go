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
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// ArrayResource is the scalar-list property variant:
// accepts a scalar, an array, or a dict-with-field-name payload, coerces
// it to an array, and either sets or appends the field depending on verb.
//
// PrepareAppend reports false here even though AppendObject is fully
// implemented: the boundary invariant holds prepareAppend true only on
// Set, ReferenceSet, and ResourceList, so the Handler Facade answers a
// PATCH on an Array with 405 and AppendObject is reached only by calling
// it directly.
type ArrayResource struct {
	Base
}

var _ Resource = (*ArrayResource)(nil)

func (r *ArrayResource) PrepareCreate() bool { return true }
func (r *ArrayResource) PrepareUpdate() bool { return true }
func (r *ArrayResource) PrepareAppend() bool { return false }

func (r *ArrayResource) parentOid() (int64, error) {
	items := r.List.Items()
	last := items[len(items)-1]
	if last.OidTarget == nil {
		return 0, errs.New("array resource requires a single-object parent", errs.Op("resource.ArrayResource"), errs.KindState)
	}
	return *last.OidTarget, nil
}

// coerce normalizes a scalar, array, or dict-with-field-name payload into
// a plain Array value.
func (r *ArrayResource) coerce(v value.Value) value.Value {
	if d, ok := v.Dictionary(); ok {
		if inner, ok := d.Get(r.List.FieldName()); ok {
			return r.coerce(inner)
		}
		return value.NewArray([]value.Value{v})
	}
	if _, ok := v.Array(); ok {
		return v
	}
	return value.NewArray([]value.Value{v})
}

func (r *ArrayResource) write(ctx context.Context, action adapter.FieldAction, v value.Value) (value.Value, error) {
	s := r.Scheme()
	perm, err := r.Policy.Evaluate(ctx, s, scheme.ActionUpdate, value.Null(), nil)
	if err != nil {
		return value.Null(), err
	}
	if perm == scheme.Restrict {
		return value.Null(), errs.New("permission denied for array update", errs.Op("resource.ArrayResource.write"), errs.KindPermission)
	}
	oid, err := r.parentOid()
	if err != nil {
		return value.Null(), err
	}
	if err := r.Worker.Begin(ctx); err != nil {
		return value.Null(), err
	}
	updated, err := r.Adapter.Field(ctx, r.Worker, action, s, oid, r.List.FieldName(), r.coerce(v))
	if err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return value.Null(), err
	}
	if err := r.Worker.End(ctx); err != nil {
		return value.Null(), err
	}
	return updated, nil
}

// CreateObject implements Resource: sets the array (equivalent to
// setField on an empty array).
func (r *ArrayResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return r.write(ctx, adapter.FieldSet, v)
}

// UpdateObject implements Resource: replaces the array wholesale.
func (r *ArrayResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return r.write(ctx, adapter.FieldSet, v)
}

// AppendObject implements Resource: appends to the existing array.
func (r *ArrayResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	return r.write(ctx, adapter.FieldAppend, v)
}

// RemoveObject implements Resource: clears the array.
func (r *ArrayResource) RemoveObject(ctx context.Context) (bool, error) {
	s := r.Scheme()
	oid, err := r.parentOid()
	if err != nil {
		return false, err
	}
	if err := r.Worker.Begin(ctx); err != nil {
		return false, err
	}
	_, err = r.Adapter.Field(ctx, r.Worker, adapter.FieldClear, s, oid, r.List.FieldName(), value.Null())
	if err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return false, err
	}
	if err := r.Worker.End(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// GetResultObject implements Resource: fetches the scalar array directly.
func (r *ArrayResource) GetResultObject(ctx context.Context) (value.Value, error) {
	s := r.Scheme()
	oid, err := r.parentOid()
	if err != nil {
		return value.Null(), err
	}
	return r.Adapter.Field(ctx, r.Worker, adapter.FieldGet, s, oid, r.List.FieldName(), value.Null())
}
