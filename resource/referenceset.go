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
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// ReferenceSetResource operates on the tail field of the parent object: a
// Set of references with no owning back-reference on the child scheme.
// The Query List's next-to-last item is the (latched single-object)
// parent; the tail item is the child scheme; List.FieldName names the Set
// field on the parent that holds the references.
type ReferenceSetResource struct {
	Base
}

var _ Resource = (*ReferenceSetResource)(nil)

func (r *ReferenceSetResource) PrepareCreate() bool { return true }
func (r *ReferenceSetResource) PrepareUpdate() bool { return true }
func (r *ReferenceSetResource) PrepareAppend() bool { return true }

func (r *ReferenceSetResource) parent() (*scheme.Scheme, int64, error) {
	items := r.List.Items()
	if len(items) < 2 {
		return nil, 0, errs.New("reference-set resource requires a parent item", errs.Op("resource.ReferenceSetResource"), errs.KindState)
	}
	parent := items[len(items)-2]
	if parent.OidTarget == nil {
		return nil, 0, errs.New("reference-set parent is not a single-object selection", errs.Op("resource.ReferenceSetResource"), errs.KindState)
	}
	return parent.Scheme, *parent.OidTarget, nil
}

// permission computes min(refPerms on the child scheme, Update on the
// parent): the Reference-Set permission floor.
func (r *ReferenceSetResource) permission(ctx context.Context) (scheme.Permission, error) {
	childScheme := r.Scheme()
	parentScheme, parentOid, err := r.parent()
	if err != nil {
		return scheme.Restrict, err
	}
	parentObj, err := r.Adapter.Select(ctx, r.Worker, &query.Query{Scheme: parentScheme, OidTarget: &parentOid})
	if err != nil {
		return scheme.Restrict, err
	}
	return r.Policy.ReferenceSetPermission(ctx, childScheme, parentScheme, parentObj, nil)
}

// resolveRefs coerces a scalar id, array, dictionary, or array of
// dictionaries into a concrete id list, creating any nested payload as a
// new child row first (create-or-fetch per element).
func (r *ReferenceSetResource) resolveRefs(ctx context.Context, v value.Value) ([]int64, error) {
	childScheme := r.Scheme()

	// A dictionary payload may carry the ids under the field key, or be a
	// single nested object to create-or-fetch.
	if d, ok := v.Dictionary(); ok {
		if inner, ok := d.Get(r.List.FieldName()); ok {
			return r.resolveRefs(ctx, inner)
		}
		return r.resolveOne(ctx, childScheme, v)
	}

	if items, ok := v.Array(); ok {
		ids := make([]int64, 0, len(items))
		for _, item := range items {
			sub, err := r.resolveOne(ctx, childScheme, item)
			if err != nil {
				return nil, err
			}
			ids = append(ids, sub...)
		}
		return ids, nil
	}

	return r.resolveOne(ctx, childScheme, v)
}

func (r *ReferenceSetResource) resolveOne(ctx context.Context, childScheme *scheme.Scheme, v value.Value) ([]int64, error) {
	if id, ok := v.Int(); ok {
		return []int64{id}, nil
	}
	if d, ok := v.Dictionary(); ok {
		if oidVal, ok := d.Get(value.KeyOid); ok {
			if id, ok := oidVal.Int(); ok {
				return []int64{id}, nil
			}
		}
		// No oid present: create a new child row.
		if err := r.Worker.Begin(ctx); err != nil {
			return nil, err
		}
		created, err := r.Adapter.Create(ctx, r.Worker, childScheme, v)
		if err != nil {
			r.Worker.Cancel(ctx)
			r.Worker.End(ctx)
			return nil, err
		}
		if err := r.Worker.End(ctx); err != nil {
			return nil, err
		}
		createdDict, _ := created.Dictionary()
		oidVal, _ := createdDict.Get(value.KeyOid)
		id, _ := oidVal.Int()
		return []int64{id}, nil
	}
	return nil, errs.New("reference-set element must be an id or an object", errs.Op("resource.ReferenceSetResource.resolveOne"), errs.KindInput)
}

func (r *ReferenceSetResource) apply(ctx context.Context, action adapter.FieldAction, ids []int64) (value.Value, error) {
	perm, err := r.permission(ctx)
	if err != nil {
		return value.Null(), err
	}
	if perm == scheme.Restrict {
		return value.Null(), errs.New("permission denied for reference-set update", errs.Op("resource.ReferenceSetResource.apply"), errs.KindPermission)
	}

	parentScheme, parentOid, err := r.parent()
	if err != nil {
		return value.Null(), err
	}
	fieldName := r.List.FieldName()

	data := make([]value.Value, len(ids))
	for i, id := range ids {
		data[i] = value.Int(id)
	}

	if err := r.Worker.Begin(ctx); err != nil {
		return value.Null(), err
	}
	updated, err := r.Adapter.Field(ctx, r.Worker, action, parentScheme, parentOid, fieldName, value.NewArray(data))
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

// CreateObject implements the "append (union with existing)" mode for a
// POST body.
func (r *ReferenceSetResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) {
	ids, err := r.resolveRefs(ctx, v)
	if err != nil {
		return value.Null(), err
	}
	return r.apply(ctx, adapter.FieldAppend, ids)
}

// UpdateObject implements the "set (cleanup + assign)" mode for a PUT
// body: clears every existing reference, then assigns exactly the given
// ids.
func (r *ReferenceSetResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) {
	ids, err := r.resolveRefs(ctx, v)
	if err != nil {
		return value.Null(), err
	}
	if _, err := r.apply(ctx, adapter.FieldClear, nil); err != nil {
		return value.Null(), err
	}
	return r.apply(ctx, adapter.FieldAppend, ids)
}

// AppendObject implements the "append (union with existing)" mode for a
// PATCH body.
func (r *ReferenceSetResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	ids, err := r.resolveRefs(ctx, v)
	if err != nil {
		return value.Null(), err
	}
	return r.apply(ctx, adapter.FieldAppend, ids)
}

// RemoveObject implements the "cleanup (clearField with optional id
// filter)" mode: with no filter value, every reference is removed; with
// one, exactly the filter-matched references are removed and the rest
// are left in place.
func (r *ReferenceSetResource) RemoveObject(ctx context.Context) (bool, error) {
	var ids []int64
	if !r.Filter.IsNull() {
		resolved, err := r.resolveRefs(ctx, r.Filter)
		if err != nil {
			return false, err
		}
		ids = resolved
	}
	if _, err := r.apply(ctx, adapter.FieldClear, ids); err != nil {
		return false, err
	}
	return true, nil
}

// GetResultObject implements Resource: performs the Query List and
// returns the referenced rows.
func (r *ReferenceSetResource) GetResultObject(ctx context.Context) (value.Value, error) {
	return r.Adapter.PerformQueryList(ctx, r.List, r.Page.Count, false, r.List.FieldName())
}
