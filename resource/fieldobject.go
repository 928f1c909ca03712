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

// FieldObjectResource implements the one-to-one relation property:
// create then patch the parent to reference the child, with
// transactional remove-and-recreate on PUT. The tail item's Ref field
// names the Object field on the parent that holds the reference.
type FieldObjectResource struct {
	Base
}

var _ Resource = (*FieldObjectResource)(nil)

func (r *FieldObjectResource) PrepareCreate() bool { return true }
func (r *FieldObjectResource) PrepareUpdate() bool { return true }
func (r *FieldObjectResource) PrepareAppend() bool { return false }

func (r *FieldObjectResource) parent() (*scheme.Scheme, int64, *scheme.Field, error) {
	items := r.List.Items()
	if len(items) < 2 {
		return nil, 0, nil, errs.New("field-object resource requires a parent item", errs.Op("resource.FieldObjectResource"), errs.KindState)
	}
	tail := items[len(items)-1]
	parent := items[len(items)-2]
	if parent.OidTarget == nil {
		return nil, 0, nil, errs.New("field-object parent is not a single-object selection", errs.Op("resource.FieldObjectResource"), errs.KindState)
	}
	return parent.Scheme, *parent.OidTarget, tail.Ref, nil
}

// createAndLink creates a new child row, then patches the parent's Object
// field to reference it.
func (r *FieldObjectResource) createAndLink(ctx context.Context, v value.Value) (value.Value, error) {
	childScheme := r.Scheme()
	parentScheme, parentOid, field, err := r.parent()
	if err != nil {
		return value.Null(), err
	}

	perm, err := r.Policy.Evaluate(ctx, parentScheme, scheme.ActionUpdate, value.Null(), nil)
	if err != nil {
		return value.Null(), err
	}
	if perm == scheme.Restrict {
		return value.Null(), errs.New("permission denied for field-object update", errs.Op("resource.FieldObjectResource.createAndLink"), errs.KindPermission)
	}

	if err := r.Worker.Begin(ctx); err != nil {
		return value.Null(), err
	}
	child, err := r.Adapter.Create(ctx, r.Worker, childScheme, v)
	if err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return value.Null(), err
	}
	childDict, _ := child.Dictionary()
	oidVal, _ := childDict.Get(value.KeyOid)
	childOid, _ := oidVal.Int()

	patch := value.NewDict()
	patch.Set(field.Name(), value.Int(childOid))
	if _, err := r.Adapter.Patch(ctx, r.Worker, parentScheme, parentOid, patch); err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return value.Null(), err
	}
	if err := r.Worker.End(ctx); err != nil {
		return value.Null(), err
	}
	return child, nil
}

// CreateObject implements Resource.
func (r *FieldObjectResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return r.createAndLink(ctx, v)
}

// UpdateObject implements Resource: transactional remove-and-recreate —
// the existing child (if any) is removed before the new one is created
// and linked, all within one transaction.
func (r *FieldObjectResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) {
	childScheme := r.Scheme()
	_, _, _, err := r.parent()
	if err != nil {
		return value.Null(), err
	}

	if err := r.Worker.Begin(ctx); err != nil {
		return value.Null(), err
	}
	if oid, has, err := r.childOid(ctx); err == nil && has {
		if _, err := r.Adapter.Remove(ctx, r.Worker, childScheme, oid); err != nil {
			r.Worker.Cancel(ctx)
			r.Worker.End(ctx)
			return value.Null(), err
		}
	}

	child, err := r.createAndLink(ctx, v)
	if err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return value.Null(), err
	}
	if err := r.Worker.End(ctx); err != nil {
		return value.Null(), err
	}
	return child, nil
}

// AppendObject always fails for Field-Object.
func (r *FieldObjectResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), errs.New("Field-Object does not support append", errs.Op("resource.FieldObjectResource.AppendObject"), errs.KindState)
}

// childOid reads the current child oid out of the parent's Object field.
func (r *FieldObjectResource) childOid(ctx context.Context) (int64, bool, error) {
	parentScheme, parentOid, field, err := r.parent()
	if err != nil {
		return 0, false, err
	}
	parentObj, err := r.Adapter.Select(ctx, r.Worker, &query.Query{Scheme: parentScheme, OidTarget: &parentOid})
	if err != nil {
		return 0, false, err
	}
	d, ok := parentObj.Dictionary()
	if !ok {
		return 0, false, nil
	}
	refVal, ok := d.Get(field.Name())
	if !ok || refVal.IsNull() {
		return 0, false, nil
	}
	id, ok := refVal.AsInt64()
	return id, ok, nil
}

// RemoveObject implements Resource: removes the child row and clears the
// parent's reference.
func (r *FieldObjectResource) RemoveObject(ctx context.Context) (bool, error) {
	childScheme := r.Scheme()
	parentScheme, parentOid, field, err := r.parent()
	if err != nil {
		return false, err
	}
	childOid, has, err := r.childOid(ctx)
	if err != nil {
		return false, err
	}
	if !has {
		return false, nil
	}

	if err := r.Worker.Begin(ctx); err != nil {
		return false, err
	}
	ok, err := r.Adapter.Remove(ctx, r.Worker, childScheme, childOid)
	if err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return false, err
	}
	patch := value.NewDict()
	patch.Set(field.Name(), value.Null())
	if _, err := r.Adapter.Patch(ctx, r.Worker, parentScheme, parentOid, patch); err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return false, err
	}
	if err := r.Worker.End(ctx); err != nil {
		return false, err
	}
	return ok, nil
}

// GetResultObject implements Resource: fetches the referenced child row.
func (r *FieldObjectResource) GetResultObject(ctx context.Context) (value.Value, error) {
	childOid, has, err := r.childOid(ctx)
	if err != nil {
		return value.Null(), err
	}
	if !has {
		return value.Null(), nil
	}
	return r.Adapter.Select(ctx, r.Worker, &query.Query{Scheme: r.Scheme(), OidTarget: &childOid})
}
