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
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// ResourceListResource is the multi-row variant backed by an arbitrary
// query: `select`/`order`/`all` style paths. It supports
// creating a new row, and mass update/append/remove over the resolved
// id set.
type ResourceListResource struct {
	Base
}

var _ Resource = (*ResourceListResource)(nil)

func (r *ResourceListResource) PrepareCreate() bool { return true }
func (r *ResourceListResource) PrepareUpdate() bool { return true }
func (r *ResourceListResource) PrepareAppend() bool { return true }

// RemoveObject implements Resource: mass-delete over the resolved ids.
func (r *ResourceListResource) RemoveObject(ctx context.Context) (bool, error) {
	return r.massRemove(ctx, scheme.ActionRemove)
}

// CreateObject implements Resource: inserts a new row under Create
// permission.
func (r *ResourceListResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) {
	s := r.Scheme()
	perm, err := r.Policy.Evaluate(ctx, s, scheme.ActionCreate, value.Null(), nil)
	if err != nil {
		return value.Null(), err
	}
	if perm == scheme.Restrict {
		return value.Null(), errs.New("permission denied for create on \""+s.Name()+"\"", errs.Op("resource.ResourceListResource.CreateObject"), errs.KindPermission)
	}

	if err := r.Worker.Begin(ctx); err != nil {
		return value.Null(), err
	}
	created, err := r.Adapter.Create(ctx, r.Worker, s, v)
	if err != nil {
		r.Worker.Cancel(ctx)
		r.Worker.End(ctx)
		return value.Null(), err
	}
	if err := r.Worker.End(ctx); err != nil {
		return value.Null(), err
	}
	return created, nil
}

// UpdateObject implements Resource: mass-update (PUT) over the resolved
// ids.
func (r *ResourceListResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) {
	patch, _ := v.Dictionary()
	return r.massUpdate(ctx, scheme.ActionUpdate, patch, func(ctx context.Context, s *scheme.Scheme, id int64) (value.Value, error) {
		return r.Adapter.Save(ctx, r.Worker, s, id, v, s.FieldNames())
	})
}

// AppendObject implements Resource: mass-update (PATCH) over the
// resolved ids.
func (r *ResourceListResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	patch, ok := v.Dictionary()
	if !ok {
		return value.Null(), errs.New("append payload must be a dictionary patch", errs.Op("resource.ResourceListResource.AppendObject"), errs.KindInput)
	}
	return r.massUpdate(ctx, scheme.ActionAppend, patch, func(ctx context.Context, s *scheme.Scheme, id int64) (value.Value, error) {
		return r.Adapter.Patch(ctx, r.Worker, s, id, patch)
	})
}

// GetResultObject implements Resource: performs the Query List and
// returns the matching rows.
func (r *ResourceListResource) GetResultObject(ctx context.Context) (value.Value, error) {
	return r.Adapter.PerformQueryList(ctx, r.List, r.Page.Count, false, "")
}

// SetResource is the forward-collection variant: a Set field (with an
// owner back-reference) descended into from a single parent object. It
// adds no methods of its own: Create/Update/Append are
// ResourceListResource's unchanged, and New serves KindSet with a plain
// ResourceListResource rather than a SetResource.
type SetResource struct {
	ResourceListResource
}

var _ Resource = (*SetResource)(nil)
