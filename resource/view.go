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
	"github.com/restforge/core/value"
)

// ViewResource is the read-only materialized-set variant:
// delta-aware by construction, with its per-item tag being the parent
// oid plus the view field id rather than the scheme's own delta stream.
type ViewResource struct {
	Base
}

var _ Resource = (*ViewResource)(nil)

// PrepareCreate is always false for View.
func (r *ViewResource) PrepareCreate() bool { return false }
func (r *ViewResource) PrepareUpdate() bool { return false }
func (r *ViewResource) PrepareAppend() bool { return false }

func (r *ViewResource) unsupported(op string) error {
	return errs.New("View is read-only: "+op+" is not supported", errs.Op("resource.ViewResource."+op), errs.KindState)
}

func (r *ViewResource) RemoveObject(ctx context.Context) (bool, error) {
	return false, r.unsupported("RemoveObject")
}

func (r *ViewResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), r.unsupported("CreateObject")
}

func (r *ViewResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), r.unsupported("UpdateObject")
}

func (r *ViewResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), r.unsupported("AppendObject")
}

// GetResultObject implements Resource: performs the Query List against
// the materialized view.
func (r *ViewResource) GetResultObject(ctx context.Context) (value.Value, error) {
	return r.Adapter.PerformQueryList(ctx, r.List, r.Page.Count, false, r.List.FieldName())
}

// ViewDelta returns the view's own delta timestamp — the parent oid plus
// the view field, its per-item delta tag.
func (r *ViewResource) ViewDelta(ctx context.Context) (int64, error) {
	items := r.List.Items()
	parent := items[len(items)-2]
	if parent.OidTarget == nil {
		return 0, errs.New("view resource requires a single-object parent", errs.Op("resource.ViewResource.ViewDelta"), errs.KindState)
	}
	return r.Adapter.GetDeltaValue(ctx, parent.Scheme, r.List.FieldName(), *parent.OidTarget)
}
