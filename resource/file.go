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

// FileResource is the content-property variant for File/Image fields
//: create and update are unified into a single upload
// path, so both verbs route to the same underlying field write.
type FileResource struct {
	Base
}

var _ Resource = (*FileResource)(nil)

func (r *FileResource) PrepareCreate() bool { return true }
func (r *FileResource) PrepareUpdate() bool { return true }

// PrepareAppend is false for File.
func (r *FileResource) PrepareAppend() bool { return false }

func (r *FileResource) parentOid() (int64, error) {
	items := r.List.Items()
	last := items[len(items)-1]
	if last.OidTarget == nil {
		return 0, errs.New("file resource requires a single-object parent", errs.Op("resource.FileResource"), errs.KindState)
	}
	return *last.OidTarget, nil
}

func (r *FileResource) upload(ctx context.Context, v value.Value) (value.Value, error) {
	s := r.Scheme()
	perm, err := r.Policy.Evaluate(ctx, s, scheme.ActionUpdate, value.Null(), nil)
	if err != nil {
		return value.Null(), err
	}
	if perm == scheme.Restrict {
		return value.Null(), errs.New("permission denied for file upload", errs.Op("resource.FileResource.upload"), errs.KindPermission)
	}
	oid, err := r.parentOid()
	if err != nil {
		return value.Null(), err
	}
	if err := r.Worker.Begin(ctx); err != nil {
		return value.Null(), err
	}
	updated, err := r.Adapter.Field(ctx, r.Worker, adapter.FieldSet, s, oid, r.List.FieldName(), v)
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

// CreateObject implements Resource: a fresh upload.
func (r *FileResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) { return r.upload(ctx, v) }

// UpdateObject implements Resource: replaces the existing upload.
func (r *FileResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) { return r.upload(ctx, v) }

// AppendObject always fails for File.
func (r *FileResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), errs.New("File does not support append", errs.Op("resource.FileResource.AppendObject"), errs.KindState)
}

// RemoveObject implements Resource: clears the field.
func (r *FileResource) RemoveObject(ctx context.Context) (bool, error) {
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

// GetResultObject implements Resource: fetches the field's content
// through the Adapter's FieldGet and returns it as the Adapter gives it.
func (r *FileResource) GetResultObject(ctx context.Context) (value.Value, error) {
	s := r.Scheme()
	oid, err := r.parentOid()
	if err != nil {
		return value.Null(), err
	}
	return r.Adapter.Field(ctx, r.Worker, adapter.FieldGet, s, oid, r.List.FieldName(), value.Null())
}
