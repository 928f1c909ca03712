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

// SearchResource performs a full-text query through the Adapter, then
// optionally generates per-object headlines (snippets) over named fields.
type SearchResource struct {
	Base

	// Headline, when non-nil, requests snippet generation for the named
	// fields after the query executes.
	Headline *HeadlineConfig
}

var _ Resource = (*SearchResource)(nil)

func (r *SearchResource) PrepareCreate() bool { return false }
func (r *SearchResource) PrepareUpdate() bool { return false }
func (r *SearchResource) PrepareAppend() bool { return false }

func (r *SearchResource) unsupported(op string) error {
	return errs.New("Search is read-only: "+op+" is not supported", errs.Op("resource.SearchResource."+op), errs.KindState)
}

func (r *SearchResource) RemoveObject(ctx context.Context) (bool, error) {
	return false, r.unsupported("RemoveObject")
}

func (r *SearchResource) CreateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), r.unsupported("CreateObject")
}

func (r *SearchResource) UpdateObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), r.unsupported("UpdateObject")
}

func (r *SearchResource) AppendObject(ctx context.Context, v value.Value) (value.Value, error) {
	return value.Null(), r.unsupported("AppendObject")
}

// GetResultObject implements Resource: performs the full-text query and,
// if a HeadlineConfig was supplied, attaches `__headlines` to every
// result row.
func (r *SearchResource) GetResultObject(ctx context.Context) (value.Value, error) {
	result, err := r.Adapter.PerformQueryList(ctx, r.List, r.Page.Count, false, "")
	if err != nil {
		return value.Null(), err
	}
	if r.Headline == nil {
		return result, nil
	}

	query := r.List.Tail().FullText
	if query == nil {
		return result, nil
	}

	rows, ok := result.Array()
	if !ok {
		rows = []value.Value{result}
	}
	out := make([]value.Value, len(rows))
	for i, row := range rows {
		out[i] = attachHeadlines(row, query.Text, r.Headline)
	}
	if _, ok := result.Array(); ok {
		return value.NewArray(out), nil
	}
	return out[0], nil
}

func attachHeadlines(row value.Value, searchText string, cfg *HeadlineConfig) value.Value {
	d, ok := row.Dictionary()
	if !ok {
		return row
	}
	headlines := value.NewDict()
	for _, field := range cfg.Fields {
		fieldVal, ok := d.Get(field)
		if !ok {
			continue
		}
		text, ok := fieldVal.String()
		if !ok {
			continue
		}
		headlines.Set(field, value.String(GenerateHeadline(text, searchText, cfg)))
	}
	out := d.Clone()
	out.Set(value.KeyHeadline, value.NewDictionary(headlines))
	return value.NewDictionary(out)
}
