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
	"github.com/restforge/core/access"
	"github.com/restforge/core/adapter"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/value"
)

// New builds the Resource variant named by list.Kind(), the single point
// where the Handler Facade turns a resolved Query List into something it
// can call Prepare*/*Object on. Every variant shares the same Base, so the
// switch only needs to pick the right struct to wrap it in.
func New(list *query.List, a adapter.Adapter, w adapter.Worker, u principal.User, policy *access.Policy, filter value.Value, page Page) (Resource, error) {
	base := Base{
		List:    list,
		Adapter: a,
		Worker:  w,
		User:    u,
		Filter:  filter,
		Policy:  policy,
		Page:    page,
	}

	switch list.Kind() {
	case query.KindObject:
		return &ObjectResource{Base: base}, nil
	case query.KindResourceList, query.KindSet:
		// Set is ResourceList's read/mutate contract applied to a
		// scheme-bound relation rather than an arbitrary root query; both
		// share the same struct.
		return &ResourceListResource{Base: base}, nil
	case query.KindView:
		return &ViewResource{Base: base}, nil
	case query.KindReferenceSet:
		return &ReferenceSetResource{Base: base}, nil
	case query.KindFile:
		return &FileResource{Base: base}, nil
	case query.KindArray:
		return &ArrayResource{Base: base}, nil
	case query.KindFieldObject:
		return &FieldObjectResource{Base: base}, nil
	case query.KindSearch:
		return &SearchResource{Base: base}, nil
	default:
		return nil, errs.New("unknown query list kind", errs.Op("resource.New"), errs.KindInput)
	}
}
