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

// Package resource implements the polymorphic Resource Family: one
// interface, one struct per variant, sharing common mass-update/
// mass-delete machinery through composition rather than inheritance —
// the same shape used by the Object, Interface, and Union
// GraphQL types (graphql/object.go, graphql/interface.go,
// graphql/union.go all implement the same `Type`/`graphql.Type` contract
// via a shared `typeCreator`-style base).
package resource

import (
	"context"

	"github.com/restforge/core/access"
	"github.com/restforge/core/adapter"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// Page carries the pagination parameters the Handler Facade decodes from
// `pageFrom`/`pageCount`.
type Page struct {
	From  int
	Count int
}

// Resource is the contract every variant implements.
type Resource interface {
	// PrepareCreate reports whether a POST payload can be processed.
	PrepareCreate() bool

	// PrepareUpdate reports whether a PUT payload can be processed.
	PrepareUpdate() bool

	// PrepareAppend reports whether a PATCH payload can be processed.
	PrepareAppend() bool

	// RemoveObject executes DELETE; returns whether anything was removed.
	RemoveObject(ctx context.Context) (bool, error)

	// CreateObject consumes a POST payload (plus any pre-uploaded file
	// placeholders already folded into v) and returns the new object(s).
	CreateObject(ctx context.Context, v value.Value) (value.Value, error)

	// UpdateObject consumes a PUT payload and returns the updated
	// object(s).
	UpdateObject(ctx context.Context, v value.Value) (value.Value, error)

	// AppendObject consumes a PATCH payload and returns the updated
	// object(s).
	AppendObject(ctx context.Context, v value.Value) (value.Value, error)

	// GetResultObject executes GET and returns the (not yet hydrated)
	// result value.
	GetResultObject(ctx context.Context) (value.Value, error)

	// GetObjectMtime returns the effective object's modification
	// timestamp in microseconds, for Object resources only; other
	// variants return 0, false.
	GetObjectMtime(ctx context.Context) (int64, bool, error)

	// GetMaxRequestSize / GetMaxVarSize / GetMaxFileSize surface the
	// effective scheme's request-size budget.
	GetMaxRequestSize() int64
	GetMaxVarSize() int64
	GetMaxFileSize() int64
}

// Base is the shared state every variant embeds: the resolved Query List,
// the per-request Adapter/Worker pair, the optional User principal, the
// pre-seeded filter value, the Access Control policy, and pagination.
// Mass-update/mass-delete and size-budget helpers live here by
// composition rather than duplicated per variant.
type Base struct {
	List    *query.List
	Adapter adapter.Adapter
	Worker  adapter.Worker
	User    principal.User
	Filter  value.Value
	Policy  *access.Policy
	Page    Page
}

// Scheme is the effective scheme of the bound Query List's tail item.
func (b *Base) Scheme() *scheme.Scheme { return b.List.EffectiveScheme() }

// GetMaxRequestSize implements Resource.
func (b *Base) GetMaxRequestSize() int64 { return b.Scheme().Budget().MaxRequestSize }

// GetMaxVarSize implements Resource.
func (b *Base) GetMaxVarSize() int64 { return b.Scheme().Budget().MaxVarSize }

// GetMaxFileSize implements Resource.
func (b *Base) GetMaxFileSize() int64 { return b.Scheme().Budget().MaxFileSize }

// GetObjectMtime's default: only meaningful for single-object variants,
// which override it.
func (b *Base) GetObjectMtime(ctx context.Context) (int64, bool, error) { return 0, false, nil }

// resolveIds runs the bound Query List through the Adapter to get the set
// of ids this resource's action applies to.
func (b *Base) resolveIds(ctx context.Context, forUpdate bool) ([]int64, error) {
	return b.Adapter.PerformQueryListForIds(ctx, b.List, b.Page.Count)
}

// massRemove applies the mass-delete rule: all-or-none only when the
// resolved id set has size 1; otherwise every deletion is independent and
// the overall result is true whenever the list is non-empty.
func (b *Base) massRemove(ctx context.Context, action scheme.Action) (bool, error) {
	ids, err := b.resolveIds(ctx, true)
	if err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return false, nil
	}

	s := b.Scheme()
	if len(ids) == 1 {
		return b.removeOne(ctx, s, ids[0], action)
	}

	any := false
	for _, id := range ids {
		ok, err := b.removeOne(ctx, s, id, action)
		if err != nil {
			return false, err
		}
		if ok {
			any = true
		}
	}
	return any || len(ids) > 0, nil
}

func (b *Base) removeOne(ctx context.Context, s *scheme.Scheme, id int64, action scheme.Action) (bool, error) {
	if err := b.Worker.Begin(ctx); err != nil {
		return false, err
	}
	perm, err := b.Policy.Evaluate(ctx, s, action, value.Null(), nil)
	if err != nil {
		b.Worker.Cancel(ctx)
		b.Worker.End(ctx)
		return false, err
	}
	if perm == scheme.Restrict {
		b.Worker.Cancel(ctx)
		b.Worker.End(ctx)
		return false, errs.New("permission denied for remove on \""+s.Name()+"\"", errs.Op("resource.Base.removeOne"), errs.KindPermission)
	}
	ok, err := b.Adapter.Remove(ctx, b.Worker, s, id)
	if err != nil {
		b.Worker.Cancel(ctx)
		b.Worker.End(ctx)
		return false, err
	}
	if endErr := b.Worker.End(ctx); endErr != nil {
		return false, endErr
	}
	return ok, nil
}

// massUpdate runs fn against every resolved id, in list order, inside
// independent nested transactions. Ids whose object-tier permission
// denies the action are skipped rather than aborting the batch.
func (b *Base) massUpdate(ctx context.Context, action scheme.Action, patch *value.Dictionary, apply func(ctx context.Context, s *scheme.Scheme, id int64) (value.Value, error)) (value.Value, error) {
	ids, err := b.resolveIds(ctx, true)
	if err != nil {
		return value.Null(), err
	}
	s := b.Scheme()

	results := make([]value.Value, 0, len(ids))
	for _, id := range ids {
		if err := b.Worker.Begin(ctx); err != nil {
			return value.Null(), err
		}

		current, selErr := b.Adapter.Select(ctx, b.Worker, &query.Query{Scheme: s, OidTarget: &id})
		if selErr != nil {
			b.Worker.Cancel(ctx)
			b.Worker.End(ctx)
			return value.Null(), selErr
		}

		objPatch := patch
		if objPatch != nil {
			objPatch = objPatch.Clone()
		}
		perm, permErr := b.Policy.Evaluate(ctx, s, action, current, objPatch)
		if permErr != nil {
			b.Worker.Cancel(ctx)
			b.Worker.End(ctx)
			return value.Null(), permErr
		}
		if perm == scheme.Restrict {
			// Scenario 6: skip this id, leave it untouched, continue the
			// batch.
			b.Worker.End(ctx)
			continue
		}
		access.StripProtected(s, objPatch)

		updated, applyErr := apply(ctx, s, id)
		if applyErr != nil {
			b.Worker.Cancel(ctx)
			b.Worker.End(ctx)
			return value.Null(), applyErr
		}
		if err := b.Worker.End(ctx); err != nil {
			return value.Null(), err
		}
		results = append(results, updated)
	}

	return value.NewArray(results), nil
}
