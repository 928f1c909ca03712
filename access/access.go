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

// Package access implements the two-tier Access Control pipeline: a
// scheme-tier lookup that may defer to an object-tier callback, plus the
// administrative bypass and Reference-Set permission composition rule.
//
// The pipeline's "declarative gate evaluated per node, with an escape
// hatch for a custom callback" shape is grounded on directive evaluation
// (graphql/directive.go), which resolves @include/@skip per field at
// execution time rather than at parse time.
package access

import (
	"context"

	"github.com/restforge/core/principal"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// Policy evaluates Access Control for a single request. It is
// constructed once per request and carries the admin-bypass
// configuration.
type Policy struct {
	// AdminBypassEnabled turns on the admin-bypass rule.
	AdminBypassEnabled bool

	// CrossServerAuth, when non-nil, lets a request without a User
	// principal still earn admin bypass by presenting a valid
	// cross-server auth header pair.
	CrossServerAuth *CrossServerAuth

	User principal.User
}

// isAdmin reports whether the request carries admin privileges, from
// either the User principal or a validated cross-server auth header pair.
func (p *Policy) isAdmin() bool {
	if !p.AdminBypassEnabled {
		return false
	}
	if p.User != nil && p.User.IsAdmin() {
		return true
	}
	if p.CrossServerAuth != nil && p.CrossServerAuth.valid {
		return true
	}
	return false
}

// Evaluate runs the two-tier pipeline for action against s, given the
// current object value (Null for Create) and a mutable patch (nil for
// Read/Remove, where there is nothing to prune). It returns the resolved
// Permission.
func (p *Policy) Evaluate(ctx context.Context, s *scheme.Scheme, action scheme.Action, object value.Value, patch *value.Dictionary) (scheme.Permission, error) {
	if p.isAdmin() {
		return scheme.Full, nil
	}

	tier := s.SchemePermission(action)
	switch tier {
	case scheme.Full, scheme.Restrict:
		return tier, nil
	case scheme.Partial:
		if !s.HasObjectPermission() {
			// Partial with no object-tier callback configured denies by
			// construction — there is nothing to narrow it with.
			return scheme.Restrict, nil
		}
		return s.EvalObjectPermission(ctx, p.User, action, object, patch)
	default:
		return scheme.Restrict, nil
	}
}

// ReferenceSetPermission composes the Reference-Set permission: refPerms
// comes from Action Reference on the child scheme; the effective
// permission is min(refPerms, Update on the parent scheme).
func (p *Policy) ReferenceSetPermission(ctx context.Context, child, parent *scheme.Scheme, parentObject value.Value, patch *value.Dictionary) (scheme.Permission, error) {
	refPerms, err := p.Evaluate(ctx, child, scheme.ActionReference, value.Null(), nil)
	if err != nil {
		return scheme.Restrict, err
	}
	updatePerms, err := p.Evaluate(ctx, parent, scheme.ActionUpdate, parentObject, patch)
	if err != nil {
		return scheme.Restrict, err
	}
	return scheme.Min(refPerms, updatePerms), nil
}
