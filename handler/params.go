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

package handler

import (
	"strconv"

	"github.com/restforge/core/hydrator"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/resource"
	"github.com/restforge/core/value"
)

// Params is the decoded form of the recognized query arguments,
// independent of any particular transport's query-string encoding.
type Params struct {
	// Resolve is the raw `resolve` argument, parsed into a Field Resolver
	// by hydrator.ParseResolveList once the effective scheme is known.
	Resolve string

	// ResolveDepth is the raw `resolveDepth` argument; HasResolveDepth
	// reports whether it was given at all. When it was not, Handle sets
	// the Query List's resolve depth to the configured MaxDepth.
	ResolveDepth int
	hasDepth     bool

	Page resource.Page

	// Method is the raw `METHOD` override argument.
	Method string

	// Token is the `token` query argument. Handle passes it unexamined to
	// the Query List as its continue token; nothing in the core verifies
	// it as a session token.
	Token string

	// Delta is the raw `delta` argument in microseconds; nil means absent.
	Delta *int64

	// Predicate is the decoded leading-paren value, when the path carried
	// one.
	Predicate value.Value
	hasPredicate bool

	// Meta controls which reserved keys the Hydrator retains. ParseParams
	// decodes no argument into it and leaves it at MetaNone; a caller may
	// set it directly.
	Meta hydrator.MetaFlag
}

// ParamSource is the minimal transport-agnostic accessor Params needs;
// net/http's url.Values and a plain map[string]string both satisfy it via
// the adapters in http.go.
type ParamSource interface {
	Get(key string) string
}

// ParseParams decodes the recognized query arguments from src. It never
// errors on a missing argument; malformed numeric arguments are
// reported as input errors.
func ParseParams(src ParamSource) (*Params, error) {
	p := &Params{
		Resolve: src.Get("resolve"),
		Method:  src.Get("METHOD"),
		Token:   src.Get("token"),
	}

	if raw := src.Get("resolveDepth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errs.New("resolveDepth must be an integer", errs.Op("handler.ParseParams"), errs.KindInput)
		}
		p.ResolveDepth = n
		p.hasDepth = true
	}

	if raw := src.Get("pageFrom"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errs.New("pageFrom must be an integer", errs.Op("handler.ParseParams"), errs.KindInput)
		}
		if n != 0 {
			p.Page.From = n
		}
	}

	if raw := src.Get("pageCount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errs.New("pageCount must be an integer", errs.Op("handler.ParseParams"), errs.KindInput)
		}
		if n != 0 {
			p.Page.Count = n
		}
	}

	if raw := src.Get("delta"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errs.New("delta must be an integer", errs.Op("handler.ParseParams"), errs.KindInput)
		}
		p.Delta = &n
	}

	return p, nil
}

// HasResolveDepth reports whether resolveDepth was explicitly given.
func (p *Params) HasResolveDepth() bool { return p.hasDepth }

// SetPredicate records a decoded leading-paren predicate value; called
// by the Path Resolver's caller once the path's sub-filter segment, if
// any, has been parsed.
func (p *Params) SetPredicate(v value.Value) {
	p.Predicate = v
	p.hasPredicate = true
}

// HasPredicate reports whether a leading-paren predicate was supplied.
func (p *Params) HasPredicate() bool { return p.hasPredicate }
