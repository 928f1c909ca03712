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
	"context"
	"net/http"

	"github.com/restforge/core/hydrator"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/pathresolver"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/resource"
	"github.com/restforge/core/value"
)

// Request is one transport-agnostic call into the Handler Facade: the
// verb, the scheme name plus the remaining path tokens, the decoded
// query arguments, and the body/principal a transport layer has already
// pulled off the wire. http.go builds one of these from a
// *net/http.Request.
type Request struct {
	Verb   Verb
	Scheme string
	Path   []string
	Params *Params
	Body   value.Value
	User   principal.User

	CrossServerKeyID  string
	CrossServerSecret string

	// Now is the request's Unix-microsecond timestamp, threaded in by the
	// caller rather than read from the clock: the core introduces no
	// timers of its own.
	Now int64

	// IfModifiedSince is the decoded If-Modified-Since header, in
	// microseconds; HasIfModifiedSince reports whether the header was
	// present at all.
	IfModifiedSince    int64
	HasIfModifiedSince bool
}

// defaultStatus is the verb's status absent any error. This core gives a
// Resource no way to hint a different success status — nothing in the
// Resource Family needs one — so the verb default always wins on
// success; only an error path ever overrides it, via errs.HTTPStatus.
func defaultStatus(verb Verb) int {
	switch verb {
	case Post:
		return http.StatusCreated
	case Delete:
		return http.StatusNoContent
	default:
		return http.StatusOK
	}
}

// errorResponse shapes a failed call into the same envelope a successful
// one gets; the debug channel is gated by a process-wide debug flag.
func (h *Handler) errorResponse(now int64, err error) *Response {
	var debug []string
	if h.debug {
		debug = []string{err.Error()}
	}
	env := buildEnvelope(now, value.Null(), nil, nil, []string{err.Error()}, debug)
	return &Response{Status: errs.HTTPStatus(err), Envelope: env}
}

// Handle runs one Request through the full Handler Facade pipeline:
// resolve path, build the matching Resource variant, dispatch the
// effective verb, apply conditional GET, hydrate, and shape the response
// envelope.
func (h *Handler) Handle(ctx context.Context, req *Request) (*Response, error) {
	verb := ApplyMethodOverride(req.Verb, req.Params.Method)

	s, err := h.lookupScheme(req.Scheme)
	if err != nil {
		return h.errorResponse(req.Now, err), nil
	}

	var sub *pathresolver.SubFilter
	if req.Params.HasPredicate() {
		if dict, ok := req.Params.Predicate.Dictionary(); ok {
			sub = &pathresolver.SubFilter{Dict: dict}
		}
	}

	list, err := pathresolver.Resolve(req.Path, s, sub, h.maxDepth)
	if err != nil {
		return h.errorResponse(req.Now, err), nil
	}

	if req.Params.HasResolveDepth() {
		list.SetResolveDepth(req.Params.ResolveDepth)
	} else {
		list.SetResolveDepth(h.maxDepth)
	}
	if req.Params.Token != "" {
		list.SetContinueToken(req.Params.Token)
	}

	// The `delta` query argument is the non-header equivalent of
	// If-Modified-Since, for transports
	// that cannot set request headers; it wins when both are given.
	ifModifiedSince := req.IfModifiedSince
	hasIfModifiedSince := req.HasIfModifiedSince
	if req.Params.Delta != nil {
		ifModifiedSince = *req.Params.Delta
		hasIfModifiedSince = true
	}

	policy := h.newPolicy(req.User, req.CrossServerKeyID, req.CrossServerSecret)

	worker, err := h.beginWorker(ctx)
	if err != nil {
		return h.errorResponse(req.Now, err), nil
	}

	// Base.Filter is the Reference-Set "cleanup" id filter, carried in the
	// DELETE body; every other verb leaves it unset.
	filter := value.Null()
	if verb == Delete && !req.Body.IsNull() {
		filter = req.Body
	}

	res, err := resource.New(list, h.adapter, worker, req.User, policy, filter, req.Params.Page)
	if err != nil {
		return h.errorResponse(req.Now, err), nil
	}

	if verb == Get {
		cond, err := checkConditional(ctx, list, res, ifModifiedSince, hasIfModifiedSince)
		if err != nil {
			return h.errorResponse(req.Now, err), nil
		}
		if cond.notModified {
			return &Response{Status: http.StatusNotModified, NotModified: true, LastModified: cond.mtime, HasLastMod: true}, nil
		}
	}

	result, err := h.dispatchVerb(ctx, verb, res, req)
	if err != nil {
		return h.errorResponse(req.Now, err), nil
	}

	node := hydrator.ParseResolveList(list.EffectiveScheme(), req.Params.Resolve, req.Params.Meta)
	hyd := hydrator.New(h.adapter, worker, h.maxDepth)
	hydrated, err := hyd.Hydrate(ctx, node, result)
	if err != nil {
		return h.errorResponse(req.Now, err), nil
	}

	var cursor *Cursor
	if verb == Get && list.Kind() != query.KindObject {
		total, cerr := h.adapter.Count(ctx, worker, list.Tail())
		if cerr == nil {
			cursor = NewCursor(req.Params.Page.From, countRows(hydrated), total, "")
		}
	}

	var delta *int64
	if list.DeltaApplicable() {
		if d, ok, derr := res.GetObjectMtime(ctx); derr == nil && ok {
			delta = &d
		}
	}

	resp := &Response{
		Status:   defaultStatus(verb),
		Envelope: buildEnvelope(req.Now, hydrated, delta, cursor, nil, nil),
	}
	if delta != nil {
		resp.LastModified = *delta
		resp.HasLastMod = true
	}
	return resp, nil
}

// countRows reports how many top-level rows v carries, for the cursor's
// `count` field: an Array's length, 0 for Null (nothing matched), or 1 for
// anything else (a single Object).
func countRows(v value.Value) int {
	if items, ok := v.Array(); ok {
		return len(items)
	}
	if v.IsNull() {
		return 0
	}
	return 1
}

// dispatchVerb calls the Resource Family method the effective verb maps
// to, rejecting verbs the resource variant
// declined via its Prepare* gate.
func (h *Handler) dispatchVerb(ctx context.Context, verb Verb, res resource.Resource, req *Request) (value.Value, error) {
	switch verb {
	case Get:
		return res.GetResultObject(ctx)

	case Post:
		if !res.PrepareCreate() {
			return value.Null(), errs.New("create not supported for this resource", errs.Op("handler.Handler.Handle"), errs.KindInput, http.StatusMethodNotAllowed)
		}
		return res.CreateObject(ctx, req.Body)

	case Put:
		if !res.PrepareUpdate() {
			return value.Null(), errs.New("update not supported for this resource", errs.Op("handler.Handler.Handle"), errs.KindInput, http.StatusMethodNotAllowed)
		}
		return res.UpdateObject(ctx, req.Body)

	case Patch:
		if !res.PrepareAppend() {
			return value.Null(), errs.New("append not supported for this resource", errs.Op("handler.Handler.Handle"), errs.KindInput, http.StatusMethodNotAllowed)
		}
		return res.AppendObject(ctx, req.Body)

	case Delete:
		removed, err := res.RemoveObject(ctx)
		if err != nil {
			return value.Null(), err
		}
		if !removed {
			return value.Null(), errs.New("nothing to remove", errs.Op("handler.Handler.Handle"), errs.KindInput)
		}
		return value.Bool(removed), nil

	default:
		return value.Null(), errs.New("unrecognized verb", errs.Op("handler.Handler.Handle"), errs.KindInput)
	}
}
