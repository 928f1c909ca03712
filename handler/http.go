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
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/value"
)

// httpVerbs maps the methods this wrapper accepts to their Verb.
var httpVerbs = map[string]Verb{
	http.MethodGet:    Get,
	http.MethodPost:   Post,
	http.MethodPut:    Put,
	http.MethodPatch:  Patch,
	http.MethodDelete: Delete,
}

// Admin-bypass header-pair names this wrapper recognizes (SPEC_FULL.md §4's
// "Admin bypass header pair" supplement leaves the concrete transport
// encoding to the embedder; these are this wrapper's choice).
const (
	crossServerKeyHeader    = "X-Admin-Key"
	crossServerSecretHeader = "X-Admin-Secret"
)

// userContextKey is the unexported key WithUser/UserFromContext use to
// thread a caller-supplied value through a context.Context rather than a
// typed parameter the generic http.Handler signature has no room for.
type userContextKey struct{}

// WithUser attaches the already-authenticated principal to ctx; an
// embedder's own authentication middleware calls this before the request
// reaches HTTPHandler.ServeHTTP.
func WithUser(ctx context.Context, user principal.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves a principal attached by WithUser, if any.
func UserFromContext(ctx context.Context) principal.User {
	u, _ := ctx.Value(userContextKey{}).(principal.User)
	return u
}

// HTTPHandler adapts a Handler to net/http, the convenience layer the
// teacher's httpHandler plays atop LLHandler (graphql/handler/http_handler.go):
// it never opens a socket itself — the embedder's own
// http.Server does that — it only implements http.Handler so one can be
// mounted on a ServeMux.
type HTTPHandler struct {
	handler *Handler
}

// NewHTTPHandler wraps h for net/http.
func NewHTTPHandler(h *Handler) *HTTPHandler {
	return &HTTPHandler{handler: h}
}

// urlValues adapts url.Values to ParamSource.
type urlValues url.Values

func (u urlValues) Get(key string) string { return url.Values(u).Get(key) }

// ServeHTTP implements http.Handler.
func (hh *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := hh.buildRequest(r)
	if err != nil {
		writeEnvelopeError(w, err, hh.handler.debug)
		return
	}

	resp, err := hh.handler.Handle(r.Context(), req)
	if err != nil {
		// Handle folds every internal failure into resp.Envelope; this
		// branch only guards against a future caller-supplied error path.
		writeEnvelopeError(w, err, hh.handler.debug)
		return
	}
	writeResponse(w, resp)
}

// buildRequest decodes one *http.Request into a transport-free Request.
func (hh *HTTPHandler) buildRequest(r *http.Request) (*Request, error) {
	verb, ok := httpVerbs[r.Method]
	if !ok {
		return nil, errs.New("unsupported HTTP method \""+r.Method+"\"", errs.Op("handler.HTTPHandler"), errs.KindInput, http.StatusMethodNotAllowed)
	}

	params, err := ParseParams(urlValues(r.URL.Query()))
	if err != nil {
		return nil, err
	}

	// This wrapper's pragmatic carrier for the `(…)` leading-paren
	// predicate: a conventional `predicate` query argument holding the same
	// JSON-like dictionary text, since net/http's query string has no
	// unkeyed-value slot to hold the literal grammar in. An embedder whose
	// transport can supply the literal form should call Params.SetPredicate
	// directly instead of going through this wrapper.
	if raw := r.URL.Query().Get("predicate"); raw != "" {
		v, decErr := value.Decode([]byte(raw))
		if decErr != nil {
			return nil, errs.New("malformed predicate argument", errs.Op("handler.HTTPHandler"), errs.KindInput, decErr)
		}
		params.SetPredicate(v)
	}

	schemeName, path := splitPath(r.URL.Path)

	body := value.Null()
	if r.Body != nil {
		data, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			return nil, errs.New("failed to read request body", errs.Op("handler.HTTPHandler"), errs.KindContent, readErr)
		}
		if len(data) > 0 {
			v, decErr := value.Decode(data)
			if decErr != nil {
				return nil, errs.New("malformed request body", errs.Op("handler.HTTPHandler"), errs.KindContent, decErr)
			}
			body = v
		}
	}

	ifModifiedSince, hasIfModifiedSince := parseIfModifiedSince(r.Header.Get("If-Modified-Since"))

	return &Request{
		Verb:               verb,
		Scheme:             schemeName,
		Path:               path,
		Params:             params,
		Body:               body,
		User:               UserFromContext(r.Context()),
		CrossServerKeyID:   r.Header.Get(crossServerKeyHeader),
		CrossServerSecret:  r.Header.Get(crossServerSecretHeader),
		Now:                time.Now().UnixMicro(),
		IfModifiedSince:    ifModifiedSince,
		HasIfModifiedSince: hasIfModifiedSince,
	}, nil
}

// splitPath turns a request path into the scheme name (the first segment)
// and the remaining path tokens the Path Resolver walks.
func splitPath(path string) (string, []string) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "", nil
	}
	segs := strings.Split(trimmed, "/")
	return segs[0], segs[1:]
}

// parseIfModifiedSince decodes the HTTP date header into microseconds.
func parseIfModifiedSince(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	t, err := http.ParseTime(raw)
	if err != nil {
		return 0, false
	}
	return t.UnixMicro(), true
}

// writeResponse serializes a Response to w: the envelope as JSON, plus the
// status and Last-Modified header the facade computed.
func writeResponse(w http.ResponseWriter, resp *Response) {
	if resp.HasLastMod {
		w.Header().Set("Last-Modified", time.UnixMicro(resp.LastModified).UTC().Format(http.TimeFormat))
	}
	if resp.NotModified {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	data, err := value.Encode(resp.Envelope)
	if err != nil {
		writeEnvelopeError(w, err, false)
		return
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(data)
}

// writeEnvelopeError shapes a request-decoding failure (one that never
// reached Handle) into the same envelope shape a Handle-level error gets.
func writeEnvelopeError(w http.ResponseWriter, err error, debug bool) {
	var debugMsgs []string
	if debug {
		debugMsgs = []string{err.Error()}
	}
	env := buildEnvelope(time.Now().UnixMicro(), value.Null(), nil, nil, []string{err.Error()}, debugMsgs)
	data, encErr := value.Encode(env)
	status := errs.HTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr == nil {
		_, _ = w.Write(data)
	}
}

// ServeMulti is the net/http entry point for the multi-request companion
// handler: the body is a JSON dictionary of path to
// query-string entries.
func (hh *HTTPHandler) ServeMulti(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeEnvelopeError(w, errs.New("failed to read request body", errs.Op("handler.HTTPHandler.ServeMulti"), errs.KindContent, err), hh.handler.debug)
		return
	}
	body, err := value.Decode(data)
	if err != nil {
		writeEnvelopeError(w, errs.New("malformed request body", errs.Op("handler.HTTPHandler.ServeMulti"), errs.KindContent, err), hh.handler.debug)
		return
	}
	dict, ok := body.Dictionary()
	if !ok {
		writeEnvelopeError(w, errs.New("multi-request body must be a dictionary of path to query", errs.Op("handler.HTTPHandler.ServeMulti"), errs.KindInput), hh.handler.debug)
		return
	}

	reqs := make(MultiRequest, dict.Len())
	for _, path := range dict.Keys() {
		v, _ := dict.Get(path)
		q, _ := v.String()
		reqs[path] = q
	}

	resp := hh.handler.HandleMulti(
		r.Context(),
		reqs,
		UserFromContext(r.Context()),
		r.Header.Get(crossServerKeyHeader),
		r.Header.Get(crossServerSecretHeader),
		time.Now().UnixMicro(),
	)
	writeResponse(w, resp)
}
