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

// Package handler implements the Handler Facade: the verb dispatcher
// that turns a parsed path + query arguments into a Resource Family
// call, applies conditional GET, and shapes the response envelope.
//
// Its layering mirrors the handler package
// (graphql/handler/low_level_handler.go + http_handler.go): a low-level
// Handler carries the long-lived, process-wide configuration (Scheme
// Registry, Adapter, resolve-depth ceiling) and exposes a transport-free
// Handle, the same role LLHandler.Serve plays beneath the GraphQL-specific
// query/variable parsing. A thin net/http wrapper (http.go) supplies the
// convenience layer httpHandler adds on top, without the core itself
// ever opening a socket.
package handler

import (
	"context"

	"github.com/restforge/core/access"
	"github.com/restforge/core/adapter"
	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/scheme"
)

// Verb enumerates the HTTP methods the facade dispatches, after any
// `METHOD` query override has been applied.
type Verb uint8

// The verbs the facade recognizes.
const (
	Get Verb = iota
	Post
	Put
	Patch
	Delete
)

// methodOverride names the verbs a `METHOD` query argument may substitute
// for the actual HTTP method (Get→Delete, Post→Put|Patch).
var methodOverride = map[Verb]map[string]Verb{
	Get:  {"DELETE": Delete},
	Post: {"PUT": Put, "PATCH": Patch},
}

// ApplyMethodOverride returns the effective verb after resolving a
// `METHOD` query argument (case-sensitive, matching the recognized
// literal tokens). An unrecognized or empty override leaves verb
// unchanged.
func ApplyMethodOverride(verb Verb, override string) Verb {
	if override == "" {
		return verb
	}
	if allowed, ok := methodOverride[verb]; ok {
		if v, ok := allowed[override]; ok {
			return v
		}
	}
	return verb
}

// Config configures a Handler. The Registry and Adapter are
// process-wide, constructed once.
type Config struct {
	// Registry is the process-wide Scheme Registry.
	Registry *scheme.Registry

	// Adapter is the Storage Adapter this facade drives; NewWorker is
	// called once per request to obtain a Worker.
	Adapter adapter.Adapter

	// MaxDepth is the configured ResourceResolverMaxDepth, shared by the
	// Path Resolver and the Hydrator.
	MaxDepth int

	// AdminBypassEnabled turns on the admin-bypass rule.
	AdminBypassEnabled bool

	// CrossServerPairs configures the admin-bypass header-pair scheme; nil
	// disables it.
	CrossServerPairs map[string]string

	// TokenTTLSeconds bounds how long an upload/session token survives in
	// the Handler's token cache: a small shared key-value store whose
	// entries are time-bounded.
	TokenTTLSeconds int64

	// Debug turns on the diagnostic channel, enabled by a process-wide
	// debug flag.
	Debug bool
}

// Handler is the process-wide Handler Facade. One Handler
// serves every request; all per-request state (Worker, User, Policy)
// comes from the Request passed to Handle or is built locally there.
type Handler struct {
	registry           *scheme.Registry
	adapter            adapter.Adapter
	maxDepth           int
	adminBypassEnabled bool
	crossServerPairs   map[string]string
	debug              bool
	tokens             *TokenCache
}

// New builds a Handler from cfg. Registry and Adapter are required.
func New(cfg Config) (*Handler, error) {
	if cfg.Registry == nil {
		return nil, errs.New("handler requires a Scheme Registry", errs.Op("handler.New"), errs.KindInput)
	}
	if cfg.Adapter == nil {
		return nil, errs.New("handler requires a Storage Adapter", errs.Op("handler.New"), errs.KindInput)
	}
	ttl := cfg.TokenTTLSeconds
	if ttl <= 0 {
		ttl = 300
	}
	return &Handler{
		registry:           cfg.Registry,
		adapter:            cfg.Adapter,
		maxDepth:           cfg.MaxDepth,
		adminBypassEnabled: cfg.AdminBypassEnabled,
		crossServerPairs:   cfg.CrossServerPairs,
		debug:              cfg.Debug,
		tokens:             NewTokenCache(ttl),
	}, nil
}

// Tokens exposes the Handler's token cache.
func (h *Handler) Tokens() *TokenCache { return h.tokens }

// lookupScheme resolves name against the Registry, reporting a structured
// input error for an unknown scheme rather than propagating a nil.
func (h *Handler) lookupScheme(name string) (*scheme.Scheme, error) {
	s := h.registry.Lookup(name)
	if s == nil {
		return nil, errs.New("unknown scheme \""+name+"\"", errs.Op("handler.Handler"), errs.KindInput)
	}
	return s, nil
}

// newPolicy builds the per-request access.Policy: User principals and
// sessions are per-request.
func (h *Handler) newPolicy(user principal.User, keyID, secret string) *access.Policy {
	var cross *access.CrossServerAuth
	if h.crossServerPairs != nil {
		cross = access.NewCrossServerAuth(h.crossServerPairs, keyID, secret)
	}
	return &access.Policy{
		AdminBypassEnabled: h.adminBypassEnabled,
		CrossServerAuth:    cross,
		User:               user,
	}
}

// beginWorker obtains a fresh per-request Worker from the Adapter.
func (h *Handler) beginWorker(ctx context.Context) (adapter.Worker, error) {
	return h.adapter.NewWorker(ctx)
}
