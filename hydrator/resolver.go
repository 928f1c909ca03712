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

// Package hydrator implements a recursive, depth- and cycle-bounded walk
// that turns an Adapter-shaped value graph
// (relations still sitting as integer placeholders) into the fully
// resolved response graph the Handler Facade emits.
//
// The node/include-graph split mirrors ExecutionNode
// (graphql/executor/execution_node.go): a node is computed once per
// field, carries its parent's context, and is revisited rather than
// rebuilt when a list of objects shares the same relation — here, a
// FieldResolver plays that role, one node per (scheme, depth) pair
// reachable from the request's `resolve` list.
package hydrator

import (
	"strings"

	"github.com/restforge/core/scheme"
)

// ResolveOptions is the bit set controlling the Hydrator's default
// collapse policy for a relation whose include set is empty.
type ResolveOptions uint8

// ResolveNone sets no collapse bit: an empty include set with no token
// defaults to omitting the relation entirely.
const ResolveNone ResolveOptions = 0

// The bits set by the `$ids`/`$files`/`$sets`/`$objects`/`$all` tokens in
// a `resolve` query argument.
const (
	ResolveFiles ResolveOptions = 1 << iota
	ResolveIds
	ResolveSets
	ResolveObjects
)

// ResolveAll is the union every bit, set by the `$all` token.
const ResolveAll = ResolveFiles | ResolveIds | ResolveSets | ResolveObjects

// Has reports whether all bits of want are set in o.
func (o ResolveOptions) Has(want ResolveOptions) bool { return o&want == want }

// MetaFlag is the bit set controlling which reserved meta keys survive
// hydration.
type MetaFlag uint8

// MetaNone retains no meta key beyond the always-kept __oid/__ts_rank,
// except that a __delta holding the bare string "delete" survives.
const MetaNone MetaFlag = 0

// The meta flags a caller passes to NewFieldResolver/ParseResolveList.
const (
	MetaAction MetaFlag = 1 << iota
	MetaTime
	MetaView
)

// Has reports whether all bits of want are set in f.
func (f MetaFlag) Has(want MetaFlag) bool { return f&want == want }

// tokenBits maps a `resolve` list token to the ResolveOptions bit(s) it
// sets.
var tokenBits = map[string]ResolveOptions{
	"$ids":     ResolveIds,
	"$files":   ResolveFiles,
	"$sets":    ResolveSets,
	"$objects": ResolveObjects,
	"$all":     ResolveAll,
}

// FieldResolver is a node tuple of `(scheme, include-set, resolves-data,
// meta-flags, depth)`. A tree of these, keyed by dotted
// path segment, is built once per request from the `resolve` query
// argument and the Query List's own ancestor chain, then threaded through
// every Hydrate call.
type FieldResolver struct {
	scheme   *scheme.Scheme
	includes map[string]bool // empty/nil means "no explicit include set"
	children map[string]*FieldResolver
	resolves ResolveOptions
	meta     MetaFlag
	depth    int
}

// NewFieldResolver builds the root node for s, with the given default
// resolve options and meta flags applied at every depth that has no more
// specific descendant node.
func NewFieldResolver(s *scheme.Scheme, resolves ResolveOptions, meta MetaFlag) *FieldResolver {
	return &FieldResolver{
		scheme:   s,
		children: make(map[string]*FieldResolver),
		resolves: resolves,
		meta:     meta,
	}
}

// Scheme is the scheme this node is bound to.
func (n *FieldResolver) Scheme() *scheme.Scheme { return n.scheme }

// Depth is this node's distance from the root.
func (n *FieldResolver) Depth() int { return n.depth }

// ResolveOptions is the default-collapse bit set in effect at this node.
func (n *FieldResolver) ResolveOptions() ResolveOptions { return n.resolves }

// MetaFlags is the meta-key bit set in effect at this node.
func (n *FieldResolver) MetaFlags() MetaFlag { return n.meta }

// HasIncludeSet reports whether the `resolve` list named any field at
// this node (an explicit include set), as opposed to falling back to the
// ResolveOptions default.
func (n *FieldResolver) HasIncludeSet() bool { return len(n.includes) > 0 }

// Includes reports whether fieldName was explicitly requested at this
// node.
func (n *FieldResolver) Includes(fieldName string) bool {
	if n.includes == nil {
		return false
	}
	return n.includes[fieldName]
}

// getField looks a field up on the bound scheme.
func (n *FieldResolver) getField(name string) (*scheme.Field, bool) {
	return n.scheme.Field(name)
}

// next returns the child Field Resolver for the named relation field: the
// returned node carries the relation's foreign scheme and a depth counter
// advanced by one. When no
// explicit child was built from the `resolve` list, a default node is
// synthesized carrying this node's ResolveOptions/meta flags forward —
// ancestor traversal implicitly extends the include graph one level at a
// time.
func (n *FieldResolver) next(fieldName string) *FieldResolver {
	if child, ok := n.children[fieldName]; ok {
		return child
	}
	f, ok := n.getField(fieldName)
	if !ok || f.Foreign() == nil {
		return nil
	}
	return &FieldResolver{
		scheme:   f.Foreign(),
		children: make(map[string]*FieldResolver),
		resolves: n.resolves,
		meta:     n.meta,
		depth:    n.depth + 1,
	}
}

// ParseResolveList builds the include graph from a comma-separated
// `resolve` query argument (e.g.
// "tags,profile.bio,$objects"), rooted at root. Dotted path segments
// (`a.b.c`) build a tree of include sets keyed by scheme field name;
// `$ids`/`$files`/`$sets`/`$objects`/`$all` tokens (in any position) set
// bits in the returned root's ResolveOptions instead of naming a field.
func ParseResolveList(root *scheme.Scheme, resolveList string, meta MetaFlag) *FieldResolver {
	var opts ResolveOptions
	node := NewFieldResolver(root, ResolveNone, meta)

	if resolveList == "" {
		return node
	}

	for _, raw := range strings.Split(resolveList, ",") {
		path := strings.TrimSpace(raw)
		if path == "" {
			continue
		}
		if bits, ok := tokenBits[path]; ok {
			opts |= bits
			continue
		}
		insertPath(node, strings.Split(path, "."))
	}

	node.resolves = opts
	propagateOptions(node, opts)
	return node
}

// insertPath walks segs down the include tree rooted at n, creating child
// nodes as needed and marking each segment's parent include set.
func insertPath(n *FieldResolver, segs []string) {
	if len(segs) == 0 {
		return
	}
	head := segs[0]
	if n.includes == nil {
		n.includes = make(map[string]bool)
	}
	n.includes[head] = true

	child := n.children[head]
	if child == nil {
		f, ok := n.getField(head)
		if !ok || f.Foreign() == nil {
			// Not a relation field (or undeclared): nothing further to
			// descend into, but the include-set marking above still stands.
			return
		}
		child = &FieldResolver{
			scheme:   f.Foreign(),
			children: make(map[string]*FieldResolver),
			resolves: n.resolves,
			meta:     n.meta,
			depth:    n.depth + 1,
		}
		n.children[head] = child
	}
	insertPath(child, segs[1:])
}

// propagateOptions pushes the root's ResolveOptions down onto every node
// built from explicit dotted paths, so a relation reached only through
// ancestor traversal (no further explicit children of its own) still
// honors the request's collapse tokens at its own depth.
func propagateOptions(n *FieldResolver, opts ResolveOptions) {
	n.resolves = opts
	for _, child := range n.children {
		propagateOptions(child, opts)
	}
}
