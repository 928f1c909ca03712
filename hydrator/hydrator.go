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

package hydrator

import (
	"context"
	"strconv"

	"github.com/restforge/core/adapter"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// Hydrator walks a Resource's raw result value (oids still sitting as
// integer placeholders in relation fields) into the fully resolved
// response graph, fetching each relation lazily through the Storage
// Adapter and breaking cycles with a request-scoped "seen" set.
//
// One Hydrator is constructed per request, the same lifecycle as a
// dataloader.Manager built once per execution and discarded at response
// completion (dataloader/manager.go); the "seen" set plays the role of a
// dataloader cache of already-resolved keys (dataloader/cache_map.go),
// except it remembers identity rather than results — a second reference
// to an already emitted object collapses instead of being fetched again.
type Hydrator struct {
	Adapter  adapter.Adapter
	Worker   adapter.Worker
	MaxDepth int

	seen map[string]bool
}

// New builds a Hydrator bound to a single request's Adapter/Worker pair.
func New(a adapter.Adapter, w adapter.Worker, maxDepth int) *Hydrator {
	return &Hydrator{Adapter: a, Worker: w, MaxDepth: maxDepth, seen: make(map[string]bool)}
}

func seenKey(s *scheme.Scheme, oid int64) string {
	return s.Name() + ":" + strconv.FormatInt(oid, 10)
}

func (h *Hydrator) isSeen(s *scheme.Scheme, oid int64) bool { return h.seen[seenKey(s, oid)] }

func (h *Hydrator) markSeen(s *scheme.Scheme, oid int64) { h.seen[seenKey(s, oid)] = true }

// collapseOid builds the "{<oid>}" collapse form the cycle-breaking rule
// emits: a single-key dictionary naming only the oid, used where the slot
// normally holds a full object.
func collapseOid(oid int64) value.Value {
	d := value.NewDict()
	d.Set(value.KeyOid, value.Int(oid))
	return value.NewDictionary(d)
}

// Hydrate is the Hydrator's entry point: node is the Field Resolver bound
// to v's scheme, at node's own depth. v is typically the Dictionary or
// Array a Resource's GetResultObject returned.
func (h *Hydrator) Hydrate(ctx context.Context, node *FieldResolver, v value.Value) (value.Value, error) {
	return h.hydrateValue(ctx, node, v, node.Depth())
}

func (h *Hydrator) hydrateValue(ctx context.Context, node *FieldResolver, v value.Value, depth int) (value.Value, error) {
	switch v.Kind() {
	case value.KindArray:
		items, _ := v.Array()
		out := make([]value.Value, 0, len(items))
		for _, item := range items {
			hv, err := h.hydrateValue(ctx, node, item, depth)
			if err != nil {
				return value.Null(), err
			}
			out = append(out, hv)
		}
		return value.NewArray(out), nil
	case value.KindDictionary:
		d, _ := v.Dictionary()
		hd, err := h.hydrateDict(ctx, node, d, depth)
		if err != nil {
			return value.Null(), err
		}
		return value.NewDictionary(hd), nil
	default:
		return v, nil
	}
}

// hydrateDict runs the hydration pipeline's four numbered steps against a
// single object's dictionary.
func (h *Hydrator) hydrateDict(ctx context.Context, node *FieldResolver, d *value.Dictionary, depth int) (*value.Dictionary, error) {
	s := node.Scheme()
	out := value.NewDict()

	// Step 1 (prune): always-kept meta keys, then record the oid.
	oidVal, hasOid := d.Get(value.KeyOid)
	var oid int64
	if hasOid {
		oid, _ = oidVal.Int()
		h.markSeen(s, oid)
		out.Set(value.KeyOid, oidVal)
	}
	if rank, ok := d.Get(value.KeyTsRank); ok {
		out.Set(value.KeyTsRank, rank)
	}
	h.emitDelta(d, out, node)
	h.emitViews(d, out, node)

	for _, name := range s.FieldNames() {
		f, _ := s.Field(name)
		if f.Flags().Has(scheme.Protected) {
			continue
		}

		switch f.Type() {
		case scheme.Object, scheme.Set, scheme.View:
			if err := h.hydrateRelationField(ctx, node, s, oid, hasOid, d, out, f, depth); err != nil {
				return nil, err
			}
		case scheme.Array:
			h.hydrateArrayField(ctx, s, oid, hasOid, out, f, node)
		case scheme.File, scheme.Image:
			h.hydrateFileField(ctx, s, oid, hasOid, out, f, node, depth)
		case scheme.FullTextView:
			// A virtual full-text index, never emitted as a value of its own.
			continue
		default:
			h.copyLeaf(d, out, f, node)
		}
	}

	return out, nil
}

// whitelisted reports whether name survives step 1's pruning: kept
// unconditionally when the node carries no explicit include set (the
// default, flat emission), otherwise kept only when named.
func (h *Hydrator) whitelisted(node *FieldResolver, name string) bool {
	if !node.HasIncludeSet() {
		return true
	}
	return node.Includes(name)
}

// copyLeaf copies a scalar (or Extra/Data sub-dictionary) field through,
// applying step 4's Uuid transform when declared.
func (h *Hydrator) copyLeaf(d, out *value.Dictionary, f *scheme.Field, node *FieldResolver) {
	name := f.Name()
	if !h.whitelisted(node, name) {
		return
	}
	v, ok := d.Get(name)
	if !ok {
		return
	}
	if f.Transform() == scheme.UuidTransform {
		if b, ok := v.Bytes(); ok {
			if formatted, err := value.FormatUuid(b); err == nil {
				out.Set(name, value.String(formatted))
				return
			}
		}
	}
	out.Set(name, v)
}

// relationDefaultBit names the ResolveOptions bit that governs a relation
// field's default-collapse policy when it has no explicit include set.
func relationDefaultBit(t scheme.FieldType) ResolveOptions {
	if t == scheme.Object {
		return ResolveObjects
	}
	return ResolveSets
}

// hydrateRelationField implements step 2/3 for Object/Set/View fields:
// materialize if whitelisted (explicitly, or via the ResolveOptions
// default), collapse already-seen targets, and recurse into freshly
// materialized objects while depth stays below MaxDepth: resolution depth
// never exceeds the configured maximum.
func (h *Hydrator) hydrateRelationField(ctx context.Context, node *FieldResolver, s *scheme.Scheme, oid int64, hasOid bool, d, out *value.Dictionary, f *scheme.Field, depth int) error {
	name := f.Name()
	explicit := node.Includes(name)
	if node.HasIncludeSet() && !explicit {
		return nil
	}
	if !explicit && !node.ResolveOptions().Has(relationDefaultBit(f.Type())) {
		return nil
	}

	raw, hasRaw := d.Get(name)

	if f.Type() == scheme.Object {
		return h.hydrateObjectField(ctx, node, out, f, raw, hasRaw, depth)
	}

	// Set / View: a missing value stands in for "fetch on resolve",
	// represented by the parent's own oid.
	if !hasRaw || raw.IsNull() {
		if !hasOid {
			out.Set(name, value.Null())
			return nil
		}
		raw = value.Int(oid)
	}
	if depth >= h.MaxDepth {
		out.Set(name, raw)
		return nil
	}

	idsOnly := !explicit && node.ResolveOptions().Has(ResolveIds)
	if parentOid, ok := raw.Int(); ok {
		fetched, err := h.fetchCollection(ctx, s, parentOid, f, idsOnly)
		if err != nil {
			return err
		}
		raw = fetched
	}
	if idsOnly {
		out.Set(name, raw)
		return nil
	}

	child := node.next(name)
	hv, err := h.hydrateSetItems(ctx, child, f.Foreign(), raw, depth+1)
	if err != nil {
		return err
	}
	out.Set(name, hv)
	return nil
}

func (h *Hydrator) hydrateObjectField(ctx context.Context, node *FieldResolver, out *value.Dictionary, f *scheme.Field, raw value.Value, hasRaw bool, depth int) error {
	name := f.Name()
	if !hasRaw || raw.IsNull() {
		out.Set(name, value.Null())
		return nil
	}
	if depth >= h.MaxDepth {
		out.Set(name, raw)
		return nil
	}
	if dict, ok := raw.Dictionary(); ok {
		child := node.next(name)
		hv, err := h.hydrateValue(ctx, child, value.NewDictionary(dict), depth+1)
		if err != nil {
			return err
		}
		out.Set(name, hv)
		return nil
	}
	oid, ok := raw.Int()
	if !ok {
		out.Set(name, raw)
		return nil
	}
	if h.isSeen(f.Foreign(), oid) {
		out.Set(name, collapseOid(oid))
		return nil
	}
	fetched, err := h.Adapter.Select(ctx, h.Worker, &query.Query{Scheme: f.Foreign(), OidTarget: &oid})
	if err != nil {
		return err
	}
	child := node.next(name)
	hv, err := h.hydrateValue(ctx, child, fetched, depth+1)
	if err != nil {
		return err
	}
	out.Set(name, hv)
	return nil
}

// fetchCollection runs a synthetic two-item Query List — root item bound
// to parentOid, tail item bound in via f — through the Adapter, mirroring
// the Query List shape the Path Resolver builds for a Set/View segment.
func (h *Hydrator) fetchCollection(ctx context.Context, parent *scheme.Scheme, parentOid int64, f *scheme.Field, idsOnly bool) (value.Value, error) {
	list := query.New(parent, query.KindSet, h.MaxDepth)
	list.Tail().OidTarget = &parentOid
	if err := list.Push(f, f.Foreign()); err != nil {
		return value.Null(), err
	}

	if idsOnly {
		ids, err := h.Adapter.PerformQueryListForIds(ctx, list, 0)
		if err != nil {
			return value.Null(), err
		}
		items := make([]value.Value, len(ids))
		for i, id := range ids {
			items[i] = value.Int(id)
		}
		return value.NewArray(items), nil
	}
	return h.Adapter.PerformQueryList(ctx, list, 0, false, "")
}

// hydrateSetItems implements step 2/3's per-item collapse for a Set/View
// collection: an already-seen object collapses to its bare oid; everything
// else recurses at depth+1.
func (h *Hydrator) hydrateSetItems(ctx context.Context, node *FieldResolver, foreign *scheme.Scheme, v value.Value, depth int) (value.Value, error) {
	items, ok := v.Array()
	if !ok {
		return h.hydrateValue(ctx, node, v, depth)
	}

	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		if _, ok := item.Int(); ok {
			out = append(out, item)
			continue
		}
		d, ok := item.Dictionary()
		if !ok {
			out = append(out, item)
			continue
		}
		if oidVal, hasOid := d.Get(value.KeyOid); hasOid {
			if oid, ok := oidVal.Int(); ok && h.isSeen(foreign, oid) {
				out = append(out, oidVal)
				continue
			}
		}
		hv, err := h.hydrateValue(ctx, node, item, depth)
		if err != nil {
			return value.Null(), err
		}
		out = append(out, hv)
	}
	return value.NewArray(out), nil
}

// hydrateArrayField implements step 2's "Array: fetch the scalar array
// directly" — Array fields are always materialized when whitelisted;
// there is no ResolveOptions gate and no recursion since their elements
// are scalars, not relations.
func (h *Hydrator) hydrateArrayField(ctx context.Context, s *scheme.Scheme, oid int64, hasOid bool, out *value.Dictionary, f *scheme.Field, node *FieldResolver) {
	name := f.Name()
	if !h.whitelisted(node, name) || !hasOid {
		return
	}
	v, err := h.Adapter.Field(ctx, h.Worker, adapter.FieldGet, s, oid, name, value.Null())
	if err != nil {
		return
	}
	out.Set(name, v)
}

// hydrateFileField implements step 2's "File/Image: fetch as a
// sub-dictionary; drop null leaves" plus step 3's max-depth null-drop
// rule.
func (h *Hydrator) hydrateFileField(ctx context.Context, s *scheme.Scheme, oid int64, hasOid bool, out *value.Dictionary, f *scheme.Field, node *FieldResolver, depth int) {
	name := f.Name()
	explicit := node.Includes(name)
	if node.HasIncludeSet() && !explicit {
		return
	}
	if !explicit && !node.ResolveOptions().Has(ResolveFiles) {
		return
	}
	if !hasOid {
		return
	}
	v, err := h.Adapter.Field(ctx, h.Worker, adapter.FieldGet, s, oid, name, value.Null())
	if err != nil {
		return
	}
	if v.IsNull() && depth >= h.MaxDepth {
		return
	}
	if dict, ok := v.Dictionary(); ok {
		pruned := value.NewDict()
		dict.Range(func(key string, leaf value.Value) bool {
			if !leaf.IsNull() {
				pruned.Set(key, leaf)
			}
			return true
		})
		v = value.NewDictionary(pruned)
	}
	out.Set(name, v)
}

// emitDelta applies the __delta expansion policy: with no delta meta
// requested, an existing tombstone marker survives as the bare string
// "delete" and anything else is dropped; otherwise the Action/Time bits
// gate the action/time sub-keys of the __delta dictionary.
func (h *Hydrator) emitDelta(d, out *value.Dictionary, node *FieldResolver) {
	v, ok := d.Get(value.KeyDelta)
	if !ok {
		return
	}
	if node.MetaFlags() == MetaNone {
		if s, ok := v.String(); ok && s == "delete" {
			out.Set(value.KeyDelta, v)
		}
		return
	}
	dict, ok := v.Dictionary()
	if !ok {
		out.Set(value.KeyDelta, v)
		return
	}
	filtered := value.NewDict()
	dict.Range(func(key string, val value.Value) bool {
		switch key {
		case "action":
			if node.MetaFlags().Has(MetaAction) {
				filtered.Set(key, val)
			}
		case "time":
			if node.MetaFlags().Has(MetaTime) {
				filtered.Set(key, val)
			}
		default:
			filtered.Set(key, val)
		}
		return true
	})
	out.Set(value.KeyDelta, value.NewDictionary(filtered))
}

// emitViews keeps __views only when the View meta flag is set.
func (h *Hydrator) emitViews(d, out *value.Dictionary, node *FieldResolver) {
	if !node.MetaFlags().Has(MetaView) {
		return
	}
	if v, ok := d.Get(value.KeyViews); ok {
		out.Set(value.KeyViews, v)
	}
}
