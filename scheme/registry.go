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

package scheme

import (
	"github.com/modern-go/concurrent"
	"github.com/restforge/core/internal/errs"
)

// Registry is the process-wide, read-after-init Scheme Registry.
// Schemes reference each other by name at declaration time
// (a Field's ForeignScheme), so the Registry resolves the whole batch in
// two passes: build every Scheme's own fields, then resolve every
// reference field against the now-complete name table. This mirrors the
// typeCreator two-phase LoadDataAndNew/Finalize split (graphql/types.go)
// used to let GraphQL types reference each other before the whole
// schema is built.
//
// Lookups after Build are backed by concurrent.Map (the
// modern-go/concurrent dependency), matching dataloader/manager.go's use
// of the same type for its registry-of-loaders.
type Registry struct {
	schemes concurrent.Map // name -> *Scheme
}

// NewRegistry creates an empty Registry. Call Build once with every Config
// the process will ever need; the Registry is immutable thereafter.
func NewRegistry() *Registry {
	return &Registry{}
}

// Build registers every Config in one batch, resolving cross-scheme field
// references. It is not safe to call Build concurrently with Lookup, nor
// to call it more than once — the registry is meant to be populated once
// at process startup.
func (r *Registry) Build(configs []Config) error {
	built := make(map[string]*Scheme, len(configs))
	for _, cfg := range configs {
		s, err := build(cfg)
		if err != nil {
			return err
		}
		if _, dup := built[s.name]; dup {
			return errs.New("duplicate scheme name \""+s.name+"\"", errs.Op("scheme.Registry.Build"), errs.KindInput)
		}
		built[s.name] = s
	}

	for _, cfg := range configs {
		s := built[cfg.Name]
		for name, fc := range cfg.Fields {
			if fc.ForeignScheme == "" {
				continue
			}
			foreign, ok := built[fc.ForeignScheme]
			if !ok {
				return errs.New("field \""+name+"\" on scheme \""+cfg.Name+"\" references unknown scheme \""+fc.ForeignScheme+"\"", errs.Op("scheme.Registry.Build"), errs.KindInput)
			}
			s.fields[name].foreign = foreign
		}
	}

	for name, s := range built {
		r.schemes.Store(name, s)
	}
	return nil
}

// Lookup returns the Scheme registered under name, or nil if unknown.
func (r *Registry) Lookup(name string) *Scheme {
	v, ok := r.schemes.Load(name)
	if !ok {
		return nil
	}
	return v.(*Scheme)
}
