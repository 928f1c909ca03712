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
	"context"
	"sort"

	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/principal"
	"github.com/restforge/core/value"
)

// ObjectPermissionFunc is the object-tier callback: it is only consulted
// when the scheme tier returned Partial. It receives the current user,
// the Scheme, the Action, the current object value, and a mutable patch
// (nil for Read/Remove), and returns the permission that applies to this
// specific object.
type ObjectPermissionFunc func(ctx context.Context, user principal.User, s *Scheme, action Action, object value.Value, patch *value.Dictionary) (Permission, error)

// SizeBudget surfaces the per-scheme request-size limits a Resource
// exposes via getMaxRequestSize/getMaxVarSize/getMaxFileSize.
type SizeBudget struct {
	MaxRequestSize int64
	MaxVarSize     int64
	MaxFileSize    int64
}

// Config declares a Scheme before registration. Mirrors the
// ObjectConfig/TypeDefinition split (graphql/object.go): cheap to build
// by hand, resolved once at Registry.Build time.
type Config struct {
	Name string

	// Fields declared on the scheme, keyed by field name.
	Fields map[string]FieldConfig

	// FieldOrder optionally fixes field emission order; when empty, fields
	// are sorted by name for a deterministic (if arbitrary) order.
	FieldOrder []string

	// Aliases names fields (of Text type, Alias transform) that may be used
	// to look a row up by a unique string instead of its oid.
	Aliases []string

	// Views lists the names of View-typed fields the scheme exposes.
	Views []string

	// DeltaTracking enables the scheme-level delta timestamp.
	DeltaTracking bool

	// AutoMTimeField names the field with the AutoMTime flag, if any; used
	// by QueryList.SetQueryAsMtime.
	AutoMTimeField string

	// Permissions is the scheme-tier permission list. A nil
	// PermissionList falls back to DefaultPermission.
	Permissions *PermissionList

	// ObjectPermission is the object-tier callback consulted when the
	// scheme tier for an action is Partial.
	ObjectPermission ObjectPermissionFunc

	// Budget is the scheme's request-size policy.
	Budget SizeBudget

	// FileScheme names the scheme that stores File/Image content for this
	// scheme, if distinct from itself.
	FileScheme string

	// UserScheme marks this scheme as the registry's principal scheme
	// (used to resolve admin bypass checks).
	UserScheme bool
}

// Scheme is the resolved, immutable runtime form of a Config. Fields'
// ForeignScheme names are resolved to *Scheme pointers by the Registry,
// the same two-phase "declare, then Finalize" build used for
// Object/Interface/Union types (graphql/types.go newTypeImpl).
type Scheme struct {
	name             string
	fields           map[string]*Field
	fieldOrder       []string
	aliases          map[string]bool
	views            map[string]bool
	deltaTracking    bool
	autoMTimeField   string
	permissions      *PermissionList
	objectPermission ObjectPermissionFunc
	budget           SizeBudget
	fileScheme       string
	isUserScheme     bool
}

// Name is the scheme's registered name.
func (s *Scheme) Name() string { return s.name }

// Field looks a field up by name; ok is false when undeclared.
func (s *Scheme) Field(name string) (*Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// FieldNames returns declared field names in the scheme's field order:
// Config.FieldOrder when one was given, otherwise sorted by name.
func (s *Scheme) FieldNames() []string { return s.fieldOrder }

// IsAlias reports whether name is a declared alias field.
func (s *Scheme) IsAlias(name string) bool { return s.aliases[name] }

// IsView reports whether name is a declared view field.
func (s *Scheme) IsView(name string) bool { return s.views[name] }

// DeltaTrackingEnabled reports whether the scheme carries a delta stream.
func (s *Scheme) DeltaTrackingEnabled() bool { return s.deltaTracking }

// AutoMTimeField names the AutoMTime-flagged field, or "" if none.
func (s *Scheme) AutoMTimeField() string { return s.autoMTimeField }

// Budget returns the scheme's request-size policy.
func (s *Scheme) Budget() SizeBudget { return s.budget }

// IsUserScheme reports whether this scheme is the registry's principal
// scheme.
func (s *Scheme) IsUserScheme() bool { return s.isUserScheme }

// SchemePermission returns the scheme-tier permission for action.
func (s *Scheme) SchemePermission(action Action) Permission {
	return s.permissions.Get(action)
}

// HasObjectPermission reports whether the scheme declares an object-tier
// callback for Partial resolution.
func (s *Scheme) HasObjectPermission() bool { return s.objectPermission != nil }

// EvalObjectPermission invokes the object-tier callback. Callers must only
// invoke this when HasObjectPermission is true and the scheme tier
// returned Partial.
func (s *Scheme) EvalObjectPermission(ctx context.Context, user principal.User, action Action, object value.Value, patch *value.Dictionary) (Permission, error) {
	if s.objectPermission == nil {
		return Restrict, errs.New("scheme has no object-tier permission callback", errs.Op("scheme.EvalObjectPermission"), errs.KindState)
	}
	return s.objectPermission(ctx, user, s, action, object, patch)
}

// build resolves a Config into a Scheme whose reference fields have no
// foreign scheme yet; Registry.Build's second pass, run once every scheme
// in the batch is built, sets them to *Scheme pointers.
func build(cfg Config) (*Scheme, error) {
	if cfg.Name == "" {
		return nil, errs.New("scheme must have a name", errs.Op("scheme.build"), errs.KindInput)
	}

	s := &Scheme{
		name:           cfg.Name,
		fields:         make(map[string]*Field, len(cfg.Fields)),
		aliases:        make(map[string]bool, len(cfg.Aliases)),
		views:          make(map[string]bool, len(cfg.Views)),
		deltaTracking:  cfg.DeltaTracking,
		autoMTimeField: cfg.AutoMTimeField,
		permissions:    cfg.Permissions,
		budget:         cfg.Budget,
		fileScheme:     cfg.FileScheme,
		isUserScheme:   cfg.UserScheme,
	}
	s.objectPermission = cfg.ObjectPermission

	// Go map literals have no iteration order; sort field names so that
	// emission order is stable across runs when a caller (e.g.
	// scheme/structbind) hasn't supplied its own FieldOrder.
	names := make([]string, 0, len(cfg.Fields))
	for name := range cfg.Fields {
		names = append(names, name)
	}
	if len(cfg.FieldOrder) > 0 {
		names = cfg.FieldOrder
	} else {
		sort.Strings(names)
	}
	for _, name := range names {
		fc := cfg.Fields[name]
		f := &Field{
			name:      name,
			ttype:     fc.Type,
			transform: fc.Transform,
			flags:     fc.Flags,
			ownerName: fc.OwnerField,
		}
		s.fields[name] = f
		s.fieldOrder = append(s.fieldOrder, name)
	}
	for _, a := range cfg.Aliases {
		s.aliases[a] = true
	}
	for _, v := range cfg.Views {
		s.views[v] = true
	}

	return s, nil
}
