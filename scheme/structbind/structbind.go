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

// Package structbind builds a scheme.Config from a Go struct's field tags,
// sparing a caller who already has a Go type for their row shape from
// hand-writing a scheme.Config literal. It uses reflect2 rather than the
// standard reflect package for the same reason fast-path decoders do:
// reflect2 caches a type's structure behind a single
// reflect2.Type handle once, instead of re-walking reflect.Type on every
// call.
package structbind

import (
	"reflect"
	"strings"

	"github.com/modern-go/reflect2"

	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/scheme"
)

// tag is the parsed form of one field's `core:"..."` struct tag.
type tag struct {
	name          string
	fieldType     scheme.FieldType
	hasType       bool
	flags         scheme.Flag
	transform     scheme.Transform
	foreignScheme string
	ownerField    string
	skip          bool
}

// typeNames maps the tag's type token to a scheme.FieldType.
var typeNames = map[string]scheme.FieldType{
	"integer": scheme.Integer,
	"boolean": scheme.Boolean,
	"text":    scheme.Text,
	"bytes":   scheme.Bytes,
	"float":   scheme.Float,
	"data":    scheme.Data,
	"extra":   scheme.Extra,
	"object":  scheme.Object,
	"set":     scheme.Set,
	"array":   scheme.Array,
	"file":    scheme.File,
	"image":   scheme.Image,
	"view":    scheme.View,
}

// transformNames maps the tag's transform token to a scheme.Transform.
var transformNames = map[string]scheme.Transform{
	"alias":    scheme.AliasTransform,
	"uuid":     scheme.UuidTransform,
	"password": scheme.PasswordTransform,
}

// flagNames maps the tag's flag token to a scheme.Flag bit.
var flagNames = map[string]scheme.Flag{
	"indexed":   scheme.Indexed,
	"unique":    scheme.Unique,
	"protected": scheme.Protected,
	"automtime": scheme.AutoMTime,
}

// kindDefault infers a FieldType from a Go kind when the tag omits an
// explicit type token, covering the common scalar cases; reference and
// content-bearing fields (Object/Set/Array/File/Image/View) always
// require an explicit type token since no Go kind implies them uniquely.
func kindDefault(t reflect2.Type) (scheme.FieldType, bool) {
	switch t.Kind() {
	case reflect.String:
		return scheme.Text, true
	case reflect.Bool:
		return scheme.Boolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scheme.Integer, true
	case reflect.Float32, reflect.Float64:
		return scheme.Float, true
	case reflect.Slice:
		if elem := t.(reflect2.ListType).Elem(); elem.Kind() == reflect.Uint8 {
			return scheme.Bytes, true
		}
	}
	return scheme.Integer, false
}

// parseTag decodes one `core:"..."` tag value into a tag. The first
// comma-separated token is the field name override (or "-" to skip the
// field entirely); subsequent tokens are `key` flags or `key:value`
// parameters. An empty tag value (no `core` tag present) yields a zero
// tag whose name is filled in by the caller from the Go field name.
func parseTag(raw string) (tag, error) {
	var t tag
	if raw == "-" {
		t.skip = true
		return t, nil
	}
	if raw == "" {
		return t, nil
	}

	parts := strings.Split(raw, ",")
	t.name = parts[0]

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, hasVal := part, "", false
		if idx := strings.Index(part, ":"); idx >= 0 {
			key, val, hasVal = part[:idx], part[idx+1:], true
		}
		key = strings.ToLower(key)

		switch {
		case key == "type" && hasVal:
			ft, ok := typeNames[strings.ToLower(val)]
			if !ok {
				return tag{}, errs.New("unknown structbind type \""+val+"\"", errs.Op("structbind.parseTag"), errs.KindInput)
			}
			t.fieldType = ft
			t.hasType = true
		case key == "transform" && hasVal:
			tr, ok := transformNames[strings.ToLower(val)]
			if !ok {
				return tag{}, errs.New("unknown structbind transform \""+val+"\"", errs.Op("structbind.parseTag"), errs.KindInput)
			}
			t.transform = tr
		case key == "foreign" && hasVal:
			t.foreignScheme = val
		case key == "owner" && hasVal:
			t.ownerField = val
		default:
			flag, ok := flagNames[key]
			if !ok {
				return tag{}, errs.New("unknown structbind tag token \""+part+"\"", errs.Op("structbind.parseTag"), errs.KindInput)
			}
			t.flags |= flag
		}
	}
	return t, nil
}

// Options configures Build beyond what the struct tags alone express —
// the scheme-level settings that attach to the whole Scheme rather than
// to an individual Field.
type Options struct {
	// DeltaTracking enables the scheme-level delta timestamp.
	DeltaTracking bool

	// AutoMTimeField names the AutoMTime-flagged field; inferred from the
	// struct tags (the first field carrying the `automtime` flag) when
	// left empty.
	AutoMTimeField string

	// Permissions is the scheme-tier permission list; nil falls back to
	// scheme.DefaultPermission per action, same as a hand-built Config.
	Permissions *scheme.PermissionList

	ObjectPermission scheme.ObjectPermissionFunc

	Budget scheme.SizeBudget

	FileScheme string

	UserScheme bool
}

// Build reflects over a zero-value-or-pointer instance of a Go struct and
// produces a scheme.Config named schemeName. Each exported field's
// `core:"..."` tag (absent tag: field name, type inferred from Go kind)
// becomes a scheme.FieldConfig; a field tagged `core:"-"` is skipped.
//
// instance may be a struct value or a pointer to one; Build never mutates
// it, only inspects its type.
func Build(schemeName string, instance interface{}, opts Options) (scheme.Config, error) {
	t := reflect2.TypeOf(instance)
	if t.Kind() == reflect.Ptr {
		t = t.(reflect2.PtrType).Elem()
	}
	structType, ok := t.(reflect2.StructType)
	if !ok {
		return scheme.Config{}, errs.New("structbind.Build requires a struct or struct pointer, got "+t.String(), errs.Op("structbind.Build"), errs.KindInput)
	}

	cfg := scheme.Config{
		Name:             schemeName,
		Fields:           make(map[string]scheme.FieldConfig),
		DeltaTracking:    opts.DeltaTracking,
		AutoMTimeField:   opts.AutoMTimeField,
		Permissions:      opts.Permissions,
		ObjectPermission: opts.ObjectPermission,
		Budget:           opts.Budget,
		FileScheme:       opts.FileScheme,
		UserScheme:       opts.UserScheme,
	}

	n := structType.NumField()
	for i := 0; i < n; i++ {
		f := structType.Field(i)
		if !isExported(f.Name()) {
			continue
		}

		raw, _ := f.Tag().Lookup("core")
		pt, err := parseTag(raw)
		if err != nil {
			return scheme.Config{}, err
		}
		if pt.skip {
			continue
		}

		name := pt.name
		if name == "" {
			name = lowerFirst(f.Name())
		}

		ft := pt.fieldType
		if !pt.hasType {
			inferred, ok := kindDefault(f.Type())
			if !ok {
				return scheme.Config{}, errs.New("structbind: field \""+f.Name()+"\" has no inferable type; add an explicit core:\"type:...\" tag", errs.Op("structbind.Build"), errs.KindInput)
			}
			ft = inferred
		}

		cfg.Fields[name] = scheme.FieldConfig{
			Name:          name,
			Type:          ft,
			Transform:     pt.transform,
			Flags:         pt.flags,
			ForeignScheme: pt.foreignScheme,
			OwnerField:    pt.ownerField,
		}
		cfg.FieldOrder = append(cfg.FieldOrder, name)

		if pt.flags.Has(scheme.AutoMTime) && cfg.AutoMTimeField == "" {
			cfg.AutoMTimeField = name
		}
		if pt.transform == scheme.AliasTransform {
			cfg.Aliases = append(cfg.Aliases, name)
		}
		if ft == scheme.View {
			cfg.Views = append(cfg.Views, name)
		}
	}

	return cfg, nil
}

func isExported(name string) bool {
	return name != "" && strings.ToUpper(name[:1]) == name[:1]
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
