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

// Package scheme implements the data model: Scheme, Field, and the
// process-wide Registry that looks schemes up by name.
package scheme

// FieldType enumerates the leaf and reference types a Field may carry.
type FieldType uint8

// The supported field types.
const (
	Integer FieldType = iota
	Boolean
	Text
	Bytes
	Float
	Data
	Extra
	Object
	Set
	Array
	File
	Image
	View
	FullTextView
)

func (t FieldType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Boolean:
		return "Boolean"
	case Text:
		return "Text"
	case Bytes:
		return "Bytes"
	case Float:
		return "Float"
	case Data:
		return "Data"
	case Extra:
		return "Extra"
	case Object:
		return "Object"
	case Set:
		return "Set"
	case Array:
		return "Array"
	case File:
		return "File"
	case Image:
		return "Image"
	case View:
		return "View"
	case FullTextView:
		return "FullTextView"
	default:
		return "Unknown"
	}
}

// IsReference reports whether t carries a pointer to a foreign Scheme
// (Object, Set, View) as opposed to a scalar or content leaf.
func (t FieldType) IsReference() bool {
	switch t {
	case Object, Set, View:
		return true
	default:
		return false
	}
}

// Transform enumerates the value transforms a Field may apply.
type Transform uint8

// The supported value transforms.
const (
	NoTransform Transform = iota
	AliasTransform
	UuidTransform
	PasswordTransform
)

// Flag is a bitset of the per-Field attributes.
type Flag uint32

// Field flag bits.
const (
	Indexed Flag = 1 << iota
	Unique
	Protected
	AutoMTime
)

// Has reports whether all bits of want are set in f.
func (f Flag) Has(want Flag) bool { return f&want == want }

// FieldConfig is the declaration-time shape of a Field, mirroring the
// teacher's FieldConfig/ObjectConfig two-phase definition-then-build split
// (graphql/field.go, graphql/object.go): a config value is cheap to build by
// hand, and the Scheme that owns it resolves inter-field/inter-scheme
// references once, at registration time.
type FieldConfig struct {
	Name      string
	Type      FieldType
	Transform Transform
	Flags     Flag

	// ForeignScheme names the scheme a reference-kind field (Object, Set,
	// View) points to. Resolved to a *Scheme in the second pass of
	// Registry.Build; left as a name here so Schemes can be declared before all their
	// peers exist.
	ForeignScheme string

	// OwnerField names the field on ForeignScheme that owns the back
	// reference for a Set field: a Set is a reverse collection keyed by an
	// owning scheme+field.
	OwnerField string
}

// Field is the resolved, immutable runtime form of a FieldConfig. Once a
// Scheme is registered, Fields never change; concurrent readers across
// requests need no locking since the Scheme Registry is process-wide and
// read-only after startup.
type Field struct {
	name      string
	ttype     FieldType
	transform Transform
	flags     Flag
	foreign   *Scheme
	ownerName string
}

// Name is the field's declared name.
func (f *Field) Name() string { return f.name }

// Type is the field's FieldType.
func (f *Field) Type() FieldType { return f.ttype }

// Transform is the field's value Transform.
func (f *Field) Transform() Transform { return f.transform }

// Flags is the field's attribute bitset.
func (f *Field) Flags() Flag { return f.flags }

// Foreign returns the Scheme a reference-kind field points to, or nil for
// scalar/content fields.
func (f *Field) Foreign() *Scheme { return f.foreign }

// OwnerFieldName names the field on Foreign() that owns a Set field's
// back-reference.
func (f *Field) OwnerFieldName() string { return f.ownerName }
