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

package value

// Reserved dictionary keys that carry metadata rather than scheme fields.
const (
	KeyOid      = "__oid"
	KeyDelta    = "__delta"
	KeyViews    = "__views"
	KeyTsRank   = "__ts_rank"
	KeyHeadline = "__headlines"
)

// Dictionary is an insertion-ordered string-keyed map. Go's map type does
// not preserve iteration order, and the hydrated response graph must
// reproduce field order as declared on the Scheme, so it is backed by a
// parallel slice of keys plus a side index for O(1) lookup.
type Dictionary struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// NewDict creates an empty Dictionary.
func NewDict() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// Len reports the number of entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// Get returns the value for key and whether it was present.
func (d *Dictionary) Get(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.vals[i], true
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Set inserts or replaces the value for key, preserving the original
// position on replace and appending on first insertion.
func (d *Dictionary) Set(key string, v Value) {
	if i, ok := d.index[key]; ok {
		d.vals[i] = v
		return
	}
	d.index[key] = len(d.keys)
	d.keys = append(d.keys, key)
	d.vals = append(d.vals, v)
}

// Delete removes key if present, preserving the order of remaining keys.
func (d *Dictionary) Delete(key string) {
	i, ok := d.index[key]
	if !ok {
		return
	}
	d.keys = append(d.keys[:i], d.keys[i+1:]...)
	d.vals = append(d.vals[:i], d.vals[i+1:]...)
	delete(d.index, key)
	for k, idx := range d.index {
		if idx > i {
			d.index[k] = idx - 1
		}
	}
}

// Keys returns the keys in insertion order. The caller must not mutate the
// returned slice.
func (d *Dictionary) Keys() []string { return d.keys }

// Range calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (d *Dictionary) Range(fn func(key string, v Value) bool) {
	for i, k := range d.keys {
		if !fn(k, d.vals[i]) {
			return
		}
	}
}

// Clone performs a shallow copy: nested Dictionaries/Arrays are not
// deep-copied, matching the move-don't-copy convention used for
// adapter-returned values.
func (d *Dictionary) Clone() *Dictionary {
	out := NewDict()
	out.keys = append([]string(nil), d.keys...)
	out.vals = append([]Value(nil), d.vals...)
	out.index = make(map[string]int, len(d.index))
	for k, v := range d.index {
		out.index[k] = v
	}
	return out
}

// Equal reports whether two dictionaries have the same keys (in any order)
// mapping to equal values. Order is not part of dictionary equality, only
// of emission.
func (d *Dictionary) Equal(o *Dictionary) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Len() != o.Len() {
		return false
	}
	for k, i := range d.index {
		otherVal, ok := o.Get(k)
		if !ok || !Equal(d.vals[i], otherVal) {
			return false
		}
	}
	return true
}
