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

package access

import (
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// StripProtected removes every field flagged Protected on s from patch,
// in place: a Protected field never appears in an emitted dictionary, and
// the object-tier callback that narrows a patch by field-level permission
// routes through this helper to also strip fields that are never writable
// at all.
func StripProtected(s *scheme.Scheme, patch *value.Dictionary) {
	if patch == nil {
		return
	}
	for _, name := range s.FieldNames() {
		f, ok := s.Field(name)
		if !ok {
			continue
		}
		if f.Flags().Has(scheme.Protected) {
			patch.Delete(name)
		}
	}
}
