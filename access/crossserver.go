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

import "crypto/subtle"

// CrossServerAuth validates the header-pair scheme two trusted backends use
// to grant each other admin bypass without a User principal (SPEC_FULL.md
// §4's "Admin bypass header pair" supplement). One header names a key id,
// the other carries the shared secret for that id; both must match a
// configured pair for the request to be treated as admin.
type CrossServerAuth struct {
	// Pairs maps a key id (the first header's value) to its expected
	// secret (the second header's value).
	Pairs map[string]string

	valid bool
}

// NewCrossServerAuth builds a CrossServerAuth from a set of configured
// key id/secret pairs and validates the presented keyID/secret against it.
// Comparison uses constant time to avoid leaking the secret through timing.
func NewCrossServerAuth(pairs map[string]string, keyID, secret string) *CrossServerAuth {
	c := &CrossServerAuth{Pairs: pairs}
	if keyID == "" || secret == "" {
		return c
	}
	want, ok := pairs[keyID]
	if !ok {
		return c
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(secret)) == 1 {
		c.valid = true
	}
	return c
}

// Valid reports whether the presented header pair matched a configured one.
func (c *CrossServerAuth) Valid() bool {
	return c != nil && c.valid
}
