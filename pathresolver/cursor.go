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

// Package pathresolver implements the stack-machine Path Resolver: it
// walks a reversed path token vector and produces a built query.List over
// a root scheme, or a structured error.
//
// The scanning style — a cursor that exposes peek/consume over the next
// unconsumed token — is adapted from lexer.Lexer
// (graphql/lexer/lexer.go), which does the same thing one byte at a time
// over a GraphQL document. Here the "bytes" are already-split path
// segments, so the cursor works over a []string instead of a byte body.
package pathresolver

// cursor walks a path token vector stored in *reverse* order, so popping
// from the end of the backing slice yields the next left-to-right token.
type cursor struct {
	// reversed holds tokens with the last-to-consume token at index 0 and
	// the next-to-consume token at the end of the slice.
	reversed []string
}

// newCursor builds a cursor from tokens given in normal left-to-right
// path order; it stores them reversed internally so that pop is an O(1)
// slice-shrink from the tail, mirroring a stack's pop.
func newCursor(tokens []string) *cursor {
	reversed := make([]string, len(tokens))
	for i, t := range tokens {
		reversed[len(tokens)-1-i] = t
	}
	return &cursor{reversed: reversed}
}

// more reports whether any token remains.
func (c *cursor) more() bool { return len(c.reversed) > 0 }

// peek returns the next token to be consumed without consuming it.
func (c *cursor) peek() (string, bool) {
	if !c.more() {
		return "", false
	}
	return c.reversed[len(c.reversed)-1], true
}

// pop consumes and returns the next token.
func (c *cursor) pop() (string, bool) {
	tok, ok := c.peek()
	if !ok {
		return "", false
	}
	c.reversed = c.reversed[:len(c.reversed)-1]
	return tok, true
}
