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

package handler

import (
	"github.com/modern-go/concurrent"
)

// tokenEntry is one token cache slot: the opaque payload (an upload
// placeholder, a short-lived session grant) plus the Unix-second deadline
// past which Get treats it as absent.
type tokenEntry struct {
	value    string
	deadline int64
}

// TokenCache is the shared, time-bounded key-value store that persists
// short-lived upload/session tokens. It is backed by concurrent.Map, the
// same lock-free map used for Registry-shaped caches
// (graphql/handler/operation_cache.go's LRUOperationCache plays the
// equivalent caching role there, but keyed by query text and evicted by
// size rather than by time); here expiry is checked lazily on Get rather
// than by a background sweep, since the core introduces no timers of its
// own.
type TokenCache struct {
	entries concurrent.Map
	ttlSecs int64
}

// NewTokenCache builds a TokenCache whose entries expire ttlSecs seconds
// after being Set, absent a per-call override.
func NewTokenCache(ttlSecs int64) *TokenCache {
	return &TokenCache{ttlSecs: ttlSecs}
}

// Set stores value under key, expiring at nowSecs+ttlSecs (or
// nowSecs+overrideTTL when overrideTTL > 0).
func (c *TokenCache) Set(key, value string, nowSecs int64, overrideTTL int64) {
	ttl := c.ttlSecs
	if overrideTTL > 0 {
		ttl = overrideTTL
	}
	c.entries.Store(key, &tokenEntry{value: value, deadline: nowSecs + ttl})
}

// Get returns the value stored under key, if any and not yet expired as
// of nowSecs.
func (c *TokenCache) Get(key string, nowSecs int64) (string, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return "", false
	}
	entry := v.(*tokenEntry)
	if nowSecs >= entry.deadline {
		c.entries.Delete(key)
		return "", false
	}
	return entry.value, true
}

// Clear removes key unconditionally.
func (c *TokenCache) Clear(key string) {
	c.entries.Delete(key)
}
