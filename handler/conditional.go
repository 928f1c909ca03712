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
	"context"

	"github.com/restforge/core/query"
	"github.com/restforge/core/resource"
)

// conditionalResult reports conditional GET's verdict: If-Modified-Since
// checked against source delta and per-object mtime, returning
// Not-Modified when satisfied.
type conditionalResult struct {
	notModified bool
	// mtime is the timestamp (source delta, or per-object mtime) the
	// caller should report back as Last-Modified when satisfied.
	mtime int64
	known bool
}

// checkConditional evaluates a request's `ifModifiedSince` timestamp
// (microseconds, the transport's decoding of the If-Modified-Since
// header) against the effective resource's modification time. A Query
// List whose DeltaApplicable is false has no meaningful single timestamp
// to compare against and is never considered Not-Modified.
func checkConditional(ctx context.Context, list *query.List, res resource.Resource, ifModifiedSince int64, hasIfModifiedSince bool) (conditionalResult, error) {
	if !hasIfModifiedSince || !list.DeltaApplicable() {
		return conditionalResult{}, nil
	}

	mtime, ok, err := res.GetObjectMtime(ctx)
	if err != nil {
		return conditionalResult{}, err
	}
	if !ok {
		return conditionalResult{}, nil
	}

	result := conditionalResult{mtime: mtime, known: true}
	if mtime <= ifModifiedSince {
		result.notModified = true
	}
	return result, nil
}
