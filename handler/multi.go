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
	"net/http"
	"net/url"

	"github.com/restforge/core/principal"
	"github.com/restforge/core/value"
)

// MultiRequest is the companion handler's input: a dictionary of path to
// query-string entries, each resolved independently as a GET against its
// own registered scheme.
type MultiRequest map[string]string

// HandleMulti runs every entry of reqs through the single-request pipeline
// and composes the results under one envelope, keyed by path, with a
// per-path delta sub-map and a composite Last-Modified. Every entry is a
// read; MultiRequest carries no verb or body of its own.
func (h *Handler) HandleMulti(ctx context.Context, reqs MultiRequest, user principal.User, crossServerKeyID, crossServerSecret string, now int64) *Response {
	results := value.NewDict()
	deltas := value.NewDict()
	var failures []string
	var compositeLastMod int64
	haveLastMod := false

	for path, rawQuery := range reqs {
		schemeName, tokens := splitPath(path)

		qvals, err := url.ParseQuery(rawQuery)
		if err != nil {
			failures = append(failures, path+": malformed query string")
			continue
		}
		params, err := ParseParams(urlValues(qvals))
		if err != nil {
			failures = append(failures, path+": "+err.Error())
			continue
		}

		sub, err := h.Handle(ctx, &Request{
			Verb:              Get,
			Scheme:            schemeName,
			Path:              tokens,
			Params:            params,
			Body:              value.Null(),
			User:              user,
			CrossServerKeyID:  crossServerKeyID,
			CrossServerSecret: crossServerSecret,
			Now:               now,
		})
		if err != nil {
			failures = append(failures, path+": "+err.Error())
			continue
		}

		env, ok := sub.Envelope.Dictionary()
		if !ok {
			failures = append(failures, path+": malformed sub-response")
			continue
		}
		if okVal, has := env.Get("OK"); has {
			if isOK, _ := okVal.Bool(); !isOK {
				if errList, has := env.Get("errors"); has {
					if items, ok := errList.Array(); ok {
						for _, item := range items {
							if msg, ok := item.String(); ok {
								failures = append(failures, path+": "+msg)
							}
						}
					}
				}
			}
		}
		if res, has := env.Get("result"); has {
			results.Set(path, res)
		}
		if d, has := env.Get("delta"); has {
			deltas.Set(path, d)
			if micros, ok := d.Int(); ok && micros > compositeLastMod {
				compositeLastMod = micros
				haveLastMod = true
			}
		}
	}

	env := value.NewDict()
	env.Set("date", value.Int(now))
	env.Set("result", value.NewDictionary(results))
	if deltas.Len() > 0 {
		env.Set("delta", value.NewDictionary(deltas))
	}
	env.Set("OK", value.Bool(len(failures) == 0))
	if len(failures) > 0 {
		items := make([]value.Value, len(failures))
		for i, f := range failures {
			items[i] = value.String(f)
		}
		env.Set("errors", value.NewArray(items))
	}

	resp := &Response{Status: http.StatusOK, Envelope: value.NewDictionary(env)}
	if haveLastMod {
		resp.LastModified = compositeLastMod
		resp.HasLastMod = true
	}
	return resp
}
