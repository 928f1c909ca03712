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

package pathresolver

import (
	"strconv"
	"strings"

	"github.com/restforge/core/internal/errs"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
)

var comparatorNames = map[string]query.Comparator{
	"eq":  query.Eq,
	"neq": query.Neq,
	"lt":  query.Lt,
	"le":  query.Le,
	"gt":  query.Gt,
	"ge":  query.Ge,
	"bw":  query.Bw,
	"be":  query.Be,
	"nbw": query.Nbw,
	"nbe": query.Nbe,
}

func parseComparator(tok string) (query.Comparator, bool) {
	c, ok := comparatorNames[tok]
	return c, ok
}

// parseLiteral validates and coerces a raw path token against a field's
// declared type: Text fields accept string values; Boolean fields accept
// t|true|1 and f|false|0; Integer fields require a valid integer literal
// and Float fields a valid floating-point literal.
func parseLiteral(f *scheme.Field, raw string) (interface{}, error) {
	switch f.Type() {
	case scheme.Integer:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errs.New("field \""+f.Name()+"\" requires an integer literal, got \""+raw+"\"", errs.Op("pathresolver.parseLiteral"), errs.KindInput)
		}
		return n, nil

	case scheme.Float:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errs.New("field \""+f.Name()+"\" requires a numeric literal, got \""+raw+"\"", errs.Op("pathresolver.parseLiteral"), errs.KindInput)
		}
		return n, nil

	case scheme.Boolean:
		switch strings.ToLower(raw) {
		case "t", "true", "1":
			return true, nil
		case "f", "false", "0":
			return false, nil
		default:
			return nil, errs.New("field \""+f.Name()+"\" requires a boolean literal, got \""+raw+"\"", errs.Op("pathresolver.parseLiteral"), errs.KindInput)
		}

	case scheme.Text, scheme.Bytes:
		return raw, nil

	default:
		return nil, errs.New("field \""+f.Name()+"\" of type "+f.Type().String()+" is not selectable by literal", errs.Op("pathresolver.parseLiteral"), errs.KindInput)
	}
}

// parseCountSuffix parses an optional trailing numeric count/limit token
// without consuming it from the cursor if it isn't numeric — used by
// `order`, `+field`/`-field`, and `first`/`last`.
func parseCountSuffix(tok string) (int, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}
