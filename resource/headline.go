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

package resource

import (
	"strings"
)

// HeadlineConfig carries the Search resource's snippet-generation
// parameters: the fields to snippet, a start/stop token
// pair wrapping each matched term, the delimiter joining fragments, and a
// language hint stemmed from the search query.
type HeadlineConfig struct {
	Fields          []string
	StartToken      string
	StopToken       string
	FragmentDelim   string
	MaxFragments    int
	FragmentWindow  int // words of context kept on each side of a match
	LanguageHint    string
}

// GenerateHeadline builds a snippet of text around each case-insensitive
// occurrence of a word from searchText, wrapping matches in
// cfg.StartToken/cfg.StopToken and joining fragments with
// cfg.FragmentDelim, up to cfg.MaxFragments.
func GenerateHeadline(text, searchText string, cfg *HeadlineConfig) string {
	terms := strings.Fields(strings.ToLower(searchText))
	if len(terms) == 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	window := cfg.FragmentWindow
	if window <= 0 {
		window = 4
	}
	maxFragments := cfg.MaxFragments
	if maxFragments <= 0 {
		maxFragments = 3
	}

	var fragments []string
	for i, w := range words {
		if len(fragments) >= maxFragments {
			break
		}
		lower := strings.ToLower(strings.Trim(w, ".,;:!?\"'()"))
		matched := false
		for _, t := range terms {
			if lower == t {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		start := i - window
		if start < 0 {
			start = 0
		}
		end := i + window + 1
		if end > len(words) {
			end = len(words)
		}

		frag := make([]string, 0, end-start)
		for j := start; j < end; j++ {
			if j == i {
				frag = append(frag, cfg.StartToken+words[j]+cfg.StopToken)
			} else {
				frag = append(frag, words[j])
			}
		}
		fragments = append(fragments, strings.Join(frag, " "))
	}

	if len(fragments) == 0 {
		return ""
	}
	return strings.Join(fragments, cfg.FragmentDelim)
}
