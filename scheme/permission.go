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

package scheme

// Action enumerates the operations Access Control gates.
type Action uint8

// The supported actions.
const (
	ActionCreate Action = iota
	ActionRead
	ActionAppend
	ActionUpdate
	ActionRemove
	ActionReference
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRead:
		return "read"
	case ActionAppend:
		return "append"
	case ActionUpdate:
		return "update"
	case ActionRemove:
		return "remove"
	case ActionReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Permission is the three-rung lattice {Restrict, Partial, Full},
// ordered as an enum. Lower ordinal is more restrictive; Min is the
// ordinal minimum.
type Permission uint8

// The lattice rungs, ordered from most to least restrictive.
const (
	Restrict Permission = iota
	Partial
	Full
)

func (p Permission) String() string {
	switch p {
	case Restrict:
		return "restrict"
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Min returns the more restrictive of a and b: the ordinal minimum of
// the lattice.
func Min(a, b Permission) Permission {
	if a < b {
		return a
	}
	return b
}

// PermissionList maps each Action to its scheme-tier Permission. A nil
// entry in ByAction for an action falls back to Default: admin bypass if
// present, otherwise Full for Read and Restrict for everything else.
type PermissionList struct {
	ByAction map[Action]Permission
}

// Get returns the scheme-tier permission for action, applying the
// default when the scheme declares no explicit list or no entry for the
// action.
func (pl *PermissionList) Get(action Action) Permission {
	if pl == nil || pl.ByAction == nil {
		return DefaultPermission(action)
	}
	if p, ok := pl.ByAction[action]; ok {
		return p
	}
	return DefaultPermission(action)
}

// DefaultPermission implements the default table absent a per-scheme
// list: Full for Read, Restrict otherwise.
func DefaultPermission(action Action) Permission {
	if action == ActionRead {
		return Full
	}
	return Restrict
}
