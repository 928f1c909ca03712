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

// Package adapter declares the Storage Adapter contract: the boundary
// the core invokes to fetch and mutate rows, without ever generating SQL
// itself. A concrete adapter (relational, in-memory, remote) implements
// this interface; the core only depends on it.
//
// The interface's "one method per verb, worker-scoped" shape is grounded
// on dataloader.Manager (registry of named backends) and
// on antflydb-antfly-go's operations.go, whose client methods are named
// directly after the remote verb they invoke (Select, Create, Patch,
// Remove) rather than behind a generic Execute(op) dispatcher.
package adapter

import (
	"context"

	"github.com/restforge/core/principal"
	"github.com/restforge/core/query"
	"github.com/restforge/core/scheme"
	"github.com/restforge/core/value"
)

// FieldAction enumerates the property-resource field operations consumed
// through Adapter.Field.
type FieldAction uint8

// The field actions an Adapter must support.
const (
	FieldGet FieldAction = iota
	FieldSet
	FieldAppend
	FieldClear
)

// Worker is the per-request handle the Handler Facade obtains from the
// Adapter and threads through every Resource operation; it carries the
// live transaction and is never shared across requests.
type Worker interface {
	// Begin starts a transaction unless one is already open, in which case
	// it is a no-op.
	Begin(ctx context.Context) error

	// End commits the outermost transaction, or rolls it back if any
	// nested Cancel marked it rollback-only.
	End(ctx context.Context) error

	// Cancel marks the current (possibly nested) transaction
	// rollback-only; the outermost Begin/End pair decides the outcome.
	Cancel(ctx context.Context)

	// InTransaction reports whether a transaction is currently open.
	InTransaction() bool
}

// Adapter is the Storage Adapter contract.
type Adapter interface {
	// Select resolves q against the store and returns the matching row(s)
	// as a Value (Dictionary for a single row, Array of Dictionary for
	// many — the caller knows which from the Query List's Kind).
	Select(ctx context.Context, w Worker, q *query.Query) (value.Value, error)

	// Create inserts a new row on s and returns it, populated with its
	// assigned oid.
	Create(ctx context.Context, w Worker, s *scheme.Scheme, v value.Value) (value.Value, error)

	// Save replaces the named fields of row oid on s wholesale (PUT
	// semantics) and returns the updated row.
	Save(ctx context.Context, w Worker, s *scheme.Scheme, oid int64, v value.Value, fields []string) (value.Value, error)

	// Patch merges patch into row oid on s (PATCH semantics) and returns
	// the updated row.
	Patch(ctx context.Context, w Worker, s *scheme.Scheme, oid int64, patch *value.Dictionary) (value.Value, error)

	// Remove deletes row oid on s; the boolean reports whether a row was
	// actually removed.
	Remove(ctx context.Context, w Worker, s *scheme.Scheme, oid int64) (bool, error)

	// Count returns the number of rows q would select, without fetching
	// them.
	Count(ctx context.Context, w Worker, q *query.Query) (int64, error)

	// Field performs a property-resource operation (File/Array/View
	// content) named by action against the field named fieldName on the
	// row identified by oid, carrying data as the new value where
	// applicable.
	Field(ctx context.Context, w Worker, action FieldAction, s *scheme.Scheme, oid int64, fieldName string, data value.Value) (value.Value, error)

	// AddToView appends oid to the named View field of the row identified
	// by parentOid.
	AddToView(ctx context.Context, w Worker, s *scheme.Scheme, parentOid int64, fieldName string, oid int64) error

	// RemoveFromView removes oid from the named View field of the row
	// identified by parentOid.
	RemoveFromView(ctx context.Context, w Worker, s *scheme.Scheme, parentOid int64, fieldName string, oid int64) error

	// GetReferenceParents returns the ids of every row on s that holds a
	// foreignScheme/fieldName Set reference to the child row childOid —
	// the Reference-Set's reverse lookup.
	GetReferenceParents(ctx context.Context, w Worker, s *scheme.Scheme, childOid int64, foreignScheme *scheme.Scheme, fieldName string) ([]int64, error)

	// PerformQueryList executes a resolved Query List end to end, honoring
	// its ordering/pagination/full-text sub-query, returning up to count
	// rows (0 meaning unlimited). forUpdate requests a row lock for a
	// subsequent write in the same transaction. field, when non-empty,
	// narrows the result to that single field's values (used by
	// Reference-Set and Array resources).
	PerformQueryList(ctx context.Context, list *query.List, count int, forUpdate bool, field string) (value.Value, error)

	// PerformQueryListForIds is PerformQueryList's id-only variant, used
	// when the caller only needs identifiers (e.g. mass operations).
	PerformQueryListForIds(ctx context.Context, list *query.List, count int) ([]int64, error)

	// GetDeltaValue returns the scheme-wide delta timestamp in
	// microseconds, or — when view and oid are supplied — the delta of
	// that View field on that specific row.
	GetDeltaValue(ctx context.Context, s *scheme.Scheme, view string, oid int64) (int64, error)

	// AuthorizeUser verifies name/password against the user scheme and
	// returns the resolved User principal.
	AuthorizeUser(ctx context.Context, w Worker, name, password string) (principal.User, error)

	// Broadcast fans data out to any subscribers outside the request
	// (e.g. a change-notification bus); fire-and-forget from the core's
	// perspective.
	Broadcast(ctx context.Context, data value.Value) error

	// NewWorker obtains a fresh per-request Worker bound to this Adapter's
	// connection pool: the process-wide adapter pool serializes
	// contention at the store boundary.
	NewWorker(ctx context.Context) (Worker, error)
}

// ClearFieldMode enumerates the Reference-Set "cleanup" semantics an
// Adapter's Field(FieldClear, ...) call must honor.
//
// ClearField(ids) removes exactly the given ids from the Set when a
// filter is supplied, and removes everything when ids is empty.
type ClearFieldMode uint8

// The single supported clear mode, named for clarity at call sites.
const (
	ClearMatchingIDs ClearFieldMode = iota
)
