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

// Package errs implements the core's typed error kinds: every
// error that crosses the Handler Facade boundary carries an HTTP status
// hint so the facade's "hinted-status" helper can pick the final response
// code without re-deriving it from the verb alone.
package errs

import (
	"fmt"
	"net/http"
)

// Op names the operation that raised the error, usually "package.Method".
type Op string

// Kind classifies the error by category.
type Kind uint8

// The error kinds the core distinguishes.
const (
	KindOther Kind = iota
	KindInput
	KindPermission
	KindState
	KindAdapter
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input error"
	case KindPermission:
		return "permission error"
	case KindState:
		return "state error"
	case KindAdapter:
		return "adapter error"
	case KindContent:
		return "content error"
	default:
		return "error"
	}
}

// defaultStatus maps a Kind to the status it is assigned absent a more
// specific hint from the resource.
func (k Kind) defaultStatus() int {
	switch k {
	case KindInput:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindState:
		return http.StatusConflict
	case KindAdapter:
		return http.StatusInternalServerError
	case KindContent:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is the core's error type. It is built by wrapping an underlying
// error (if any) with operation, kind, and status context, mirroring the
// teacher's upspin-inspired NewError constructor.
type Error struct {
	Message string
	Op      Op
	Kind    Kind
	Status  int
	Err     error
}

var _ error = (*Error)(nil)

// New builds an Error from a message and a set of typed context arguments.
// Accepted argument types: Op, Kind, int (explicit HTTP status), error (the
// wrapped cause).
func New(message string, args ...interface{}) error {
	e := &Error{Message: message}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case int:
			e.Status = a
		case error:
			e.Err = a
		default:
			panic(fmt.Sprintf("errs.New: unsupported argument type %T", arg))
		}
	}

	if prev, ok := e.Err.(*Error); ok {
		if e.Kind == KindOther {
			e.Kind = prev.Kind
		}
		if e.Status == 0 {
			e.Status = prev.Status
		}
	}
	if e.Status == 0 {
		e.Status = e.Kind.defaultStatus()
	}
	return e
}

// Wrap is a convenience wrapper equivalent to New(message, err).
func Wrap(err error, message string) error {
	return New(message, err)
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var op string
	if e.Op != "" {
		op = string(e.Op) + ": "
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %v", op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s%s", op, e.Message)
}

// Unwrap enables errors.Is/errors.As to see through the chain.
func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the status hint this error carries, defaulting to 500
// for untyped errors that didn't go through New.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if e, ok := err.(*Error); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}

// KindOf reports the Kind carried by err, or KindOther for a plain error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindOther
}
