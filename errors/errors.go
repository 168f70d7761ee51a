// Package errors provides error handling for gedbridge.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across gedbridge.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
//
// The sentinels mirror the run-report taxonomy: lookup misses and duplicates
// are routine skips, ambiguity flags an item for manual review, a locked
// store aborts the whole run, and a rejected row errors only that item.
var (
	// ErrNotFound indicates an identity or event lookup produced no match.
	// This is an expected outcome, recorded as a skip rather than a failure.
	ErrNotFound = New("not found")

	// ErrAmbiguous indicates multiple target events tied at the same best
	// date proximity; the item needs manual review, never an arbitrary pick.
	ErrAmbiguous = New("ambiguous match")

	// ErrSelfReferential indicates a candidate whose secondary participant
	// resolves to the event's own principal.
	ErrSelfReferential = New("self-referential relationship")

	// ErrDuplicate indicates the target row already exists.
	ErrDuplicate = New("duplicate row")

	// ErrStructural indicates a sentence blob violates the grammar in a way
	// the codec cannot serialize (e.g. a phrase referencing an unknown role).
	ErrStructural = New("structural error")

	// ErrStoreLocked indicates the target store is held open by another
	// process. Fatal: the run aborts before any row is touched.
	ErrStoreLocked = New("store locked by another process")

	// ErrRowRejected indicates the store adapter refused a row update.
	// The item is marked errored and the run continues.
	ErrRowRejected = New("row update rejected")
)

// IsNotFound checks if an error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsAmbiguous checks if an error is or wraps ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return err != nil && Is(err, ErrAmbiguous)
}

// IsFatal reports whether an error should abort the whole run rather than
// just the current item. Only precondition failures qualify.
func IsFatal(err error) bool {
	return err != nil && Is(err, ErrStoreLocked)
}

// NewNotFoundError creates a not-found error with a formatted message.
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
