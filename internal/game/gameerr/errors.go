// Package gameerr defines the sentinel errors shared by the rules engine.
//
// Call sites wrap these with fmt.Errorf("...: %w", ...) so callers can
// classify failures with errors.Is.
package gameerr

import "errors"

var (
	// ErrIllegalState is returned when an operation is invoked without its
	// prerequisite state, e.g. a weapon strike with no owner set.
	ErrIllegalState = errors.New("illegal state")
	// ErrUnsupported is returned when a provider structurally cannot perform
	// the requested action.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrNotFound is returned by catalog and state lookups with no match.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEntry is returned when adding an entry that already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrMissingAttribute is returned when a required attribute is not supplied.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrOutOfRange is returned when a value violates the active range policy.
	ErrOutOfRange = errors.New("value out of range")
)
