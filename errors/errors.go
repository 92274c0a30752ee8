// Package errors provides error handling for dirschema.
//
// This package re-exports github.com/cockroachdb/errors (stack traces,
// wrapping, hints) and defines the sentinel error kinds raised by the
// schema resolution engine. Every failure surfaced by this module wraps
// exactly one of the sentinels below; callers discriminate with Is:
//
//	resolved, err := parser.Parse("user", "user")
//	if errors.Is(err, errors.ErrObjectTypeNotFound) {
//	    // handle unknown object type
//	}
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
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Sentinel error kinds for schema resolution. All are terminal and
// non-retryable: a load, merge, or validation failure aborts the call
// that triggered it, with no partial result.
var (
	// ErrResourceUnreadable indicates the backing document could not be read
	ErrResourceUnreadable = New("schema resource unreadable")

	// ErrDocumentMalformed indicates deserialization of a document failed
	ErrDocumentMalformed = New("schema document malformed")

	// ErrNoObjectsSection indicates a document lacks an objects key
	ErrNoObjectsSection = New("document has no objects section")

	// ErrObjectTypeNotFound indicates no object definition matches the requested type
	ErrObjectTypeNotFound = New("object type not found")

	// ErrMissingClassOrCategory indicates an object definition carries neither class nor category
	ErrMissingClassOrCategory = New("object definition missing class and category")

	// ErrMissingAttributes indicates an object definition has an absent or empty attribute map
	ErrMissingAttributes = New("object definition missing attributes")

	// ErrAttributesNotAssociative indicates an attribute map keyed by position instead of name
	ErrAttributesNotAssociative = New("attributes must be an associative map")

	// ErrInvalidDirective indicates a malformed extends or extends_default value
	ErrInvalidDirective = New("invalid inheritance directive")

	// ErrCyclicReference indicates a document or object reached twice in one resolution chain
	ErrCyclicReference = New("cyclic schema reference")
)

// IsResolutionError reports whether err wraps any of the schema
// resolution sentinels, as opposed to an unrelated failure.
func IsResolutionError(err error) bool {
	if err == nil {
		return false
	}
	return IsAny(err,
		ErrResourceUnreadable,
		ErrDocumentMalformed,
		ErrNoObjectsSection,
		ErrObjectTypeNotFound,
		ErrMissingClassOrCategory,
		ErrMissingAttributes,
		ErrAttributesNotAssociative,
		ErrInvalidDirective,
		ErrCyclicReference,
	)
}

// IsNotFoundError reports whether err is a missing-type or missing-resource
// failure, the two kinds a caller may reasonably fall back from.
func IsNotFoundError(err error) bool {
	return err != nil && IsAny(err, ErrObjectTypeNotFound, ErrResourceUnreadable)
}
