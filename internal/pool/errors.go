package pool

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the pool surfaces to its callers.
type ErrorKind string

const (
	// KindInvalidSource means the source text failed to parse.
	KindInvalidSource ErrorKind = "invalid_source"
	// KindUnsupportedUnit means the top level is not imports plus exactly
	// one function definition.
	KindUnsupportedUnit ErrorKind = "unsupported_unit"
	// KindInvalidLanguageTag means the tag's length or character class is
	// outside the allowed range.
	KindInvalidLanguageTag ErrorKind = "invalid_language_tag"
	// KindInvalidHash means a hash is not 64-hex-lowercase.
	KindInvalidHash ErrorKind = "invalid_hash"
	// KindInvalidLocator means the HASH[@LANG[@MHASH]] surface syntax is
	// malformed.
	KindInvalidLocator ErrorKind = "invalid_locator"
	// KindNotFound means the requested function, language, or overlay is
	// not present.
	KindNotFound ErrorKind = "not_found"
	// KindAmbiguousOverlay means multiple overlays exist and none was
	// requested; Detail carries the enumerable []OverlaySummary.
	KindAmbiguousOverlay ErrorKind = "ambiguous_overlay"
	// KindSchemaMismatch means a stored file has an unsupported schema
	// version or a missing required field.
	KindSchemaMismatch ErrorKind = "schema_mismatch"
	// KindIntegrityFailure means re-hashing stored content does not match
	// the hash embedded in its path.
	KindIntegrityFailure ErrorKind = "integrity_failure"
	// KindIoError means an underlying filesystem operation failed.
	KindIoError ErrorKind = "io_error"
)

// Error is the single error shape the pool returns: one kind, one message,
// and one machine-inspectable payload.
type Error struct {
	Kind    ErrorKind
	Message string
	Detail  any   // payload for the caller, e.g. the ambiguous overlay list
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a pool *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var poolErr *Error
	if errors.As(err, &poolErr) {
		return poolErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given error kind.
func IsKind(err error, kind ErrorKind) bool {
	poolErr, ok := AsError(err)
	return ok && poolErr.Kind == kind
}

func newErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapIoError(message string, err error) *Error {
	return &Error{Kind: KindIoError, Message: message, Err: err}
}
