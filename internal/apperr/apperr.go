package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error. The set is closed: handlers map each
// kind to an HTTP status with an exhaustive switch.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindConflict
	KindNotFound
	KindInternal
)

// String returns a short machine-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is a typed domain error. Message is safe to return to clients;
// Err carries the underlying cause and is only ever logged server-side.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Authentication reports a missing, invalid or expired token.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Conflict reports a request whose target state already satisfies or
// contradicts the requested transition.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound reports an absent or inaccessible entity. Acting on a resource
// owned by someone else also surfaces as NotFound so existence never leaks.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal reports a storage, email or configuration failure beyond the
// caller's control. cause is preserved for logs only.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

// KindOf extracts the kind of err. Errors that are not *Error coerce to
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the client-safe message of err. Errors that are not
// *Error yield a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}
