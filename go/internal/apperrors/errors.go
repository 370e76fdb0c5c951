// Package apperrors holds the error taxonomy shared by every domain package.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and transports.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindUnauthenticated    Kind = "unauthenticated"
	KindAuthorization      Kind = "authorization_error"
	KindNotFound           Kind = "not_found"
	KindInsufficientFunds  Kind = "insufficient_funds"
	KindNotOwned           Kind = "not_owned"
	KindAlreadyListed      Kind = "already_listed"
	KindNotListed          Kind = "not_listed"
	KindConflict           Kind = "conflict"
	KindStorageUnavailable Kind = "storage_unavailable"
)

// Error is a classified domain error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds, Msg: "insufficient funds"}
	ErrNotOwned          = &Error{Kind: KindNotOwned, Msg: "player is not owned by this account"}
	ErrAlreadyListed     = &Error{Kind: KindAlreadyListed, Msg: "player is already listed for sale"}
	ErrNotListed         = &Error{Kind: KindNotListed, Msg: "player is not listed"}
	ErrNotFound          = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated, Msg: "unauthenticated"}
	ErrForbidden         = &Error{Kind: KindAuthorization, Msg: "insufficient permissions"}
	ErrNotMember         = &Error{Kind: KindAuthorization, Msg: "not a member of this league"}
	ErrConflict          = &Error{Kind: KindConflict, Msg: "conflict"}
	ErrLeagueFull        = &Error{Kind: KindConflict, Msg: "league is full"}
)

// Validation returns a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Authorization returns an AuthorizationError with a formatted message.
func Authorization(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a NotFound error naming the missing entity.
func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Msg: entity + " not found"}
}

// Conflict returns a Conflict error with a formatted message.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first classified error in the chain.
// Unclassified errors come from infrastructure and map to StorageUnavailable.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageUnavailable
}

// Message returns the message of the first classified error in the chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "storage unavailable"
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
