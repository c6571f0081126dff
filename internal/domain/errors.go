package domain

import (
	"errors"
	"fmt"
)

// Kind identifies a class of domain failure with a stable machine code.
type Kind string

const (
	KindAccountInvalid             Kind = "ACCOUNT.INVALID_ACCOUNT"
	KindAccountNotFound            Kind = "ACCOUNT.NOT_FOUND"
	KindAccountAlreadyExists       Kind = "ACCOUNT.ALREADY_EXISTS"
	KindAmountInvalid              Kind = "AMOUNT.INVALID_VALUE"
	KindTransferInsufficientFunds  Kind = "TRANSFER.INSUFFICIENT_FUNDS"
	KindTransferInvalidDestination Kind = "TRANSFER.INVALID_DESTINATION"
	KindStorage                    Kind = "STORAGE.FAILURE"
)

// Error is a domain failure: a machine-readable kind, a human-readable
// message and an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// NewError creates a domain error without an underlying cause.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a domain error wrapping an underlying cause.
func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// StorageError classifies an unexpected persistence failure.
func StorageError(message string, cause error) *Error {
	return WrapError(KindStorage, message, cause)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two domain errors by kind, so errors.Is works across
// independently constructed instances.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Kind == e.Kind
}

// IsKind reports whether err is (or wraps) a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of err, or the empty Kind when err carries no
// domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}
