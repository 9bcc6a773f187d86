package services

import (
	"errors"
	"net/http"

	"novadash/internal/domain"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidReference
	KindUnauthorized
	KindNotFound
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidReference:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is a business-rule failure whose message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func InvalidReference(msg string) *Error { return &Error{Kind: KindInvalidReference, Message: msg} }
func Unauthorized(msg string) *Error     { return &Error{Kind: KindUnauthorized, Message: msg} }
func NotFound(msg string) *Error         { return &Error{Kind: KindNotFound, Message: msg} }

// ErrBadCreds is returned for unknown emails and wrong passwords alike.
var ErrBadCreds = Unauthorized("Invalid email or password")

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// translate maps storage sentinels onto client-facing errors; anything else passes through.
func translate(err error, notFound string, dup *Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(notFound)
	case dup != nil && errors.Is(err, domain.ErrDuplicate):
		return dup
	default:
		return err
	}
}
