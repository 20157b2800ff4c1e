package service

import "errors"

// Error kinds. Every service error wraps exactly one of these so the HTTP
// layer can switch on kind with errors.Is instead of probing structure.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Error pairs a kind with the user-facing message for it.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Unwrap() error { return e.kind }

func E(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func BadRequest(message string) *Error   { return E(ErrBadRequest, message) }
func Unauthorized(message string) *Error { return E(ErrUnauthorized, message) }
func NotFound(message string) *Error     { return E(ErrNotFound, message) }
func Conflict(message string) *Error     { return E(ErrConflict, message) }
func Internal(message string) *Error     { return E(ErrInternal, message) }
