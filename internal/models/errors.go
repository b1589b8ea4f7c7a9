package models

import "errors"

// Sentinel errors the services return so handlers can map them to status
// codes without inspecting driver errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("that email address is already in use")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrInvalidResetToken = errors.New("reset token is invalid or has expired")
)

// ValidationError is a missing or malformed required field, detected before
// any mutation. The message is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func NewFieldError(message string) ValidationError {
	return ValidationError{Message: message}
}
