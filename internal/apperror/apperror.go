// Package apperror defines the error kinds shared by services and the HTTP layer.
//
// Every error produced by a service carries one of the kinds below so the
// HTTP layer can pick a status code with errors.Is, without knowing which
// service raised it.
package apperror

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrResourceNotFound marks a missing entity addressed by the request path.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrSubresourceNotFound marks a missing entity referenced inside the request body.
	ErrSubresourceNotFound = errors.New("subresource not found")
	// ErrConflict marks a write that clashes with existing rows.
	ErrConflict = errors.New("conflict")
)

// Error is a message paired with one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func ResourceNotFound(message string) *Error {
	return &Error{Kind: ErrResourceNotFound, Message: message}
}

func SubresourceNotFound(message string) *Error {
	return &Error{Kind: ErrSubresourceNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// FieldError describes one invalid field of a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field of a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add records a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns e when it holds at least one field error, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// StatusCode maps an error to the HTTP status it should be reported with.
func StatusCode(err error) int {
	var ve *ValidationError
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrResourceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrSubresourceNotFound):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}
