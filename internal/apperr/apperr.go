// Package apperr provides the structured application error used across
// the engine, in the manner of the teacher's internal/errors package: a
// typed error carrying a stable code, a message and an optional wrapped
// cause.
package apperr

import "fmt"

// AppError is a structured application error.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError with no wrapped cause.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a wrapped cause and message to an existing error, as a new
// AppError under the given code.
func Wrap(code string, cause error, message string) error {
	if cause == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: cause}
}
