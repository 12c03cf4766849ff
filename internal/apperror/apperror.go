// Package apperror defines the application's error taxonomy.
//
// Errors flow upward from the repository and service layers as *AppError
// values wrapping one of the sentinel kinds below. The HTTP layer never
// inspects error strings — it reads the Code, Status, and Field carried on
// the AppError and renders the response envelope from those.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds, checked with errors.Is. Every AppError wraps exactly one.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// AppError is a domain error carrying everything the response envelope needs.
//
// Code is the machine-readable wire code (e.g. "ALREADY_LIKED"); Status is
// the HTTP status it maps to. Field is set for validation and uniqueness
// errors scoped to a single input field.
type AppError struct {
	Err     error  // sentinel kind
	Code    string // wire code for the error envelope
	Message string // human-readable description
	Field   string // offending field, when field-scoped
	Status  int    // HTTP status code
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports a field-scoped input violation (400).
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Code:    "VALIDATION_ERROR",
		Message: message,
		Field:   field,
		Status:  http.StatusBadRequest,
	}
}

// Unauthorized reports a missing or invalid credential (401).
func Unauthorized() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: "not authenticated",
		Status:  http.StatusUnauthorized,
	}
}

// AuthFailed reports rejected login credentials (401). Distinct from
// Unauthorized so clients can tell "wrong password" from "no token".
func AuthFailed(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Code:    "AUTH_FAILED",
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// AccountBanned reports a login attempt on a banned account (403).
func AccountBanned() *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Code:    "ACCOUNT_BANNED",
		Message: "your account has been banned",
		Status:  http.StatusForbidden,
	}
}

// Forbidden reports an authenticated caller lacking permission (403).
func Forbidden() *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Code:    "FORBIDDEN",
		Message: "access denied",
		Status:  http.StatusForbidden,
	}
}

// NotFound reports a missing resource (404).
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
	}
}

// Conflict reports a terminal domain conflict such as a duplicate like or
// follow (400). code distinguishes the conflict kind on the wire
// (ALREADY_LIKED, ALREADY_FOLLOWING, EMAIL_EXISTS, ...). field may be empty.
func Conflict(code, message, field string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Code:    code,
		Message: message,
		Field:   field,
		Status:  http.StatusBadRequest,
	}
}

// Internal reports a server-side failure (500). code distinguishes the
// failure class (DATABASE_ERROR, CREATION_ERROR, SLUG_ERROR, ...).
func Internal(code, message string) *AppError {
	return &AppError{
		Err:     ErrInternal,
		Code:    code,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}
