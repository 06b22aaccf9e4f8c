// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package apperr defines the centralized error handling framework for BoiBritto.

It provides a rich error type that bridges the gap between low-level
domain/storage errors and high-level HTTP responses.

Taxonomy:

  - UNAUTHENTICATED: missing, malformed, expired, or unverifiable credential.
  - USER_NOT_REGISTERED: valid credential, but no application profile exists
    yet. Clients use this to route the caller to the signup step.
  - FORBIDDEN: authenticated user who does not own the target entity.
  - VALIDATION_FAILED: payload violates a documented invariant.
  - NOT_FOUND: entity absent.
  - UNEXPECTED: anything else; logged in full server-side, surfaced to the
    caller only as a generic message.

Every error that leaves the service layer should be wrapped as an [AppError]
to ensure consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the BoiBritto API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to
// clients in a production configuration.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_FAILED responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// Unauthenticated creates a 401 [AppError].
//
// Every credential failure (absent header, bad scheme, malformed token,
// expired token, signature mismatch, provider unreachable) collapses to
// this single outcome; the concrete sub-case stays in Cause for logging.
func Unauthenticated(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHENTICATED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// UserNotRegistered creates a 401 [AppError] with a distinct machine code.
//
// # Why distinct from UNAUTHENTICATED?
//
// The credential itself verified fine — there is simply no application
// profile bound to its subject yet. Clients branch on this code to send
// the caller to the "complete signup" step instead of a sign-in prompt.
func UserNotRegistered() *AppError {
	return &AppError{
		Code:       "USER_NOT_REGISTERED",
		Message:    "User is not registered",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError] for authenticated-but-not-owner access.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Collection") // "Collection not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationFailed creates a 400 [AppError] with optional per-field details.
func ValidationFailed(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited() *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many requests",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Unexpected creates a 500 [AppError] wrapping an unexpected server-side
// error. The cause is stored for logging but is never sent to the client.
func Unexpected(cause error) *AppError {
	return &AppError{
		Code:       "UNEXPECTED",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
