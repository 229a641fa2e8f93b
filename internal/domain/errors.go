package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that carry their own HTTP status code.
// Handlers use it to map domain failures to responses without
// enumerating every concrete error type.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// ValidationError indicates malformed or missing caller input.
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates a missing or failed authentication.
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates an authenticated caller lacking rights
	// over the specific resource.
	ForbiddenError struct {
		Message string
	}

	// NotFoundError indicates an identifier that does not resolve.
	NotFoundError struct {
		Message string
	}
)

func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }
func (e *NotFoundError) Error() string     { return e.Message }

func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }

// Sentinel errors for use with errors.Is().
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Is lets the typed errors match their sentinels, so callers can branch
// with errors.Is regardless of which form a layer produced.
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
