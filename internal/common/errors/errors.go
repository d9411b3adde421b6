// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeBadRequest covers missing or malformed input; surfaced
	// immediately, no retry.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"

	// ErrCodeUpstreamUnavailable means the weather fetch failed; the whole
	// request fails and nothing is cached.
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"

	// ErrCodePartialDegradation marks a keyword search that failed or timed
	// out; absorbed into an error-flagged bundle, never fails the request.
	ErrCodePartialDegradation ErrorCode = "PARTIAL_DEGRADATION"

	// ErrCodeCredentialMissing means a provider credential is absent;
	// components switch to deterministic fallback data where one exists.
	ErrCodeCredentialMissing ErrorCode = "CREDENTIAL_MISSING"

	ErrCodePlaceNotFound ErrorCode = "PLACE_NOT_FOUND"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewBadRequestError creates a non-retryable input validation error.
func NewBadRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBadRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError creates an error for a failed mandatory
// upstream call.
func NewUpstreamUnavailableError(service string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   fmt.Sprintf("Upstream service '%s' unavailable", service),
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPartialDegradationError marks a single keyword search failure.
func NewPartialDegradationError(keyword string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodePartialDegradation,
		Message:   fmt.Sprintf("Place search degraded for '%s'", keyword),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialMissingError creates an error for an absent provider credential.
func NewCredentialMissingError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCredentialMissing,
		Message:   fmt.Sprintf("Credential for '%s' not configured", service),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlaceNotFoundError creates a not-found error for a place lookup.
func NewPlaceNotFoundError(placeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlaceNotFound,
		Message:   "Place not found",
		Details:   fmt.Sprintf("placeId: %s", placeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the ErrorCode from an error chain, defaulting to
// INTERNAL_ERROR for untyped errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error to the status the router should return. Only
// BadRequest and not-found get dedicated statuses; everything else that
// reaches the router is a server-side failure.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodePlaceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
