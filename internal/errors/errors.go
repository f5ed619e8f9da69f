package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeUnexpectedStatus   = "UNEXPECTED_STATUS"
)

// ErrNotFound matches any APIError carrying a 404 from the task API.
var ErrNotFound = errors.New("task not found")

// APIError is a non-2xx answer from the task API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("task api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 answers.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// NewAPIError creates an APIError whose code is derived from the status.
func NewAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Code:       CodeForStatus(statusCode),
		Message:    message,
	}
}

// CodeForStatus maps an HTTP status to one of the error codes above.
func CodeForStatus(statusCode int) string {
	switch {
	case statusCode == http.StatusNotFound:
		return ErrCodeNotFound
	case statusCode == http.StatusConflict:
		return ErrCodeConflict
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return ErrCodeInvalidInput
	case statusCode == http.StatusServiceUnavailable || statusCode == http.StatusBadGateway || statusCode == http.StatusGatewayTimeout:
		return ErrCodeServiceUnavailable
	case statusCode >= 500:
		return ErrCodeInternalError
	default:
		return ErrCodeUnexpectedStatus
	}
}

// IsNotFound reports whether err is (or wraps) a 404 from the task API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StatusCode extracts the upstream status from err, or 0 for transport errors.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
