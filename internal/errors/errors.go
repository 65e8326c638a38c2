// Package errors defines the run failure taxonomy.
//
// A run either produces a full record list or fails with exactly one of
// these errors; there is no partial success.
package errors

import (
	"errors"
	"fmt"
)

// ConfigError means the client is not runnable as configured, e.g. the
// webhook endpoint is unset. Fatal to the run, never retried.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewConfigError creates a ConfigError with a formatted message
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError means the user input cannot be encoded, e.g. a missing
// or oversized upload. The run aborts before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RequestError wraps a transport-level failure (timeout, connection
// refused, body read error). The underlying message is surfaced verbatim.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HTTPError carries a non-2xx upstream answer. Status code and raw body
// are surfaced verbatim, unparsed.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// IsConfig reports whether err is a configuration error
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsHTTP extracts an HTTPError from err, if any
func AsHTTP(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
