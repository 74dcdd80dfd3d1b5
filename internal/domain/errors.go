package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the flight offer explorer.
var (
	// ErrInvalidRequest indicates the caller supplied invalid search parameters.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderUnavailable indicates no provider in the chain could answer.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderTimeout indicates a provider did not answer before its deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrNotConfigured indicates a provider is missing credentials or endpoints.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrUpstream indicates the upstream API returned an unexpected response.
	ErrUpstream = errors.New("upstream error")
)

// ProviderError wraps a failure from a named provider.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable provider error.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a provider error that callers may retry.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a retryable timeout error for provider.
func NewProviderTimeoutError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrProviderTimeout)
}

// NewProviderUnavailableError creates an unavailable error for provider.
func NewProviderUnavailableError(provider string) *ProviderError {
	return NewProviderError(provider, ErrProviderUnavailable)
}

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidRequest formats a message wrapped with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsProviderUnavailable reports whether err wraps ErrProviderUnavailable.
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsProviderTimeout reports whether err wraps ErrProviderTimeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsRetryable reports whether err carries a retryable ProviderError.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}
