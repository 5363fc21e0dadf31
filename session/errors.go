package session

import (
	"errors"
	"fmt"
	"time"
)

// TransportError represents the different failure classes of the transport
// layer. HTTP-level failures (status >= 400) are not transport errors; they
// are translated by the client package.
type TransportError interface {
	error
	Type() ErrorType
}

// ErrorType defines the category of transport error.
type ErrorType string

const (
	NetworkError     ErrorType = "network"
	TimeoutError     ErrorType = "timeout"
	ValidationError  ErrorType = "validation"
	InterceptorError ErrorType = "interceptor"
)

// networkError represents connection, DNS and other network-level failures.
type networkError struct {
	message string
	wrapped error
}

func (e *networkError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("network error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("network error: %s", e.message)
}

func (e *networkError) Type() ErrorType {
	return NetworkError
}

func (e *networkError) Unwrap() error {
	return e.wrapped
}

// timeoutError represents deadline and net.Error timeout failures.
type timeoutError struct {
	message string
	timeout time.Duration
	wrapped error
}

func (e *timeoutError) Error() string {
	return fmt.Sprintf("timeout error: %s (timeout: %v)", e.message, e.timeout)
}

func (e *timeoutError) Type() ErrorType {
	return TimeoutError
}

func (e *timeoutError) Unwrap() error {
	return e.wrapped
}

// validationError represents request validation failures.
type validationError struct {
	message string
	field   string
}

func (e *validationError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("validation error: %s (field: %s)", e.message, e.field)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

func (e *validationError) Type() ErrorType {
	return ValidationError
}

// interceptorError represents failures raised by interceptors.
type interceptorError struct {
	message string
	stage   string
	wrapped error
}

func (e *interceptorError) Error() string {
	return fmt.Sprintf("interceptor error: %s (stage: %s): %v", e.message, e.stage, e.wrapped)
}

func (e *interceptorError) Type() ErrorType {
	return InterceptorError
}

func (e *interceptorError) Unwrap() error {
	return e.wrapped
}

// NewNetworkError creates a new network error wrapping the underlying cause.
func NewNetworkError(message string, wrapped error) TransportError {
	return &networkError{
		message: message,
		wrapped: wrapped,
	}
}

// NewTimeoutError creates a new timeout error wrapping the underlying cause.
func NewTimeoutError(message string, timeout time.Duration, wrapped error) TransportError {
	return &timeoutError{
		message: message,
		timeout: timeout,
		wrapped: wrapped,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message, field string) TransportError {
	return &validationError{
		message: message,
		field:   field,
	}
}

// NewInterceptorError creates a new interceptor error.
func NewInterceptorError(message, stage string, wrapped error) TransportError {
	return &interceptorError{
		message: message,
		stage:   stage,
		wrapped: wrapped,
	}
}

// IsErrorType checks whether err is a transport error of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var transportErr TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Type() == errorType
	}
	return false
}
