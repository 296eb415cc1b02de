package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration indicates missing or malformed startup configuration
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeAuthentication indicates the token was rejected by ArgoCD
	ErrorTypeAuthentication ErrorType = "authentication"
	// ErrorTypeUpstream indicates ArgoCD answered with a non-success status
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeParsing indicates a parsing error
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeNotFound indicates a resource not found error
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeTimeout indicates a timeout error
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of the same type
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Type == appErr.Type
	}
	return false
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Details: details,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthentication,
		Message: message,
		Cause:   cause,
	}
}

// NewUpstreamError creates a new upstream error carrying the ArgoCD message
func NewUpstreamError(message string, cause error, details map[string]interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Message: message,
		Cause:   cause,
		Details: details,
	}
}

// NewParsingError creates a new parsing error
func NewParsingError(message string, cause error, details map[string]interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Cause:   cause,
		Details: details,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Details: details,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Cause:   cause,
	}
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsConfigurationError checks if the error is a configuration error
func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsAuthenticationError checks if the error is an authentication error
func IsAuthenticationError(err error) bool {
	return isType(err, ErrorTypeAuthentication)
}

// IsUpstreamError checks if the error is an upstream error
func IsUpstreamError(err error) bool {
	return isType(err, ErrorTypeUpstream)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsTimeoutError checks if the error is a timeout error
func IsTimeoutError(err error) bool {
	return isType(err, ErrorTypeTimeout)
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for errors
// that did not originate here.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// GetErrorDetails extracts details from an AppError
func GetErrorDetails(err error) map[string]interface{} {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}
