package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Display / window errors
	ErrDisplayConnect ErrorCode = "DISPLAY_CONNECT"
	ErrWindowCreate   ErrorCode = "WINDOW_CREATE"
	ErrWindowProperty ErrorCode = "WINDOW_PROPERTY"

	// Rendering errors
	ErrRenderSurface ErrorCode = "RENDER_SURFACE"
	ErrRenderMarkup  ErrorCode = "RENDER_MARKUP"
	ErrRenderUpload  ErrorCode = "RENDER_UPLOAD"
)

// LathError represents a structured error with code and details
type LathError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LathError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LathError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LathError) Is(target error) bool {
	var targetErr *LathError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LathError with the given code and message
func New(code ErrorCode, message string) *LathError {
	return &LathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LathError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LathError {
	return &LathError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LathError
func Wrap(err error, code ErrorCode, message string) *LathError {
	if err == nil {
		return nil
	}
	return &LathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LathError {
	if err == nil {
		return nil
	}
	return &LathError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LathError) WithDetail(key string, value interface{}) *LathError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lathErr *LathError
	if errors.As(err, &lathErr) {
		return lathErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LathError
func GetErrorCode(err error) ErrorCode {
	var lathErr *LathError
	if errors.As(err, &lathErr) {
		return lathErr.Code
	}
	return ErrUnknown
}
