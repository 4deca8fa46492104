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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Input errors
	ErrInputParse ErrorCode = "INPUT_PARSE"

	// Module dispatch errors
	ErrUnknownModule ErrorCode = "UNKNOWN_MODULE"
	ErrMissingConfig ErrorCode = "MISSING_CONFIG"

	// Bounded execution errors
	ErrTimeout            ErrorCode = "TIMEOUT"
	ErrTaskPanic          ErrorCode = "TASK_PANIC"
	ErrWorkerDisconnected ErrorCode = "WORKER_DISCONNECTED"

	// Rendering errors
	ErrRender ErrorCode = "RENDER"
)

// PromptlineError represents a structured error with code and details
type PromptlineError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PromptlineError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PromptlineError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PromptlineError) Is(target error) bool {
	var targetErr *PromptlineError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PromptlineError with the given code and message
func New(code ErrorCode, message string) *PromptlineError {
	return &PromptlineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PromptlineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PromptlineError {
	return &PromptlineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PromptlineError
func Wrap(err error, code ErrorCode, message string) *PromptlineError {
	if err == nil {
		return nil
	}
	return &PromptlineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PromptlineError {
	if err == nil {
		return nil
	}
	return &PromptlineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PromptlineError) WithDetail(key string, value interface{}) *PromptlineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks whether err carries the given code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *PromptlineError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var perr *PromptlineError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}
