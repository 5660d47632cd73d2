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

	// Dispatch errors
	ErrUnknownTemplate ErrorCode = "UNKNOWN_TEMPLATE"

	// Rendering errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrRender           ErrorCode = "RENDER"

	// Archive errors
	ErrArchive ErrorCode = "ARCHIVE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// SftError represents a structured error with code and details
type SftError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SftError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SftError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SftError) Is(target error) bool {
	var targetErr *SftError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SftError with the given code and message
func New(code ErrorCode, message string) *SftError {
	return &SftError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SftError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SftError {
	return &SftError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SftError
func Wrap(err error, code ErrorCode, message string) *SftError {
	if err == nil {
		return nil
	}
	return &SftError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SftError {
	if err == nil {
		return nil
	}
	return &SftError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SftError) WithDetail(key string, value interface{}) *SftError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var sftErr *SftError
	if errors.As(err, &sftErr) {
		return sftErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SftError
func GetErrorCode(err error) ErrorCode {
	var sftErr *SftError
	if errors.As(err, &sftErr) {
		return sftErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SftError
func GetErrorDetails(err error) map[string]interface{} {
	var sftErr *SftError
	if errors.As(err, &sftErr) {
		return sftErr.Details
	}
	return nil
}

// IsConfigurationError reports whether err was raised while validating options.
func IsConfigurationError(err error) bool {
	return IsErrorCode(err, ErrConfigValid)
}
