package errors

import (
	"errors"
	"fmt"
)

// AppError represents an application-specific error
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error codes. The first three form the error-kind enumeration of the core:
// invalid request values, an absent/broken training dataset, and a failed
// categorical encoding.
const (
	ErrCodeInvalidInput            = "INVALID_INPUT"
	ErrCodeTrainingDataUnavailable = "TRAINING_DATA_UNAVAILABLE"
	ErrCodeEncodingMiss            = "ENCODING_MISS"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Common error constructors
func InvalidInput(message string, cause error) *AppError {
	return NewAppError(ErrCodeInvalidInput, message, cause)
}

func TrainingDataUnavailable(message string, cause error) *AppError {
	return NewAppError(ErrCodeTrainingDataUnavailable, message, cause)
}

func EncodingMiss(message string, cause error) *AppError {
	return NewAppError(ErrCodeEncodingMiss, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return NewAppError(ErrCodeInternalError, message, cause)
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
