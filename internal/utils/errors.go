package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidURL          ErrorCode = "INVALID_URL"
	ErrorCodeMetadataUnavailable ErrorCode = "METADATA_UNAVAILABLE"
	ErrorCodeRetrievalFailed     ErrorCode = "RETRIEVAL_FAILED"
	ErrorCodeValidationError     ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrorCodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

// AppError is the client-facing shape of a failure. Err keeps the internal
// cause, which is only exposed in development mode.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Details returns the internal cause as text, or "" when there is none.
func (e *AppError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func WrapError(code ErrorCode, message string, statusCode int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewInvalidURLError keeps the resolver's message since it is user-correctable.
func NewInvalidURLError(err error) *AppError {
	return WrapError(ErrorCodeInvalidURL, err.Error(), http.StatusBadRequest, err)
}

func NewMetadataUnavailableError(err error) *AppError {
	return WrapError(
		ErrorCodeMetadataUnavailable,
		"Could not get video information. Please try again later.",
		http.StatusInternalServerError,
		err,
	)
}

func NewRetrievalError(err error) *AppError {
	return WrapError(
		ErrorCodeRetrievalFailed,
		"Download initialization failed",
		http.StatusInternalServerError,
		err,
	)
}

func NewValidationError(message string, err error) *AppError {
	return WrapError(ErrorCodeValidationError, message, http.StatusBadRequest, err)
}

func NewNotFoundError(path string) *AppError {
	return NewError(
		ErrorCodeNotFound,
		fmt.Sprintf("Resource %s not found", path),
		http.StatusNotFound,
	)
}

func NewInternalError(err error) *AppError {
	return WrapError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
		err,
	)
}
