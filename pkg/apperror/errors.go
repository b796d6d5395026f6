package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	// Data carries a payload the caller needs to recover, e.g. the saved draft
	// of a bill the store API rejected.
	Data interface{} `json:"data,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound          = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest        = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer    = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict          = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable     = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrUpstreamFailed    = &AppError{Code: http.StatusBadGateway, Message: "Store API request failed"}
	ErrUpstreamTimeout   = &AppError{Code: http.StatusGatewayTimeout, Message: "Store API did not respond in time"}
	ErrRequestSuperseded = &AppError{Code: http.StatusConflict, Message: "Request superseded by a newer one"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewUpstreamError maps a store API failure onto an AppError. Client errors
// keep their status so the dashboard can show the store's own message; server
// errors surface as 502.
func NewUpstreamError(status int, message string) *AppError {
	if message == "" {
		message = ErrUpstreamFailed.Message
	}
	code := http.StatusBadGateway
	if status >= 400 && status < 500 {
		code = status
	}
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithData returns a copy of the error carrying data
func (e *AppError) WithData(data interface{}) *AppError {
	cp := *e
	cp.Data = data
	return &cp
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
