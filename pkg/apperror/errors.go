package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target carries the same Kind. Errors without a Kind
// only match themselves.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Kind == "" || t.Kind == "" {
		return e == t
	}
	return e.Kind == t.Kind
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidToken   = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Order & invoicing business-rule errors
var (
	ErrEmptyCart = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    "empty_cart",
		Message: "Cannot create an invoice from an empty cart",
	}
	ErrMissingTableNumber = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    "missing_table_number",
		Message: "Dine-in orders require a table number",
	}
	ErrInvalidQuantity = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    "invalid_quantity",
		Message: "Quantity must be at least 1",
	}
	ErrInvalidPrice = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    "invalid_price",
		Message: "Unit price cannot be negative",
	}
	ErrInvalidDiscount = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    "invalid_discount",
		Message: "Discount amount cannot be negative",
	}
	ErrAlreadyRefunded = &AppError{
		Code:    http.StatusConflict,
		Kind:    "already_refunded",
		Message: "Invoice has already been refunded",
	}
	ErrInvalidCoordinatorTransition = &AppError{
		Code:    http.StatusConflict,
		Kind:    "invalid_coordinator_transition",
		Message: "Payment step is not valid in the current state",
	}
	ErrCommitFailed = &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    "commit_failed",
		Message: "Invoice could not be committed",
	}
	ErrRegisterBusy = &AppError{
		Code:    http.StatusConflict,
		Kind:    "register_busy",
		Message: "Register is being updated by another request, retry",
	}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewKindError creates an error that matches the sentinel of the same kind
// under errors.Is while carrying a more specific message.
func NewKindError(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:    sentinel.Code,
		Kind:    sentinel.Kind,
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
