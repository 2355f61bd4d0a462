package errors

import (
	"nexus/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(errorCode, message, details string) *BaseError {
	return &BaseError{
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same code, so copies made by WithDetails
// still satisfy errors.Is against the predefined sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Lookup errors
	ErrNotFound = NewBaseError(
		"NOT_FOUND",
		"record not found",
		"",
	)

	ErrClientNotFound = NewBaseError(
		"CLIENT_NOT_FOUND",
		"client not found",
		"",
	)

	ErrProductNotFound = NewBaseError(
		"PRODUCT_NOT_FOUND",
		"product not found",
		"",
	)

	ErrProprietorNotFound = NewBaseError(
		"PROPRIETOR_NOT_FOUND",
		"no proprietor is registered",
		"",
	)

	// Constraint errors
	ErrDuplicateIdentity = NewBaseError(
		"DUPLICATE_IDENTITY",
		"identifier already registered",
		"",
	)

	ErrMissingRequiredField = NewBaseError(
		"MISSING_REQUIRED_FIELD",
		"all required fields must be filled in",
		"",
	)

	ErrReferencedByDependents = NewBaseError(
		"REFERENCED_BY_DEPENDENTS",
		"record has recorded sales and cannot be deleted",
		"",
	)

	ErrSingleInstanceViolation = NewBaseError(
		"SINGLE_INSTANCE_VIOLATION",
		"a proprietor is already registered",
		"",
	)

	// Business rule errors
	ErrInsufficientStock = NewBaseError(
		"INSUFFICIENT_STOCK",
		"insufficient stock for this sale",
		"",
	)

	ErrValidationFailed = NewBaseError(
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		"INVALID_CREDENTIALS",
		"invalid login or secret",
		"",
	)
)

// StorageFailureError is the UnexpectedStorageFailure of the taxonomy: a storage error
// that no domain error describes. It keeps the original cause for diagnostics.
type StorageFailureError struct {
	err     error
	details string
}

// NewStorageFailureError creates a storage failure wrapping err.
func NewStorageFailureError(err error, details string) AppError {
	return &StorageFailureError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StorageFailureError) Error() string {
	return errors.Wrap(e.err, "storage operation failed").Error()
}

// Unwrap exposes the original cause.
func (e *StorageFailureError) Unwrap() error {
	return e.err
}

// ErrorCode returns the business error code
func (e *StorageFailureError) ErrorCode() string {
	return "STORAGE_FAILURE"
}

// Message returns the user-friendly error message
func (e *StorageFailureError) Message() string {
	return "an unexpected storage error occurred, please try again"
}

// Details returns detailed error information
func (e *StorageFailureError) Details() string {
	return e.details
}

// AsStorageFailure returns err unchanged when it already carries a domain error,
// and wraps it as a StorageFailureError otherwise.
func AsStorageFailure(err error, details string) error {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return err
	}

	return NewStorageFailureError(err, details)
}
