package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindValidation Kind = "validation"
	KindPermission Kind = "permission"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindTransient  Kind = "transient"
)

// AppError is a typed error carrying an HTTP status code and a kind.
// Store operations return *AppError so handlers can map the failure to a
// response without string matching.
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

func NewPermissionError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Kind: KindPermission, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: message}
}

// NewTransientError wraps a network/backend failure. Transient is the only
// kind a caller may retry automatically.
func NewTransientError(message string) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Kind: KindTransient, Message: message}
}

func isKind(err error, kind Kind) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsPermission(err error) bool { return isKind(err, KindPermission) }
func IsNotFound(err error) bool   { return isKind(err, KindNotFound) }
func IsConflict(err error) bool   { return isKind(err, KindConflict) }
func IsTransient(err error) bool  { return isKind(err, KindTransient) }

// Common errors
var (
	ErrInvalidRequest = NewValidationError("Invalid request parameters")
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Kind: KindPermission, Message: "Unauthorized access"}
	ErrForbidden      = NewPermissionError("You do not have permission to perform this action")
	ErrNotFound       = NewNotFoundError("Resource not found")
)
