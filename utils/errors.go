package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an application error. The string value is the stable
// machine readable code sent to clients.
type ErrorKind string

const (
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindUnavailable       ErrorKind = "UNAVAILABLE"
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindInvalidAmount     ErrorKind = "INVALID_AMOUNT"
	KindInvalidSignature  ErrorKind = "INVALID_SIGNATURE"
	KindConflict          ErrorKind = "CONFLICT"
	KindRateLimited       ErrorKind = "RATE_LIMITED"
	KindUnexpected        ErrorKind = "UNEXPECTED"
)

var kindStatus = map[ErrorKind]int{
	KindForbidden:         http.StatusForbidden,
	KindUnauthorized:      http.StatusUnauthorized,
	KindNotFound:          http.StatusNotFound,
	KindUnavailable:       http.StatusBadRequest,
	KindInvalidInput:      http.StatusBadRequest,
	KindInvalidTransition: http.StatusBadRequest,
	KindInvalidAmount:     http.StatusBadRequest,
	KindInvalidSignature:  http.StatusBadRequest,
	KindConflict:          http.StatusConflict,
	KindRateLimited:       http.StatusTooManyRequests,
	KindUnexpected:        http.StatusInternalServerError,
}

// AppError represents an application error
type AppError struct {
	Kind    ErrorKind `json:"code"`
	Code    int       `json:"-"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError of the given kind
func NewAppError(kind ErrorKind, message string, err error) *AppError {
	code, ok := kindStatus[kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ForbiddenError creates a 403 Forbidden error
func ForbiddenError(message string) *AppError {
	return NewAppError(KindForbidden, message, nil)
}

// UnauthorizedError creates a 401 Unauthorized error
func UnauthorizedError(message string, err error) *AppError {
	return NewAppError(KindUnauthorized, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, message, nil)
}

// UnavailableError marks a referenced entity that exists but cannot be used
func UnavailableError(message string) *AppError {
	return NewAppError(KindUnavailable, message, nil)
}

// InvalidInputError creates a 400 error for malformed caller data
func InvalidInputError(message string) *AppError {
	return NewAppError(KindInvalidInput, message, nil)
}

// InvalidTransitionError creates a 400 error for an illegal status change
func InvalidTransitionError(from, to string) *AppError {
	return NewAppError(KindInvalidTransition, fmt.Sprintf("cannot move order from %q to %q", from, to), nil)
}

// InvalidAmountError creates a 400 error for a non positive amount
func InvalidAmountError(message string) *AppError {
	return NewAppError(KindInvalidAmount, message, nil)
}

// InvalidSignatureError creates a 400 error for a failed gateway signature check
func InvalidSignatureError() *AppError {
	return NewAppError(KindInvalidSignature, "Invalid payment signature", nil)
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string, err error) *AppError {
	return NewAppError(KindConflict, message, err)
}

// UnexpectedError wraps a collaborator failure (store, gateway)
func UnexpectedError(message string, err error) *AppError {
	return NewAppError(KindUnexpected, message, err)
}

// GetAppError returns the AppError in err's chain, if any
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}
