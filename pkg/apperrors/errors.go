package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

// AppError is the error type returned across the service boundary.
// Every service operation returns either a result or an *AppError;
// no panic-based control flow is allowed to escape a service.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match two AppErrors by code, so wrapped
// instances still compare equal to the predeclared sentinels.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying extra payload for the client.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is is a convenience wrapper over the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is a convenience wrapper over the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors. The messages are user-visible.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Accounts
	ErrUserNotFound       = New(CodeUserNotFound, "Email is not registered", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyTaken, "Email already registered", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidEmail       = New(CodeInvalidEmail, "Email address is not valid", http.StatusBadRequest)

	// Password reset flow
	ErrResetCodeExpired  = New(CodeResetCodeExpired, "Reset code expired or was never requested", http.StatusBadRequest)
	ErrResetCodeMismatch = New(CodeResetCodeMismatch, "Reset code does not match", http.StatusBadRequest)

	// Uploads
	ErrFileTooLarge    = New(CodeFileTooLarge, "File exceeds the 5MB limit", http.StatusBadRequest)
	ErrInvalidFileType = New(CodeInvalidFileType, "Only image files are accepted", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// ValidationError wraps field-level validation details.
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

// StorageError wraps a persistence-layer failure.
func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, "Storage operation failed", http.StatusInternalServerError)
}

// DeliveryError wraps an email delivery failure.
func DeliveryError(err error) *AppError {
	return Wrap(err, CodeDeliveryError, "Failed to send email", http.StatusBadGateway)
}

// InternalError wraps an unexpected failure.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}
