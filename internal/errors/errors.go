// Package errors provides custom error types for the pocketledger core.
// All service-layer errors use AppError so that every operation reports
// failure as a tagged result instead of a panic, a bare nil, or a silent
// no-op.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Identity & authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrIdentifierTaken    = &AppError{Code: "IDENTIFIER_TAKEN", Message: "An account with this email or phone already exists", StatusCode: http.StatusConflict}
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "No account found for this identifier", StatusCode: http.StatusNotFound}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Incorrect identifier or password", StatusCode: http.StatusUnauthorized}
	ErrWeakPassword       = &AppError{Code: "WEAK_PASSWORD", Message: "Password must be at least 8 characters with an uppercase letter, a digit and a symbol", StatusCode: http.StatusBadRequest}
	ErrPasswordMismatch   = &AppError{Code: "PASSWORD_MISMATCH", Message: "Password and confirmation do not match", StatusCode: http.StatusBadRequest}
	ErrNoSignupPending    = &AppError{Code: "NO_SIGNUP_PENDING", Message: "No signup in progress", StatusCode: http.StatusConflict}
)

// Cipher & backup errors.
var (
	ErrDecodeFailure       = &AppError{Code: "DECODE_FAILURE", Message: "Payload could not be decoded", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidBackupFormat = &AppError{Code: "INVALID_BACKUP_FORMAT", Message: "Backup file is missing required sections", StatusCode: http.StatusUnprocessableEntity}
	ErrOwnershipMismatch   = &AppError{Code: "OWNERSHIP_MISMATCH", Message: "Backup belongs to a different account", StatusCode: http.StatusForbidden}
)

// Biometric errors.
var (
	ErrBiometricUnavailable    = &AppError{Code: "BIOMETRIC_UNAVAILABLE", Message: "Biometric login is not available on this device", StatusCode: http.StatusBadRequest}
	ErrBiometricCeremonyFailed = &AppError{Code: "BIOMETRIC_CEREMONY_FAILED", Message: "Biometric verification failed", StatusCode: http.StatusUnauthorized}
	ErrBiometricNotEnrolled    = &AppError{Code: "BIOMETRIC_NOT_ENROLLED", Message: "Biometric login is not enabled for this account", StatusCode: http.StatusBadRequest}
)

// Ledger errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "No budget set for this category", StatusCode: http.StatusNotFound}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
