package errors

import (
	stderrors "errors"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountInactive    ErrorType = "account_inactive"
	ErrorTypeTokenMissing       ErrorType = "token_missing"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// AuthError represents authentication-specific errors. These terminate the
// request before any business logic runs and are never retried.
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged.
	// Expected failures (wrong password, expired token) don't need error-level logging.
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message does not reveal whether the email or password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true, // track for brute force detection
	}
}

// NewAccountInactiveError creates an error for deactivated accounts.
// Deactivation must take effect immediately even for previously issued tokens,
// so the current user row is always consulted after token verification.
func NewAccountInactiveError(details ...string) *AuthError {
	detail := "Account has been deactivated. Contact your department administrator"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountInactive,
			Message: "Account is inactive",
			Code:    http.StatusForbidden,
			Details: detail,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewTokenMissingError creates an error for requests without a credential
func NewTokenMissingError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenMissing,
			Message: "Missing authorization token",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
	}
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Token has expired",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
	}
}

// NewTokenInvalidError creates an error for malformed or badly signed tokens
func NewTokenInvalidError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid token",
			Code:    http.StatusUnauthorized,
			Details: detail,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// IsAuthError checks if the error is an AuthError
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}
