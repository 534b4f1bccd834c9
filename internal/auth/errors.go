package auth

import (
	"fmt"
	"net/http"
	"time"
)

// Machine codes returned to callers. These are stable: clients match on
// them, so renaming one is a breaking change.
const (
	CodeMissingCredential       = "MISSING_CREDENTIAL"
	CodeMalformedCredential     = "MALFORMED_CREDENTIAL"
	CodeCredentialNotFound      = "CREDENTIAL_NOT_FOUND"
	CodeCredentialInactive      = "CREDENTIAL_INACTIVE"
	CodeCredentialExpired       = "CREDENTIAL_EXPIRED"
	CodeAccountInactive         = "ACCOUNT_INACTIVE"
	CodeAccountSuspended        = "ACCOUNT_SUSPENDED"
	CodeTokenRevoked            = "TOKEN_REVOKED"
	CodeInvalidToken            = "INVALID_TOKEN"
	CodeSubjectNotFound         = "SUBJECT_NOT_FOUND"
	CodeAuthenticationRequired  = "AUTHENTICATION_REQUIRED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeAPIKeyRequired          = "API_KEY_REQUIRED"
	CodeInsufficientScopes      = "INSUFFICIENT_SCOPES"
	CodeProjectAuthRequired     = "PROJECT_AUTH_REQUIRED"
	CodeResourceNotFound        = "RESOURCE_NOT_FOUND"
	CodePermissionDenied        = "PERMISSION_DENIED"
	CodeInternalError           = "INTERNAL_ERROR"
)

// Error is a structured authorization denial: an HTTP-equivalent status, a
// stable machine code, a human message, and the denial timestamp.
type Error struct {
	Status    int       `json:"-"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(status int, code, message string) *Error {
	return &Error{
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func ErrMissingCredential(message string) *Error {
	return newError(http.StatusUnauthorized, CodeMissingCredential, message)
}

func ErrMalformedCredential(message string) *Error {
	return newError(http.StatusUnauthorized, CodeMalformedCredential, message)
}

func ErrCredentialNotFound() *Error {
	return newError(http.StatusUnauthorized, CodeCredentialNotFound, "API key not found")
}

func ErrCredentialInactive(status string) *Error {
	return newError(http.StatusUnauthorized, CodeCredentialInactive, "API key is "+status)
}

func ErrCredentialExpired() *Error {
	return newError(http.StatusUnauthorized, CodeCredentialExpired, "API key has expired")
}

func ErrAccountInactive() *Error {
	return newError(http.StatusForbidden, CodeAccountInactive, "account is inactive")
}

func ErrAccountSuspended() *Error {
	return newError(http.StatusForbidden, CodeAccountSuspended, "account is suspended")
}

func ErrTokenRevoked() *Error {
	return newError(http.StatusUnauthorized, CodeTokenRevoked, "token has been revoked")
}

func ErrInvalidToken() *Error {
	return newError(http.StatusUnauthorized, CodeInvalidToken, "invalid or expired token")
}

func ErrSubjectNotFound() *Error {
	return newError(http.StatusUnauthorized, CodeSubjectNotFound, "account not found")
}

func ErrAuthenticationRequired() *Error {
	return newError(http.StatusUnauthorized, CodeAuthenticationRequired, "authentication required")
}

func ErrInsufficientPermissions() *Error {
	return newError(http.StatusForbidden, CodeInsufficientPermissions, "insufficient permissions")
}

func ErrAPIKeyRequired() *Error {
	return newError(http.StatusUnauthorized, CodeAPIKeyRequired, "API key authentication required")
}

// ErrInsufficientScopes echoes the required scopes for diagnosability.
func ErrInsufficientScopes(required []string) *Error {
	return newError(http.StatusForbidden, CodeInsufficientScopes,
		fmt.Sprintf("requires one of scopes %v", required))
}

func ErrProjectAuthRequired() *Error {
	return newError(http.StatusUnauthorized, CodeProjectAuthRequired, "project-scoped authentication required")
}

func ErrResourceNotFound() *Error {
	return newError(http.StatusNotFound, CodeResourceNotFound, "resource not found")
}

func ErrPermissionDenied() *Error {
	return newError(http.StatusForbidden, CodePermissionDenied, "permission denied")
}

// ErrInternal covers store and cache failures. The underlying cause is
// logged server-side; callers only ever see this generic message.
func ErrInternal() *Error {
	return newError(http.StatusInternalServerError, CodeInternalError, "internal error")
}
