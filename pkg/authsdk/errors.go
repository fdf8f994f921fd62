package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
)

// Stable error codes returned in the "error" field of every failure.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeIdentityNotFound   = "identity_not_found"
	ErrorCodeIdentityExists     = "identity_already_exists"
	ErrorCodeInvalidCredential  = "invalid_or_expired_credential"
	ErrorCodeDeliveryFailed     = "delivery_failed"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeMethodNotAllowed   = "method_not_allowed"
	ErrorCodeServiceUnavailable = "service_unavailable"
	ErrorCodeServerError        = "server_error"
)

// Error is the JSON error body used across the API. It implements error so
// the SDK can hand it back to callers unchanged.
type Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable machine-checkable code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code so a server response compares equal to the
// predefined error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithDescription returns a copy of e carrying a more specific description.
func (e *Error) WithDescription(desc string) *Error {
	cp := *e
	cp.Description = desc
	return &cp
}

// WriteError writes this Error to an HTTP response writer.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	ErrValidation = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "the request is malformed or missing required fields",
	}

	ErrIdentityNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeIdentityNotFound,
		Description: "no account exists for this email",
	}

	ErrIdentityAlreadyExists = &Error{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeIdentityExists,
		Description: "an account already exists for this email",
	}

	// ErrInvalidCredential never says whether the code was wrong, expired or
	// already used.
	ErrInvalidCredential = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCredential,
		Description: "the code is invalid or has expired",
	}

	ErrDeliveryFailed = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeDeliveryFailed,
		Description: "the code could not be delivered, request a new one",
	}

	ErrUnauthenticated = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "the session token is missing, invalid or expired",
	}

	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	ErrMethodNotAllowed = &Error{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeMethodNotAllowed,
		Description: "method not allowed",
	}

	ErrServiceUnavailable = &Error{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeServiceUnavailable,
		Description: "service not ready",
	}

	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *Error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var e Error
	if err := json.Unmarshal(body, &e); err == nil && e.Code != "" {
		e.StatusCode = resp.StatusCode
		return &e
	}

	// Fallback: create generic error from status code
	return &Error{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
