package service

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failures the service layer reports. Callers
// branch on Kind, never on message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindIdentityNotFound
	KindIdentityAlreadyExists
	KindInvalidCredential
	KindDeliveryFailed
	KindUnauthenticated
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindIdentityNotFound:
		return "identity_not_found"
	case KindIdentityAlreadyExists:
		return "identity_already_exists"
	case KindInvalidCredential:
		return "invalid_or_expired_credential"
	case KindDeliveryFailed:
		return "delivery_failed"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a typed service failure. Detail is safe to show to the caller;
// Err is the underlying cause and is only ever logged.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrValidation)
// holds whatever the detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation            = &Error{Kind: KindValidation}
	ErrIdentityNotFound      = &Error{Kind: KindIdentityNotFound, Detail: "no identity exists for this email"}
	ErrIdentityAlreadyExists = &Error{Kind: KindIdentityAlreadyExists, Detail: "an identity already exists for this email"}
	ErrInvalidCredential     = &Error{Kind: KindInvalidCredential, Detail: "invalid or expired code"}
	ErrDeliveryFailed        = &Error{Kind: KindDeliveryFailed, Detail: "failed to send the code"}
	ErrUnauthenticated       = &Error{Kind: KindUnauthenticated, Detail: "invalid or expired session token"}
	ErrNotFound              = &Error{Kind: KindNotFound, Detail: "not found"}
)

func validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, args...)}
}

func wrapKind(sentinel *Error, err error) error {
	return &Error{Kind: sentinel.Kind, Detail: sentinel.Detail, Err: err}
}

// KindOf returns the Kind carried by err, or KindUnknown for anything that
// is not a service error (store outages and the like).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// DetailOf returns the caller-safe detail of a service error.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
