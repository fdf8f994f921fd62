package domain

import "fmt"

// Purpose says whether an OTP is meant to create an identity or sign into
// an existing one.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeSignin Purpose = "signin"
)

// ParsePurpose accepts "signup" and "signin". An empty value means signin.
func ParsePurpose(s string) (Purpose, error) {
	switch Purpose(s) {
	case "", PurposeSignin:
		return PurposeSignin, nil
	case PurposeSignup:
		return PurposeSignup, nil
	default:
		return "", fmt.Errorf("purpose must be %q or %q", PurposeSignup, PurposeSignin)
	}
}

func (p Purpose) String() string { return string(p) }
