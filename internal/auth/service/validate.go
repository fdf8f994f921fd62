package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength    = 100
	MaxTitleLength   = 200
	MaxContentLength = 64 * 1024
)

// normalizeEmail trims s and requires a bare address ("a@b.c", not
// "Ada <a@b.c>"). Case is kept as given; emails are stored case-sensitively.
func normalizeEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", validation("email is required")
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", validation("email is not a valid address")
	}

	return s, nil
}

func normalizeName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxNameLength {
		return "", validation("name must be at most %d characters", MaxNameLength)
	}
	return s, nil
}
