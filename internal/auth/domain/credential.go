package domain

import "time"

// Credential is the pending one-time code for an email. There is at most one
// per email; issuing a new one replaces the old.
type Credential struct {
	ID        string
	Email     string
	Code      string // zero-padded six digit string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// LiveAt reports whether the credential can still be redeemed at now.
func (c Credential) LiveAt(now time.Time) bool {
	return now.Before(c.ExpiresAt)
}
