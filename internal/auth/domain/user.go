package domain

import "time"

// DefaultUserName is given to identities that sign up without a name.
const DefaultUserName = "User"

// User is a persisted identity. Email is the unique key and never changes
// once the user exists.
type User struct {
	ID              string
	Email           string
	Name            string
	AvatarRef       string
	EmailVerifiedAt *time.Time // set when signup completes via OTP
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
