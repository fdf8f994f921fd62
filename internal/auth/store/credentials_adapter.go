package store

// credentialOverride serves identities and notes from one backend and
// credentials from another.
type credentialOverride struct {
	Store
	creds Credentials
}

// WithCredentials returns a Store that delegates everything to base except
// Credentials, which go to creds. Closing the result closes base only.
func WithCredentials(base Store, creds Credentials) Store {
	if creds == nil {
		return base
	}
	return &credentialOverride{Store: base, creds: creds}
}

func (s *credentialOverride) Credentials() Credentials { return s.creds }
