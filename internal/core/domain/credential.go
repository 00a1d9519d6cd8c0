package domain

import "time"

// Credential is the OAuth access token a session holds together with its
// validity window. A session owns at most one credential and never shares it.
type Credential struct {
	AccessToken string
	ObtainedAt  time.Time
	ExpiresAt   time.Time
}

// Valid reports whether the credential can still be used at the given moment.
// Expiry is checked lazily on use; there is no background sweep, so an
// expired credential may linger in the store until the next read.
func (c Credential) Valid(now time.Time) bool {
	return c.AccessToken != "" && !now.After(c.ExpiresAt)
}
