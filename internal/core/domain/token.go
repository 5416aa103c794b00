package domain

import "time"

// AccessToken is a short-lived bearer credential obtained via refresh exchange.
// It is owned exclusively by the token provider; callers receive copies.
type AccessToken struct {
	// Value is the bearer token string.
	Value string

	// ExpiresAt is the expiry boundary. The provider never hands out a token
	// past this boundary without refreshing first.
	ExpiresAt time.Time
}

// IsExpired reports whether the token has crossed its expiry boundary.
func (t AccessToken) IsExpired() bool {
	return t.Value == "" || !time.Now().Before(t.ExpiresAt)
}
