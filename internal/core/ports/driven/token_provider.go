package driven

import "context"

// TokenProvider supplies access tokens for authenticated provider calls.
// Implementations cache the token and refresh it transparently from the
// long-lived refresh credential when absent or expired. At most one refresh
// is in flight at a time.
type TokenProvider interface {
	// GetToken returns a valid access token, refreshing first if the cached
	// token has crossed its expiry boundary.
	GetToken(ctx context.Context) (string, error)
}
