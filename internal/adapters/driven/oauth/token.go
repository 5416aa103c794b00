// Package oauth provides the access-token lifecycle for the storage
// provider: a cached short-lived token refreshed from a long-lived refresh
// credential via the provider's token endpoint.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
	"github.com/custodia-labs/dropsearch/internal/core/ports/driven"
	"github.com/custodia-labs/dropsearch/internal/logger"
)

// Ensure TokenManager implements the TokenProvider interface.
var _ driven.TokenProvider = (*TokenManager)(nil)

// DefaultTokenURL is Dropbox's OAuth2 token endpoint.
const DefaultTokenURL = "https://api.dropbox.com/oauth2/token"

// refreshBuffer refreshes slightly before the provider expiry so a token
// handed to a caller cannot cross its boundary mid-request.
const refreshBuffer = time.Minute

// Credentials is the immutable refresh credential supplied at process start.
type Credentials struct {
	// AppKey is the OAuth client ID.
	AppKey string

	// AppSecret is the OAuth client secret.
	AppSecret string

	// RefreshToken is the long-lived refresh credential.
	RefreshToken string

	// TokenURL overrides the token endpoint. Defaults to DefaultTokenURL.
	TokenURL string
}

// TokenManager owns the access-token cache and performs refresh exchanges.
// Safe for concurrent use: double-checked locking ensures at most one
// refresh is in flight at a time.
type TokenManager struct {
	creds  Credentials
	client *http.Client

	mu           sync.RWMutex
	cached       domain.AccessToken
	refreshToken string
}

// NewTokenManager creates a token manager for the given refresh credential.
// Returns domain.ErrAuthConfig if required credential fields are absent.
func NewTokenManager(creds Credentials) (*TokenManager, error) {
	if creds.AppKey == "" || creds.AppSecret == "" || creds.RefreshToken == "" {
		return nil, fmt.Errorf("%w: app key, app secret and refresh token are required", domain.ErrAuthConfig)
	}
	if creds.TokenURL == "" {
		creds.TokenURL = DefaultTokenURL
	}

	return &TokenManager{
		creds:        creds,
		client:       &http.Client{Timeout: 30 * time.Second},
		refreshToken: creds.RefreshToken,
	}, nil
}

// GetToken returns a valid access token, refreshing if necessary.
// A token past its expiry boundary is never returned without a preceding
// refresh; a failed refresh discards the stale token and returns a wrapped
// domain.ErrTokenRefreshFailed.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	// Fast path: check cache with read lock
	m.mu.RLock()
	if !m.cached.IsExpired() {
		token := m.cached.Value
		m.mu.RUnlock()
		return token, nil
	}
	m.mu.RUnlock()

	// Slow path: need refresh, acquire write lock
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if !m.cached.IsExpired() {
		return m.cached.Value, nil
	}

	m.cached = domain.AccessToken{}

	logger.Debug("Access token absent or expired, refreshing")
	token, newRefresh, err := m.exchange(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}

	m.cached = token
	// The exchange response may omit a replacement refresh credential;
	// the original is retained for the next cycle.
	if newRefresh != "" {
		m.refreshToken = newRefresh
	}

	return m.cached.Value, nil
}

// exchange performs the refresh-grant POST against the token endpoint.
// Caller holds the write lock.
func (m *TokenManager) exchange(ctx context.Context) (domain.AccessToken, string, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", m.refreshToken)
	data.Set("client_id", m.creds.AppKey)
	data.Set("client_secret", m.creds.AppSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.creds.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return domain.AccessToken{}, "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return domain.AccessToken{}, "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return domain.AccessToken{}, "", fmt.Errorf("token error: %s - %s", errResp.Error, errResp.Description)
		}
		return domain.AccessToken{}, "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return domain.AccessToken{}, "", fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return domain.AccessToken{}, "", fmt.Errorf("token response missing access_token")
	}

	expiry := time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - refreshBuffer)
	logger.Debug("Token refreshed, valid until %s", expiry.Format(time.RFC3339))

	return domain.AccessToken{Value: tokenResp.AccessToken, ExpiresAt: expiry}, tokenResp.RefreshToken, nil
}
