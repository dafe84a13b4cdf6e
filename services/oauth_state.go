package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	OAuthStateCookiePrefix = "oauth_state_"
	OAuthStateTTL          = 10 * time.Minute
)

// GenerateOAuthState generates a random CSRF state token for an OAuth flow.
// The handler stores it in a short-lived cookie named per platform and the
// callback consumes it.
func GenerateOAuthState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
