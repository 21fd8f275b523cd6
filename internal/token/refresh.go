package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// RefreshProvider generates opaque refresh token strings and their expiry.
type RefreshProvider struct {
	ttl time.Duration
}

// NewRefreshProvider creates a provider issuing tokens valid for ttl.
func NewRefreshProvider(ttl time.Duration) *RefreshProvider {
	return &RefreshProvider{ttl: ttl}
}

// Generate returns a URL-safe random token carrying 256 bits of entropy.
func (p *RefreshProvider) Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Expiry returns the expiry timestamp for a token issued at now.
func (p *RefreshProvider) Expiry(now time.Time) time.Time {
	return now.Add(p.ttl)
}
