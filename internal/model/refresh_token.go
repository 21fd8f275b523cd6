package model

import (
	"context"
	"time"
)

// RefreshTokenStore persists refresh tokens. A user owns at most one live
// token: Create replaces any existing row for the user in a single
// transaction so two concurrent logins cannot leave two live rows.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) (RefreshToken, error)
	GetByToken(ctx context.Context, token string) (RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// RefreshToken is an opaque long-lived credential stored server-side.
type RefreshToken struct {
	ID        int64
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given time.
func (t RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
