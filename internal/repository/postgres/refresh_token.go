package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/identityx/identityx-api/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create replaces any existing token owned by the user. Delete and insert
// run in one transaction so concurrent logins for the same user cannot leave
// two live rows; the later transaction wins.
func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) (model.RefreshToken, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serializes concurrent rotations for the same user.
	if _, err := tx.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, token.UserID); err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to lock user row: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, token.UserID); err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to delete existing refresh token: %w", err)
	}

	const insert = `
        INSERT INTO refresh_tokens (token, user_id, expires_at)
        VALUES ($1, $2, $3)
        RETURNING id, token, user_id, expires_at, created_at
    `
	var saved model.RefreshToken
	err = tx.QueryRow(ctx, insert, token.Token, token.UserID, token.ExpiresAt).Scan(
		&saved.ID, &saved.Token, &saved.UserID, &saved.ExpiresAt, &saved.CreatedAt,
	)
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to commit refresh token rotation: %w", err)
	}
	return saved, nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (model.RefreshToken, error) {
	const query = `
        SELECT id, token, user_id, expires_at, created_at
        FROM refresh_tokens WHERE token = $1
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// DeleteByUserID is idempotent; deleting for a user without a token is not
// an error.
func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete refresh tokens by user: %w", err)
	}
	return nil
}
