package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
)

// RefreshProvider generates opaque refresh token strings and their expiry.
type RefreshProvider interface {
	Generate() (string, error)
	Expiry(now time.Time) time.Time
}

// TokenService provides high-level operations for issuing and refreshing
// tokens. It composes the TokenManager, the RefreshTokenStore and the
// opaque refresh token provider.
type TokenService struct {
	manager   model.TokenManager
	store     model.RefreshTokenStore
	userStore model.UserStore
	refresh   RefreshProvider
	logger    *logger.Logger
}

func NewTokenService(
	manager model.TokenManager,
	store model.RefreshTokenStore,
	userStore model.UserStore,
	refresh RefreshProvider,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		manager:   manager,
		store:     store,
		userStore: userStore,
		refresh:   refresh,
		logger:    logger,
	}
}

// IssueAccessToken signs a new access token for the user. Authorities are
// always carried, empty for now.
func (s *TokenService) IssueAccessToken(user model.User) (string, error) {
	access, err := s.manager.GenerateAccessToken(user, nil)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, nil
}

// CreateRefreshToken mints a new opaque refresh token for the user and
// persists it, replacing any existing one. The store performs the
// delete-and-insert in a single transaction.
func (s *TokenService) CreateRefreshToken(ctx context.Context, userID int64) (model.RefreshToken, error) {
	tokenString, err := s.refresh.Generate()
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	saved, err := s.store.Create(ctx, model.RefreshToken{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: s.refresh.Expiry(time.Now()),
	})
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return saved, nil
}

// Refresh exchanges a presented refresh token for a new access token.
// A non-expired refresh token is returned unchanged: rotation happens only
// at login. An expired token is deleted and the caller must log in again.
func (s *TokenService) Refresh(ctx context.Context, presented string) (accessToken string, refreshToken model.RefreshToken, err error) {
	rt, err := s.store.GetByToken(ctx, presented)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Info("Token service: refresh token not found")
			return "", model.RefreshToken{}, &model.TokenRefreshError{Token: presented, Err: model.ErrRefreshTokenNotFound}
		}
		return "", model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if rt.Expired(time.Now()) {
		if err := s.store.DeleteByToken(ctx, rt.Token); err != nil {
			return "", model.RefreshToken{}, fmt.Errorf("failed to delete expired refresh token: %w", err)
		}
		s.logger.Info("Token service: refresh token expired",
			"user_id", rt.UserID)
		return "", model.RefreshToken{}, &model.TokenRefreshError{Token: presented, Err: model.ErrRefreshTokenExpired}
	}

	user, err := s.userStore.GetByID(ctx, rt.UserID)
	if err != nil {
		return "", model.RefreshToken{}, fmt.Errorf("failed to get refresh token owner: %w", err)
	}

	access, err := s.manager.GenerateAccessToken(user, nil)
	if err != nil {
		return "", model.RefreshToken{}, fmt.Errorf("failed to issue new access token: %w", err)
	}

	s.logger.Debug("Token service: access token refreshed",
		"username", user.Username)

	return access, rt, nil
}

// DeleteByUserID removes the stored refresh token for the user. Used by
// logout; idempotent.
func (s *TokenService) DeleteByUserID(ctx context.Context, userID int64) error {
	if err := s.store.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
