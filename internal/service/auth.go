package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
)

// Auth verifies credentials and issues token pairs for sessions.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Session is the outcome of a successful login.
type Session struct {
	User         model.User
	AccessToken  string
	RefreshToken model.RefreshToken
}

// Authenticate verifies the username and password against the stored
// account. Unknown usernames and wrong passwords both surface as
// ErrBadCredentials so responses cannot be used for enumeration.
func (a *Auth) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login attempt for unknown username")
			return model.User{}, model.ErrBadCredentials
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"username", username)
		return model.User{}, model.ErrBadCredentials
	}

	return user, nil
}

// Login authenticates the credentials and, only on success, issues an
// access token and a refresh token. A failed authentication issues nothing
// and leaves the store untouched.
func (a *Auth) Login(ctx context.Context, username, password string) (Session, error) {
	a.logger.Debug("Auth service: processing login",
		"username", username)

	user, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	access, err := a.tokenService.IssueAccessToken(user)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := a.tokenService.CreateRefreshToken(ctx, user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	a.logger.Info("Auth service: login successful",
		"username", username,
		"user_id", user.UserID)

	return Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Logout removes the stored refresh token for the user.
func (a *Auth) Logout(ctx context.Context, userID int64) error {
	if err := a.tokenService.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	a.logger.Info("Auth service: logout completed",
		"id", userID)
	return nil
}
