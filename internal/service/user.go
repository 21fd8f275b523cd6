package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
)

// User handles account registration and lookups.
type User struct {
	store  model.UserStore
	hasher model.PasswordHasher
	logger *logger.Logger
}

func NewUser(store model.UserStore, hasher model.PasswordHasher, logger *logger.Logger) *User {
	return &User{store: store, hasher: hasher, logger: logger}
}

// Registration carries the fields accepted at sign-up.
type Registration struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Register creates a new account with a hashed password. Duplicate
// usernames and emails are rejected before insert.
func (u *User) Register(ctx context.Context, reg Registration) (model.User, error) {
	u.logger.Debug("User service: processing registration",
		"username", reg.Username)

	existing, err := u.store.GetByUsername(ctx, reg.Username)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	if err == nil {
		if existing.Email == reg.Email {
			return model.User{}, &model.UserAlreadyExistsError{Field: "email", Value: reg.Email}
		}
		return model.User{}, &model.UserAlreadyExistsError{Field: "username", Value: reg.Username}
	}

	_, err = u.store.GetByEmail(ctx, reg.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if err == nil {
		return model.User{}, &model.UserAlreadyExistsError{Field: "email", Value: reg.Email}
	}

	hashed, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	saved, err := u.store.Create(ctx, model.User{
		UserID:       uuid.New(),
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hashed,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	u.logger.Info("User service: registration completed",
		"username", saved.Username,
		"user_id", saved.UserID)

	return saved, nil
}

// GetByUsername resolves a stored user account by username.
func (u *User) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
