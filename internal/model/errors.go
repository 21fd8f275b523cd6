package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBadCredentials covers both unknown username and wrong password so
	// callers cannot enumerate accounts.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrUserAlreadyExists is returned on registration conflicts.
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrRefreshTokenNotFound = errors.New("refresh token is not found")
	ErrRefreshTokenExpired  = errors.New("refresh token was expired")
)

// UserAlreadyExistsError reports a registration conflict on a specific field.
// It matches ErrUserAlreadyExists under errors.Is.
type UserAlreadyExistsError struct {
	Field string
	Value string
}

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with %s %s already exists", e.Field, e.Value)
}

func (e *UserAlreadyExistsError) Is(target error) bool {
	return target == ErrUserAlreadyExists
}

// TokenRefreshError wraps a refresh failure together with the presented
// token value, which is embedded in the client-facing message for
// diagnostics.
type TokenRefreshError struct {
	Token string
	Err   error
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("failed for [%s]: %s", e.Token, e.Err)
}

func (e *TokenRefreshError) Unwrap() error {
	return e.Err
}
