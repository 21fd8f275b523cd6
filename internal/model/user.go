package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user account. ID is the internal surrogate key,
// UserID is the public identifier exposed outside the API.
type User struct {
	ID           int64
	UserID       uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	MiddleName   string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
