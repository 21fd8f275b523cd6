package model

import (
	"context"
	"time"
)

// AddressStore defines persistence operations for user addresses.
type AddressStore interface {
	GetByUserID(ctx context.Context, userID int64) ([]Address, error)
	Create(ctx context.Context, address Address) (Address, error)
}

// Address represents a postal address owned by a user.
type Address struct {
	ID          int64
	UserID      int64
	Type        string
	Street      string
	City        string
	State       string
	PostalCode  string
	Country     string
	PhoneNumber string
	IsPrimary   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
