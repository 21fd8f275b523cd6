package service

import (
	"context"
	"fmt"

	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
)

// Address manages the addresses owned by a user.
type Address struct {
	store  model.AddressStore
	logger *logger.Logger
}

func NewAddress(store model.AddressStore, logger *logger.Logger) *Address {
	return &Address{store: store, logger: logger}
}

// List returns all addresses owned by the user.
func (a *Address) List(ctx context.Context, userID int64) ([]model.Address, error) {
	addresses, err := a.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Create stores a new address for the user. Ownership comes from the
// authenticated request, never from the payload.
func (a *Address) Create(ctx context.Context, userID int64, address model.Address) (model.Address, error) {
	address.UserID = userID

	saved, err := a.store.Create(ctx, address)
	if err != nil {
		return model.Address{}, fmt.Errorf("failed to create address: %w", err)
	}

	a.logger.Info("Address service: address created",
		"id", saved.ID,
		"user_id", userID)

	return saved, nil
}
