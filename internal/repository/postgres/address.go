package postgres

import (
	"context"
	"fmt"

	"github.com/identityx/identityx-api/internal/model"
)

var _ model.AddressStore = (*AddressRepository)(nil)

type AddressRepository struct {
	db *Connection
}

func NewAddressRepository(db *Connection) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, user_id, type, street, city, state, postal_code, country, phone_number, is_primary, created_at, updated_at`

func (r *AddressRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get addresses by user: %w", err)
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Type, &a.Street, &a.City, &a.State,
			&a.PostalCode, &a.Country, &a.PhoneNumber, &a.IsPrimary,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read addresses: %w", err)
	}

	return addresses, nil
}

func (r *AddressRepository) Create(ctx context.Context, address model.Address) (model.Address, error) {
	query := `INSERT INTO addresses (user_id, type, street, city, state, postal_code, country, phone_number, is_primary)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + addressColumns

	var saved model.Address
	err := r.db.QueryRow(ctx, query,
		address.UserID, address.Type, address.Street, address.City, address.State,
		address.PostalCode, address.Country, address.PhoneNumber, address.IsPrimary,
	).Scan(
		&saved.ID, &saved.UserID, &saved.Type, &saved.Street, &saved.City, &saved.State,
		&saved.PostalCode, &saved.Country, &saved.PhoneNumber, &saved.IsPrimary,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Address{}, fmt.Errorf("failed to create address: %w", err)
	}

	return saved, nil
}
