package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/identityx/identityx-api/internal/model"
)

type TokenManager struct {
	mock.Mock
}

var _ model.TokenManager = (*TokenManager)(nil)

func (m *TokenManager) GenerateAccessToken(user model.User, authorities []string) (string, error) {
	args := m.Called(user, authorities)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ValidateAccessToken(token string) model.TokenValidation {
	args := m.Called(token)
	return args.Get(0).(model.TokenValidation)
}

type PasswordHasher struct {
	mock.Mock
}

var _ model.PasswordHasher = (*PasswordHasher)(nil)

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}
