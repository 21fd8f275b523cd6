// Package context carries the authenticated user through the request
// context. Identity is request-scoped; there is no ambient global state.
package context

import (
	"context"

	"github.com/identityx/identityx-api/internal/model"
)

type ctxKey int

const userKey ctxKey = iota

// Manager implements model.ContextManager over request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

var _ model.ContextManager = (*Manager)(nil)

// SetUserToContext returns a child context carrying the user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext reads the user attached by the request gate. The
// boolean reports whether the request was authenticated.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
