package model

import "context"

// ContextManager attaches the authenticated user to a request context and
// reads it back. Identity travels with the request, never through globals.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
}
