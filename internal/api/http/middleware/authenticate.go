package middleware

import (
	"context"
	"net/http"

	"github.com/identityx/identityx-api/internal/api/http/handler"
	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
)

// Paths that never require authentication. Matching is exact, no
// prefixes.
var exemptPaths = map[string]struct{}{
	"/api/auth/login":         {},
	"/api/user/register":      {},
	"/api/auth/refresh-token": {},
}

// TokenValidator checks access token signatures and claims.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) model.TokenValidation
}

// UserResolver loads the account named by a validated token.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// Authenticate validates the access-token cookie and injects the user
// into the request context. Requests without a cookie pass through
// unauthenticated; downstream handlers decide whether identity is
// required.
type Authenticate struct {
	validator      TokenValidator
	users          UserResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	validator TokenValidator,
	users UserResolver,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		validator:      validator,
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle wraps next with cookie-based authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := exemptPaths[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(handler.AuthorizationCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		validation := m.validator.ValidateAccessToken(cookie.Value)
		if !validation.Valid {
			m.logger.Info("request rejected: invalid access token",
				"path", r.URL.Path,
				"reason", validation.Reason)
			handler.WriteError(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := m.users.GetByUsername(r.Context(), validation.Username)
		if err != nil {
			m.logger.Info("request rejected: token subject not found",
				"path", r.URL.Path)
			handler.WriteError(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
