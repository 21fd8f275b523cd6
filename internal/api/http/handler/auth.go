package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
	"github.com/identityx/identityx-api/internal/service"
)

// AuthService covers the login and logout operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (service.Session, error)
	Logout(ctx context.Context, userID int64) error
}

// TokenService covers the refresh-token exchange.
type TokenService interface {
	Refresh(ctx context.Context, presented string) (string, model.RefreshToken, error)
}

// Auth serves the authentication endpoints.
type Auth struct {
	auth           AuthService
	tokens         TokenService
	contextManager model.ContextManager
	accessTTL      time.Duration
	logger         *logger.Logger
}

// NewAuth creates a new authentication handler.
func NewAuth(
	auth AuthService,
	tokens TokenService,
	contextManager model.ContextManager,
	accessTTL time.Duration,
	l *logger.Logger,
) *Auth {
	return &Auth{
		auth:           auth,
		tokens:         tokens,
		contextManager: contextManager,
		accessTTL:      accessTTL,
		logger:         l,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   string `json:"userId"`
}

type refreshResponse struct {
	RefreshToken string    `json:"refreshToken"`
	ExpiryDate   time.Time `json:"expiryDate"`
}

type checkResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Login verifies credentials and establishes the token cookies.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	session, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.setAuthCookies(w, session.AccessToken, session.RefreshToken)

	WriteSuccess(w, http.StatusOK, "Login successful", loginResponse{
		Username: session.User.Username,
		Email:    session.User.Email,
		UserID:   session.User.UserID.String(),
	})
}

// Refresh exchanges the refresh-token cookie for a new access token.
// The refresh token itself is only replaced once it has expired.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		WriteError(w, r, http.StatusBadRequest, "refresh token cookie is missing")
		return
	}

	access, rt, err := h.tokens.Refresh(r.Context(), cookie.Value)
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.setAuthCookies(w, access, rt)

	WriteSuccess(w, http.StatusOK, "Token refreshed successfully", refreshResponse{
		RefreshToken: rt.Token,
		ExpiryDate:   rt.ExpiresAt,
	})
}

// Logout revokes the caller's refresh token and clears both cookies.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.auth.Logout(r.Context(), user.ID); err != nil {
		handleError(w, r, err)
		return
	}

	h.clearAuthCookies(w)

	WriteSuccess(w, http.StatusOK, "Logout successful", nil)
}

// Check reports whether the request carries a valid identity.
func (h *Auth) Check(w http.ResponseWriter, r *http.Request) {
	_, ok := h.contextManager.GetUserFromContext(r.Context())
	WriteSuccess(w, http.StatusOK, "Authentication status", checkResponse{
		Authenticated: ok,
	})
}

func (h *Auth) setAuthCookies(w http.ResponseWriter, access string, rt model.RefreshToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthorizationCookie,
		Value:    access,
		Path:     "/",
		MaxAge:   int(h.accessTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    rt.Token,
		Path:     "/",
		MaxAge:   int(time.Until(rt.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Auth) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{AuthorizationCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
