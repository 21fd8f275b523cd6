package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apicontext "github.com/identityx/identityx-api/internal/api/http/context"
	"github.com/identityx/identityx-api/internal/model"
	"github.com/identityx/identityx-api/internal/service"
	"github.com/identityx/identityx-api/internal/testutil"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Login(ctx context.Context, username, password string) (service.Session, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *authServiceMock) Logout(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type tokenServiceMock struct {
	mock.Mock
}

func (m *tokenServiceMock) Refresh(ctx context.Context, presented string) (string, model.RefreshToken, error) {
	args := m.Called(ctx, presented)
	return args.String(0), args.Get(1).(model.RefreshToken), args.Error(2)
}

func newAuthFixture(t *testing.T) (*Auth, *authServiceMock, *tokenServiceMock, *apicontext.Manager) {
	t.Helper()
	auth := &authServiceMock{}
	tokens := &tokenServiceMock{}
	cm := apicontext.NewManager()
	h := NewAuth(auth, tokens, cm, 15*time.Minute, testutil.MakeNoopLogger())
	return h, auth, tokens, cm
}

func cookieByName(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestAuth_Login_Success(t *testing.T) {
	h, auth, _, _ := newAuthFixture(t)

	userID := uuid.New()
	session := service.Session{
		User:        model.User{ID: 1, UserID: userID, Username: "alice", Email: "alice@example.com"},
		AccessToken: "signed-access-token",
		RefreshToken: model.RefreshToken{
			Token:     "opaque-refresh",
			UserID:    1,
			ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		},
	}
	auth.On("Login", mock.Anything, "alice", "s3cret").Return(session, nil)

	body := strings.NewReader(`{"username":"alice","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Login successful")
	assert.Contains(t, rr.Body.String(), userID.String())

	access := cookieByName(t, rr, AuthorizationCookie)
	assert.Equal(t, "signed-access-token", access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	assert.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)

	refresh := cookieByName(t, rr, RefreshTokenCookie)
	assert.Equal(t, "opaque-refresh", refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.Greater(t, refresh.MaxAge, 0)

	auth.AssertExpectations(t)
}

func TestAuth_Login_BadCredentials(t *testing.T) {
	h, auth, _, _ := newAuthFixture(t)

	auth.On("Login", mock.Anything, "alice", "wrong").
		Return(service.Session{}, model.ErrBadCredentials)

	body := strings.NewReader(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid username or password")
	assert.Contains(t, rr.Body.String(), "/api/auth/login")
	assert.Empty(t, rr.Result().Cookies())
}

func TestAuth_Login_MissingFields(t *testing.T) {
	h, auth, _, _ := newAuthFixture(t)

	body := strings.NewReader(`{"username":"alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_Refresh_MissingCookie(t *testing.T) {
	h, _, tokens, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	rr := httptest.NewRecorder()

	h.Refresh(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "refresh token cookie is missing")
	tokens.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestAuth_Refresh_Success(t *testing.T) {
	h, _, tokens, _ := newAuthFixture(t)

	rt := model.RefreshToken{
		Token:     "still-valid",
		UserID:    1,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	tokens.On("Refresh", mock.Anything, "still-valid").
		Return("fresh-access-token", rt, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "still-valid"})
	rr := httptest.NewRecorder()

	h.Refresh(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Token refreshed successfully")

	access := cookieByName(t, rr, AuthorizationCookie)
	assert.Equal(t, "fresh-access-token", access.Value)

	refresh := cookieByName(t, rr, RefreshTokenCookie)
	assert.Equal(t, "still-valid", refresh.Value)

	tokens.AssertExpectations(t)
}

func TestAuth_Refresh_ExpiredToken(t *testing.T) {
	h, _, tokens, _ := newAuthFixture(t)

	tokens.On("Refresh", mock.Anything, "stale").
		Return("", model.RefreshToken{}, &model.TokenRefreshError{
			Token: "stale",
			Err:   model.ErrRefreshTokenExpired,
		})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "stale"})
	rr := httptest.NewRecorder()

	h.Refresh(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "stale")
	assert.Contains(t, rr.Body.String(), "FORBIDDEN")
}

func TestAuth_Logout_ClearsCookies(t *testing.T) {
	h, auth, _, cm := newAuthFixture(t)

	auth.On("Logout", mock.Anything, int64(1)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	ctx := cm.SetUserToContext(req.Context(), model.User{ID: 1, Username: "alice"})
	rr := httptest.NewRecorder()

	h.Logout(rr, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Logout successful")

	access := cookieByName(t, rr, AuthorizationCookie)
	assert.Equal(t, -1, access.MaxAge)
	refresh := cookieByName(t, rr, RefreshTokenCookie)
	assert.Equal(t, -1, refresh.MaxAge)

	auth.AssertExpectations(t)
}

func TestAuth_Logout_Unauthenticated(t *testing.T) {
	h, auth, _, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rr := httptest.NewRecorder()

	h.Logout(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestAuth_Check(t *testing.T) {
	h, _, _, cm := newAuthFixture(t)

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		ctx := cm.SetUserToContext(req.Context(), model.User{ID: 1})
		rr := httptest.NewRecorder()

		h.Check(rr, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"authenticated":true`)
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		rr := httptest.NewRecorder()

		h.Check(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"authenticated":false`)
	})
}
