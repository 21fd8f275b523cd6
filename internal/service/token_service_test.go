package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/identityx/identityx-api/internal/mocks"
	"github.com/identityx/identityx-api/internal/model"
	"github.com/identityx/identityx-api/internal/testutil"
)

type stubRefreshProvider struct {
	token string
	err   error
	ttl   time.Duration
}

func (s stubRefreshProvider) Generate() (string, error) {
	return s.token, s.err
}

func (s stubRefreshProvider) Expiry(now time.Time) time.Time {
	return now.Add(s.ttl)
}

func TestTokenService_CreateRefreshToken(t *testing.T) {
	ctx := context.Background()

	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	userStore := &mocks.UserStore{}

	store.On("Create", ctx, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.Token == "opaque-token" && rt.UserID == int64(7) && !rt.ExpiresAt.IsZero()
	})).Return(model.RefreshToken{ID: 1, Token: "opaque-token", UserID: 7}, nil).Once()

	svc := NewTokenService(manager, store, userStore, stubRefreshProvider{token: "opaque-token", ttl: time.Hour}, testutil.MakeNoopLogger())

	saved, err := svc.CreateRefreshToken(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", saved.Token)
	store.AssertExpectations(t)
}

func TestTokenService_CreateRefreshToken_GenerateError(t *testing.T) {
	svc := NewTokenService(&mocks.TokenManager{}, &mocks.RefreshTokenStore{}, &mocks.UserStore{},
		stubRefreshProvider{err: assert.AnError}, testutil.MakeNoopLogger())

	_, err := svc.CreateRefreshToken(context.Background(), 7)
	require.Error(t, err)
}

func TestTokenService_Refresh_Valid(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: 7, Username: "jdoe"}
	stored := model.RefreshToken{ID: 1, Token: "refresh-live", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}

	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	userStore := &mocks.UserStore{}

	store.On("GetByToken", ctx, "refresh-live").Return(stored, nil).Once()
	userStore.On("GetByID", ctx, int64(7)).Return(user, nil).Once()
	manager.On("GenerateAccessToken", user, []string(nil)).Return("new-access", nil).Once()

	svc := NewTokenService(manager, store, userStore, stubRefreshProvider{ttl: time.Hour}, testutil.MakeNoopLogger())

	access, refresh, err := svc.Refresh(ctx, "refresh-live")
	require.NoError(t, err)
	assert.Equal(t, "new-access", access)
	// Low-rotation policy: a live refresh token is handed back unchanged.
	assert.Equal(t, "refresh-live", refresh.Token)

	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "DeleteByToken", mock.Anything, mock.Anything)
}

func TestTokenService_Refresh_NotFound(t *testing.T) {
	ctx := context.Background()

	store := &mocks.RefreshTokenStore{}
	store.On("GetByToken", ctx, "gone").Return(model.RefreshToken{}, model.ErrNotFound).Once()

	svc := NewTokenService(&mocks.TokenManager{}, store, &mocks.UserStore{}, stubRefreshProvider{}, testutil.MakeNoopLogger())

	_, _, err := svc.Refresh(ctx, "gone")
	require.ErrorIs(t, err, model.ErrRefreshTokenNotFound)
	assert.Contains(t, err.Error(), "gone")
}

func TestTokenService_Refresh_Expired(t *testing.T) {
	ctx := context.Background()
	stored := model.RefreshToken{ID: 1, Token: "refresh-old", UserID: 7, ExpiresAt: time.Now().Add(-time.Minute)}

	store := &mocks.RefreshTokenStore{}
	store.On("GetByToken", ctx, "refresh-old").Return(stored, nil).Once()
	store.On("DeleteByToken", ctx, "refresh-old").Return(nil).Once()

	svc := NewTokenService(&mocks.TokenManager{}, store, &mocks.UserStore{}, stubRefreshProvider{}, testutil.MakeNoopLogger())

	_, _, err := svc.Refresh(ctx, "refresh-old")
	require.ErrorIs(t, err, model.ErrRefreshTokenExpired)
	assert.Contains(t, err.Error(), "refresh-old")
	store.AssertExpectations(t)
}

func TestTokenService_Refresh_OwnerLookupError(t *testing.T) {
	ctx := context.Background()
	stored := model.RefreshToken{ID: 1, Token: "refresh-live", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}

	store := &mocks.RefreshTokenStore{}
	userStore := &mocks.UserStore{}
	store.On("GetByToken", ctx, "refresh-live").Return(stored, nil).Once()
	userStore.On("GetByID", ctx, int64(7)).Return(model.User{}, assert.AnError).Once()

	svc := NewTokenService(&mocks.TokenManager{}, store, userStore, stubRefreshProvider{}, testutil.MakeNoopLogger())

	_, _, err := svc.Refresh(ctx, "refresh-live")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrRefreshTokenNotFound)
}

func TestTokenService_DeleteByUserID(t *testing.T) {
	ctx := context.Background()

	store := &mocks.RefreshTokenStore{}
	store.On("DeleteByUserID", ctx, int64(7)).Return(nil).Once()

	svc := NewTokenService(&mocks.TokenManager{}, store, &mocks.UserStore{}, stubRefreshProvider{}, testutil.MakeNoopLogger())

	require.NoError(t, svc.DeleteByUserID(ctx, 7))
	store.AssertExpectations(t)
}
