package commerce_test

import (
	"context"
	"testing"
	"time"

	commerce "github.com/goliatone/go-commerce"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, email, password string) *commerce.User {
	t.Helper()

	hash, err := commerce.HashPassword(password)
	require.NoError(t, err)

	id, err := hashid.NewUUID(email)
	require.NoError(t, err)

	return &commerce.User{
		ID:           id,
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := commerce.NewTokenService(newTestConfig(), nil)

	t.Run("unknown email", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, repository.NewRecordNotFound()).Once()

		auther := commerce.NewAuthenticator(store, tokens)

		result, err := auther.Login(ctx, "ghost@example.com", "whatever", commerce.AuthorizationHeader{})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, commerce.ErrUserNotFound)
		store.AssertExpectations(t)
	})

	t.Run("provider account never reaches the verifier", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "oauth@example.com").
			Return(&commerce.User{
				ID:    uuid.New(),
				Email: "oauth@example.com",
				// no password hash on record
			}, nil).Once()

		spy := &spyStrategy{}
		auther := commerce.NewAuthenticator(store, tokens, commerce.WithStrategy(spy))

		result, err := auther.Login(ctx, "oauth@example.com", "whatever", commerce.AuthorizationHeader{})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, commerce.ErrExternalProvider)
		assert.Zero(t, spy.verifyCalls)
	})

	t.Run("non-password strategy", func(t *testing.T) {
		user := newTestUser(t, "google@example.com", "password123")

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "google@example.com").Return(user, nil).Once()

		auther := commerce.NewAuthenticator(store, tokens,
			commerce.WithStrategy(commerce.GoogleStrategy{}))

		result, err := auther.Login(ctx, "google@example.com", "password123", commerce.AuthorizationHeader{})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, commerce.ErrExternalProvider)
	})

	t.Run("wrong password", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

		auther := commerce.NewAuthenticator(store, tokens)

		result, err := auther.Login(ctx, "user@example.com", "wrong-password", commerce.AuthorizationHeader{})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, commerce.ErrWrongPassword)
	})

	t.Run("no header yields the token pair", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

		auther := commerce.NewAuthenticator(store, tokens)

		result, err := auther.Login(ctx, "user@example.com", "correct-password", commerce.AuthorizationHeader{})

		require.NoError(t, err)
		assert.Equal(t, commerce.LoginTokenPair, result.Outcome)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, user.ID, result.User.ID)

		// both tokens verify against their own kind
		claims, err := tokens.ValidateAccess(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID())

		claims, err = tokens.ValidateRefresh(result.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID())
	})

	t.Run("access token only acknowledges without tokens", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

		auther := commerce.NewAuthenticator(store, tokens)

		result, err := auther.Login(ctx, "user@example.com", "correct-password", commerce.AuthorizationHeader{
			Scheme:      "Bearer",
			AccessToken: "some-previous-access-token",
		})

		require.NoError(t, err)
		assert.Equal(t, commerce.LoginAcknowledged, result.Outcome)
		assert.Empty(t, result.AccessToken)
		assert.Empty(t, result.RefreshToken)
	})

	t.Run("valid refresh token yields a fresh pair", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		refresh, err := tokens.IssueRefreshToken(user.ID.String())
		require.NoError(t, err)

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

		auther := commerce.NewAuthenticator(store, tokens)

		result, err := auther.Login(ctx, "user@example.com", "correct-password", commerce.AuthorizationHeader{
			Scheme:       "Bearer",
			RefreshToken: refresh,
		})

		require.NoError(t, err)
		assert.Equal(t, commerce.LoginTokenPair, result.Outcome)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("expired refresh token fails the login", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		expiredCfg := newTestConfig()
		expiredCfg.refreshTTL = -time.Minute
		expired, err := commerce.NewTokenService(expiredCfg, nil).IssueRefreshToken(user.ID.String())
		require.NoError(t, err)

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

		auther := commerce.NewAuthenticator(store, tokens)

		result, err := auther.Login(ctx, "user@example.com", "correct-password", commerce.AuthorizationHeader{
			Scheme:       "Bearer",
			RefreshToken: expired,
		})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, commerce.ErrTokenExpired)
	})

	t.Run("full header yields the token pair", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

		auther := commerce.NewAuthenticator(store, tokens)

		result, err := auther.Login(ctx, "user@example.com", "correct-password", commerce.AuthorizationHeader{
			Scheme:       "Bearer",
			AccessToken:  "old-access",
			RefreshToken: "old-refresh",
		})

		require.NoError(t, err)
		assert.Equal(t, commerce.LoginTokenPair, result.Outcome)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("token service failure surfaces", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "user@example.com").Return(user, nil).Once()

		failing := new(MockTokenService)
		failing.On("IssueAccessToken", mock.Anything).
			Return("", assert.AnError).Once()

		auther := commerce.NewAuthenticator(store, failing)

		result, err := auther.Login(ctx, "user@example.com", "correct-password", commerce.AuthorizationHeader{})

		assert.Nil(t, result)
		assert.Error(t, err)
	})
}
