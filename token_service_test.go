package commerce_test

import (
	"testing"
	"time"

	commerce "github.com/goliatone/go-commerce"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	cfg := newTestConfig()
	service := commerce.NewTokenService(cfg, nil)
	userID := uuid.New().String()

	t.Run("access token round trip", func(t *testing.T) {
		token, err := service.IssueAccessToken(userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateAccess(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
		assert.Equal(t, userID, claims.Subject())
		assert.WithinDuration(t, time.Now().Add(cfg.accessTTL), claims.Expires(), time.Minute)
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		token, err := service.IssueRefreshToken(userID)
		require.NoError(t, err)

		claims, err := service.ValidateRefresh(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
		assert.WithinDuration(t, time.Now().Add(cfg.refreshTTL), claims.Expires(), time.Minute)
	})

	t.Run("validation is idempotent", func(t *testing.T) {
		token, err := service.IssueAccessToken(userID)
		require.NoError(t, err)

		first, err := service.ValidateAccess(token)
		require.NoError(t, err)
		second, err := service.ValidateAccess(token)
		require.NoError(t, err)

		assert.Equal(t, first.UserID(), second.UserID())
		assert.Equal(t, first.Expires(), second.Expires())
	})

	t.Run("refuses to issue without a user id", func(t *testing.T) {
		_, err := service.IssueAccessToken("")
		assert.Error(t, err)
	})
}

func TestTokenServiceKindIsolation(t *testing.T) {
	service := commerce.NewTokenService(newTestConfig(), nil)
	userID := uuid.New().String()

	access, err := service.IssueAccessToken(userID)
	require.NoError(t, err)
	refresh, err := service.IssueRefreshToken(userID)
	require.NoError(t, err)

	t.Run("access token fails refresh validation", func(t *testing.T) {
		_, err := service.ValidateRefresh(access)
		assert.Error(t, err)
		assert.True(t, commerce.IsMalformedError(err))
	})

	t.Run("refresh token fails access validation", func(t *testing.T) {
		_, err := service.ValidateAccess(refresh)
		assert.Error(t, err)
		assert.True(t, commerce.IsMalformedError(err))
	})
}

func TestTokenServiceValidationFailures(t *testing.T) {
	userID := uuid.New().String()

	t.Run("expired token", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.accessTTL = -time.Minute
		service := commerce.NewTokenService(cfg, nil)

		token, err := service.IssueAccessToken(userID)
		require.NoError(t, err)

		_, err = service.ValidateAccess(token)
		assert.ErrorIs(t, err, commerce.ErrTokenExpired)
		assert.True(t, commerce.IsTokenExpiredError(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		service := commerce.NewTokenService(newTestConfig(), nil)

		_, err := service.ValidateAccess("not.a.token")
		assert.Error(t, err)
		assert.True(t, commerce.IsMalformedError(err))
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		service := commerce.NewTokenService(newTestConfig(), nil)

		other := newTestConfig()
		other.accessSecret = "some-other-secret"
		otherService := commerce.NewTokenService(other, nil)

		token, err := otherService.IssueAccessToken(userID)
		require.NoError(t, err)

		_, err = service.ValidateAccess(token)
		assert.Error(t, err)
		assert.True(t, commerce.IsMalformedError(err))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		service := commerce.NewTokenService(newTestConfig(), nil)

		other := newTestConfig()
		other.issuer = "someone-else"
		otherService := commerce.NewTokenService(other, nil)

		token, err := otherService.IssueAccessToken(userID)
		require.NoError(t, err)

		_, err = service.ValidateAccess(token)
		assert.Error(t, err)
	})

	t.Run("tampered token", func(t *testing.T) {
		service := commerce.NewTokenService(newTestConfig(), nil)

		token, err := service.IssueAccessToken(userID)
		require.NoError(t, err)

		tampered := token + "x"

		_, err = service.ValidateAccess(tampered)
		assert.Error(t, err)
	})
}
