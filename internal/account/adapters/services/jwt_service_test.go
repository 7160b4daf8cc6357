package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/account/adapters/services"
	domainsvc "bookstore/internal/account/domain/services"
	"bookstore/pkg/logger"
)

const testSecretKey = "test-secret-key"

func jwtTestContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestJWTService_GenerateAccessToken(t *testing.T) {
	ctx := jwtTestContext(t)

	t.Run("successful generation", func(t *testing.T) {
		tokenSvc := services.NewJWT(testSecretKey, 30*time.Minute)

		token, expiresAt, err := tokenSvc.GenerateAccessToken(ctx, "user-id", "johndoe")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("empty secret key", func(t *testing.T) {
		tokenSvc := services.NewJWT("", 30*time.Minute)

		token, _, err := tokenSvc.GenerateAccessToken(ctx, "user-id", "johndoe")

		require.ErrorIs(t, err, domainsvc.ErrGeneratingJWTToken)
		assert.Empty(t, token)
	})
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	ctx := jwtTestContext(t)
	tokenSvc := services.NewJWT(testSecretKey, 30*time.Minute)

	t.Run("valid token round trip", func(t *testing.T) {
		token, _, err := tokenSvc.GenerateAccessToken(ctx, "user-id", "johndoe")
		require.NoError(t, err)

		userID, err := tokenSvc.ValidateAccessToken(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, "user-id", userID)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredSvc := services.NewJWT(testSecretKey, -1*time.Minute)

		token, _, err := expiredSvc.GenerateAccessToken(ctx, "user-id", "johndoe")
		require.NoError(t, err)

		userID, err := expiredSvc.ValidateAccessToken(ctx, token)

		require.ErrorIs(t, err, domainsvc.ErrExpiredJWTToken)
		assert.Empty(t, userID)
	})

	t.Run("token signed with different key", func(t *testing.T) {
		otherSvc := services.NewJWT("another-secret-key", 30*time.Minute)

		token, _, err := otherSvc.GenerateAccessToken(ctx, "user-id", "johndoe")
		require.NoError(t, err)

		userID, err := tokenSvc.ValidateAccessToken(ctx, token)

		require.ErrorIs(t, err, domainsvc.ErrInvalidJWTToken)
		assert.Empty(t, userID)
	})

	t.Run("malformed token", func(t *testing.T) {
		userID, err := tokenSvc.ValidateAccessToken(ctx, "not.a.token")

		require.ErrorIs(t, err, domainsvc.ErrInvalidJWTToken)
		assert.Empty(t, userID)
	})

	t.Run("empty user_id claim", func(t *testing.T) {
		token, _, err := tokenSvc.GenerateAccessToken(ctx, "", "johndoe")
		require.NoError(t, err)

		userID, err := tokenSvc.ValidateAccessToken(ctx, token)

		require.ErrorIs(t, err, domainsvc.ErrInvalidJWTToken)
		assert.Empty(t, userID)
	})
}
