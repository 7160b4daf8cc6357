package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookstore/internal/account/adapters/services"
	domainsvc "bookstore/internal/account/domain/services"
)

func TestBcryptService_Hash(t *testing.T) {
	ctx := context.Background()
	passwordSvc := services.NewBcrypt(bcrypt.MinCost)

	t.Run("successful hashing", func(t *testing.T) {
		hash, err := passwordSvc.Hash(ctx, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "password123", hash)
	})

	t.Run("empty password", func(t *testing.T) {
		hash, err := passwordSvc.Hash(ctx, "")

		require.ErrorIs(t, err, domainsvc.ErrInvalidPassword)
		assert.Empty(t, hash)
	})

	t.Run("invalid cost falls back to default", func(t *testing.T) {
		svcWithBadCost := services.NewBcrypt(-1)

		hash, err := svcWithBadCost.Hash(ctx, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})
}

func TestBcryptService_Verify(t *testing.T) {
	ctx := context.Background()
	passwordSvc := services.NewBcrypt(bcrypt.MinCost)

	hash, err := passwordSvc.Hash(ctx, "password123")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		valid, err := passwordSvc.Verify(ctx, "password123", hash)

		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("wrong password", func(t *testing.T) {
		valid, err := passwordSvc.Verify(ctx, "wrong-password", hash)

		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("empty password", func(t *testing.T) {
		valid, err := passwordSvc.Verify(ctx, "", hash)

		require.ErrorIs(t, err, domainsvc.ErrInvalidPassword)
		assert.False(t, valid)
	})

	t.Run("malformed hash", func(t *testing.T) {
		valid, err := passwordSvc.Verify(ctx, "password123", "not-a-bcrypt-hash")

		require.Error(t, err)
		assert.False(t, valid)
	})
}
