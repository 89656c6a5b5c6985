package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func TestGenerateTokenPair(t *testing.T) {
	tokens, err := GenerateTokenPair(1, "test@example.com", "customer", testSecret, 15*time.Minute, 24*time.Hour)

	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
}

func TestValidateToken(t *testing.T) {
	tokens, err := GenerateTokenPair(42, "user@example.com", "admin", testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	t.Run("Valid access token", func(t *testing.T) {
		claims, err := ValidateToken(tokens.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "access", claims.Type)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		claims, err := ValidateToken(tokens.AccessToken, "wrong-secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Malformed token", func(t *testing.T) {
		claims, err := ValidateToken("not-a-token", testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired, err := GenerateAccessToken(1, "a@b.com", "customer", testSecret, -time.Minute)
		require.NoError(t, err)

		claims, err := ValidateToken(expired, testSecret)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.Nil(t, claims)
	})
}

func TestValidateRefreshToken(t *testing.T) {
	tokens, err := GenerateTokenPair(7, "user@example.com", "customer", testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	t.Run("Valid refresh token", func(t *testing.T) {
		claims, err := ValidateRefreshToken(tokens.RefreshToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "refresh", claims.Type)
	})

	t.Run("Access token rejected", func(t *testing.T) {
		claims, err := ValidateRefreshToken(tokens.AccessToken, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})
}
