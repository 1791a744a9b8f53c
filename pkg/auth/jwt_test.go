package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestJWTRoundTrip(t *testing.T) {
	generator, err := NewJWTGenerator(testSecret, "proofr-backend", nil, time.Hour)
	require.NoError(t, err)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "proofr-backend"})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "user@example.com", []string{"student"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"student"}, claims.Roles)
}

func TestValidateTokenBearerPrefix(t *testing.T) {
	generator, err := NewJWTGenerator(testSecret, "", nil, time.Hour)
	require.NoError(t, err)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "user@example.com", nil)
	require.NoError(t, err)

	claims, err := validator.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateTokenFailures(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "proofr-backend"})
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := validator.ValidateToken("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("expired token", func(t *testing.T) {
		generator, err := NewJWTGenerator(testSecret, "proofr-backend", nil, -time.Minute)
		require.NoError(t, err)
		token, err := generator.GenerateToken("user-1", "user@example.com", nil)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		generator, err := NewJWTGenerator("another-secret", "proofr-backend", nil, time.Hour)
		require.NoError(t, err)
		token, err := generator.GenerateToken("user-1", "user@example.com", nil)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		generator, err := NewJWTGenerator(testSecret, "someone-else", nil, time.Hour)
		require.NoError(t, err)
		token, err := generator.GenerateToken("user-1", "user@example.com", nil)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := validator.ValidateToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTValidatorRequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}
