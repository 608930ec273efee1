package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateJWT("user@example.com", secret, time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "user@example.com", claims["sub"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestGenerateJWTExpiredTokenRejected(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateJWT("user@example.com", secret, -time.Minute)
	require.NoError(t, err)

	_, err = jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	assert.Error(t, err)
}
