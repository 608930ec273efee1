package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/garciajoao467/app-nutri/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestDB(t), "test-secret", time.Hour, zap.NewNop().Sugar())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuth(t)

	user, err := svc.Register("new@example.com", "s3cret", 1800)
	require.NoError(t, err)
	assert.Equal(t, 1800.0, user.DailyCalorieTarget)
	assert.True(t, utils.CheckPasswordHash("s3cret", user.PasswordHash))

	token, err := svc.Login("new@example.com", "s3cret")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "new@example.com", claims["sub"])
}

func TestRegisterDefaultsCalorieTarget(t *testing.T) {
	svc := newTestAuth(t)
	user, err := svc.Register("default@example.com", "pw", 0)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, user.DailyCalorieTarget)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuth(t)
	_, err := svc.Register("dup@example.com", "pw", 0)
	require.NoError(t, err)

	_, err = svc.Register("dup@example.com", "other", 0)
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindEmailRegistered, se.Kind)
	assert.Equal(t, http.StatusBadRequest, se.Status)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuth(t)
	_, err := svc.Register("who@example.com", "right", 0)
	require.NoError(t, err)

	_, err = svc.Login("who@example.com", "wrong")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInvalidCredentials, se.Kind)
	assert.Equal(t, http.StatusUnauthorized, se.Status)

	_, err = svc.Login("nobody@example.com", "right")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInvalidCredentials, se.Kind)
}
