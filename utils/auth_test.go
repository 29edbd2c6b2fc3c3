package utils

import (
	"testing"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("Coconut@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Coconut@123", hash)
	assert.True(t, CheckPassword("Coconut@123", hash))
	assert.False(t, CheckPassword("Coconut@124", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{Role: models.RoleDriver}
	user.ID = 12

	token, err := GenerateToken(user, "secret", time.Hour)
	require.NoError(t, err)

	p, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, models.Principal{ID: 12, Role: models.RoleDriver}, p)
	assert.Equal(t, "driver:12", p.Room())

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateToken(user, "secret", -time.Second)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignClaims(t *testing.T) {
	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ValidateToken(noID, "secret")
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateToken(none, "secret")
	assert.Error(t, err)
}
