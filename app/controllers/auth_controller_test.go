package controllers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestIssueAccessTokenDefaultsExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_MINUTES", "")

	user := &models.User{ID: uuid.New(), Email: "promoter@example.com", UserRole: "PROMOTER"}
	tokenString, expiresIn, err := issueAccessToken(user)
	require.NoError(t, err)
	assert.Equal(t, defaultAccessTokenMinutes*60, expiresIn)

	claims := parseClaims(t, tokenString, "test-secret")
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.NotNil(t, exp, "access tokens must always carry an expiry")
	assert.WithinDuration(t,
		time.Now().Add(defaultAccessTokenMinutes*time.Minute), exp.Time, time.Minute)

	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "PROMOTER", claims["user_role"])
}

func TestIssueAccessTokenHonorsConfiguredLifetime(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_MINUTES", "5")

	user := &models.User{ID: uuid.New(), Email: "admin@example.com", UserRole: "ADMIN"}
	tokenString, expiresIn, err := issueAccessToken(user)
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	claims := parseClaims(t, tokenString, "test-secret")
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp.Time, time.Minute)
}
