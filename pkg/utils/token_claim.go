package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the resolved identity handed to the core operations. The
// services never parse tokens themselves; controllers resolve the header
// once and pass this down.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

// ExtractPrincipalFromHeader parses an Authorization header (Bearer <token>)
// and returns the user_id and user_role JWT claims.
func ExtractPrincipalFromHeader(authHeader string) (Principal, error) {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return Principal{}, errors.New("missing or invalid Authorization header")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Principal{}, errors.New("JWT secret not set")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	if err != nil || !token.Valid {
		return Principal{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return Principal{}, errors.New("invalid token payload")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return Principal{}, errors.New("invalid user id in token")
	}

	role, _ := claims["user_role"].(string)
	return Principal{UserID: userID, Role: role}, nil
}

// ExtractUserIDFromHeader is a convenience wrapper for handlers that only
// need the caller's id.
func ExtractUserIDFromHeader(authHeader string) (uuid.UUID, error) {
	p, err := ExtractPrincipalFromHeader(authHeader)
	if err != nil {
		return uuid.Nil, err
	}
	return p.UserID, nil
}
