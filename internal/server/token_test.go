package server

import (
	"testing"
	"time"

	"bookit-platform/internal/auth"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T) string {
	t.Helper()
	claims := &auth.Claims{
		Email: "guest@example.com",
		Name:  "Guest User",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_2abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(routerSecret)
	require.NoError(t, err)
	return signed
}
