// Package token issues and validates the JWTs used for API authentication.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated user's ID alongside the registered claims.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Generate signs a new HS256 token for the given user with the given lifetime.
func Generate(userID uint, secret string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "kickmate",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Validate parses a token string and returns its claims if the signature and
// expiry check out.
func Validate(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, fmt.Errorf("could not parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return nil, errors.New("user_id claim is missing")
	}
	return claims, nil
}
