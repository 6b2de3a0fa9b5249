package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Portal roles carried in the token's "role" claim.
const (
	RoleAdmin = "admin"
	RoleHost  = "host"
)

type AuthClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(EnvOrDefault("JWT_SECRET", "dev-secret-change-me"))
}

// GenerateAuthToken mints a signed HS256 token for an admin or host session.
func GenerateAuthToken(userID uint, role, name string) (string, error) {
	if role != RoleAdmin && role != RoleHost {
		return "", fmt.Errorf("unknown role %q", role)
	}
	now := time.Now().UTC()
	claims := AuthClaims{
		UserID: userID,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			Issuer:    "villa-backend",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// ParseAuthToken validates a token and returns its claims.
func ParseAuthToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
