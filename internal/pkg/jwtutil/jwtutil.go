package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// FlashClaims carries a one-shot message shown on the next page render.
type FlashClaims struct {
	Category string `json:"cat"`
	Message  string `json:"msg"`
	jwt.RegisteredClaims
}

func GenerateFlashToken(secret string, ttl time.Duration, category, message string) (string, error) {
	now := time.Now()
	claims := FlashClaims{
		Category: category,
		Message:  message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign flash token failed: %w", err)
	}
	return signed, nil
}

func ParseFlashToken(secret, raw string) (*FlashClaims, error) {
	claims := &FlashClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
