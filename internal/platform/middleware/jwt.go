package middleware

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HMACValidator validates HS256 bearer tokens signed by the account platform.
type HMACValidator struct {
	key []byte
}

// NewHMACValidator builds a validator from the shared signing key.
func NewHMACValidator(signingKey string) (*HMACValidator, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("jwt signing key is required")
	}
	return &HMACValidator{key: []byte(signingKey)}, nil
}

// ValidateToken parses and verifies the token, returning its subject claim.
func (v *HMACValidator) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return &JWTClaims{Subject: sub}, nil
}
