package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// DefaultValidityDays is the validity window for issued tokens
const DefaultValidityDays = 30

// Claims represents the signed identity claims embedded in a token
type Claims struct {
	PrincipalID   string `json:"principalId"`
	PrincipalCode string `json:"principalCode"`
	Email         string `json:"email"`
	jwt.RegisteredClaims
}

// Issue produces a signed token for a principal with the given validity window
func Issue(principalID, principalCode, email, secret string, validity time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		PrincipalID:   principalID,
		PrincipalCode: principalCode,
		Email:         email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "shoplocal-api",
			Subject:   principalID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// IssueDefault issues a token with the default 30-day validity window
func IssueDefault(principalID, principalCode, email, secret string) (string, error) {
	return Issue(principalID, principalCode, email, secret, DefaultValidityDays*24*time.Hour)
}

// Verify validates a token and returns its claims.
// Any failure (bad signature, malformed token, expiry) surfaces as an error;
// callers treat every failure uniformly as unauthenticated.
func Verify(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
