// Package auth provides token and key material: the signed bearer token,
// API secret keys and password hashing.
package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Token errors surfaced to the bearer guard.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims holds the signed user claim carried by a bearer token.
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies bearer tokens.
type TokenCodec struct {
	secret    []byte
	expiresIn time.Duration
}

// NewTokenCodec creates a token codec with the given signing secret and TTL.
func NewTokenCodec(secret string, expiresIn time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), expiresIn: expiresIn}
}

// Issue generates a signed token for the given user id.
func (t *TokenCodec) Issue(uid string) (string, error) {
	claims := &Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses a token string and returns the user id it carries.
// Expired tokens return ErrTokenExpired; any other failure, including a
// missing uid claim, returns ErrTokenInvalid.
func (t *TokenCodec) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UID, nil
}
