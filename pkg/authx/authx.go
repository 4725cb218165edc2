// Package authx verifies bearer tokens issued by the identity provider.
//
// The workspace service does not mint tokens or manage signing keys; users
// authenticate against the external directory and arrive with a signed JWT
// carrying their id, email, and API scopes.
package authx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("authx: invalid token")
	ErrExpiredToken = errors.New("authx: token expired")
)

// Claims is the identity extracted from a verified bearer token.
type Claims struct {
	Subject string // user id
	Email   string
	Scopes  []string
}

// Verifier checks a raw bearer token and returns its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HMACVerifier validates HS256 tokens signed with a secret shared with the
// identity provider.
type HMACVerifier struct {
	Secret []byte
	Issuer string // expected iss claim; empty disables the check
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

func (v *HMACVerifier) Verify(raw string) (Claims, error) {
	var tc tokenClaims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	_, err := jwt.ParseWithClaims(raw, &tc, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if tc.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	return Claims{
		Subject: tc.Subject,
		Email:   tc.Email,
		Scopes:  strings.Fields(tc.Scope),
	}, nil
}

// Sign mints an HS256 token. Used by tests and local tooling; production
// tokens come from the identity provider.
func Sign(secret []byte, issuer, subject, email string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: email,
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
