// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/collegedeck/collegedeck/internal/config"
)

// minSecretLength is the minimum HS256 shared-secret length. Shorter
// secrets are brute-forceable offline.
const minSecretLength = 32

var (
	// ErrInvalidToken means the token failed signature, expiry, issuer,
	// or audience checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject means the token carries no sub claim to resolve
	// a user id from.
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims are the token claims Collegedeck cares about. The subject is
// the user id; everything else is standard registered claims issued by
// the external identity provider.
type Claims struct {
	jwt.RegisteredClaims
}

// Validator validates HS256 bearer tokens issued by the external
// identity provider with a shared secret.
type Validator struct {
	secret   []byte
	issuer   string
	audience string
}

// NewValidator creates a token validator from security config. The
// secret must be at least 32 characters.
func NewValidator(cfg *config.SecurityConfig) (*Validator, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}

	return &Validator{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
	}, nil
}

// Validate checks the token signature and registered claims and returns
// the parsed claims. Issuer and audience are enforced only when
// configured. The signing method is pinned to HS256 to rule out
// algorithm confusion.
func (v *Validator) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
