// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/models"
)

type contextKey string

const userIDKey contextKey = "auth.user_id"

// devUserID is the identity assigned when auth_mode is "none" and the
// request carries no X-User-ID header. Development only; config
// validation rejects auth_mode "none" in production.
const devUserID = "demo-user"

// UserID returns the authenticated user id placed in the context by
// Middleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// ContextWithUserID returns a context carrying the given user id.
// Exported for handler tests.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Authenticator resolves the requesting user's identity. With auth_mode
// "jwt" it validates a Bearer token; with "none" it trusts the
// X-User-ID header for local development.
type Authenticator struct {
	validator *Validator // nil when auth is disabled
}

// New creates an authenticator for the configured auth mode.
func New(cfg *config.SecurityConfig) (*Authenticator, error) {
	if cfg.AuthMode == "none" {
		logging.Warn().Msg("Authentication disabled, requests resolve to the X-User-ID header")
		return &Authenticator{}, nil
	}

	validator, err := NewValidator(cfg)
	if err != nil {
		return nil, err
	}
	return &Authenticator{validator: validator}, nil
}

// Middleware resolves the user id for each request and stores it in the
// request context. Requests that cannot be resolved get a 401 with an
// AUTHENTICATION_ERROR envelope.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.resolve(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("Authentication failed")
			writeUnauthorized(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	})
}

func (a *Authenticator) resolve(r *http.Request) (string, error) {
	if a.validator == nil {
		if id := r.Header.Get("X-User-ID"); id != "" {
			return id, nil
		}
		return devUserID, nil
	}

	token, err := bearerToken(r)
	if err != nil {
		return "", err
	}

	claims, err := a.validator.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrInvalidToken
	}

	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrInvalidToken
	}
	return header[len(prefix):], nil
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "AUTHENTICATION_ERROR",
			Message: err.Error(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	// Encoding a static struct cannot fail in practice.
	_ = json.NewEncoder(w).Encode(resp)
}
