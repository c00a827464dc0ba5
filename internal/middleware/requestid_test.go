// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/collegedeck/collegedeck/internal/logging"
)

func TestRequestID_Generated(t *testing.T) {
	var seenID string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID == "" {
		t.Fatal("no request id in context")
	}
	if _, err := uuid.Parse(seenID); err != nil {
		t.Errorf("request id %q is not a UUID: %v", seenID, err)
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("response header %q does not match context id %q", got, seenID)
	}
}

func TestRequestID_UpstreamHeaderHonored(t *testing.T) {
	var seenID, loggedID string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		loggedID = logging.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "proxy-assigned-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID != "proxy-assigned-id" {
		t.Errorf("expected upstream id, got %q", seenID)
	}
	if loggedID != "proxy-assigned-id" {
		t.Errorf("expected id in logging context, got %q", loggedID)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected empty id for bare context, got %q", got)
	}
}
