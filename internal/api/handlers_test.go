// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/collegedeck/collegedeck/internal/auth"
	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/models"
	"github.com/collegedeck/collegedeck/internal/selector"
)

// fakeSelector returns a scripted selection.
type fakeSelector struct {
	sel *selector.Selection
	err error
}

func (f *fakeSelector) Next(_ context.Context, _ string) (*selector.Selection, error) {
	return f.sel, f.err
}

// fakeRecorder returns scripted results and captures its last call.
type fakeRecorder struct {
	judgment  *models.Judgment
	judgments []models.Judgment
	total     int64
	err       error

	lastUserID   string
	lastUnitID   int64
	lastPolarity models.Polarity
	lastLimit    int
	lastOffset   int
}

func (f *fakeRecorder) Record(_ context.Context, userID string, unitID int64, polarity models.Polarity) (*models.Judgment, error) {
	f.lastUserID, f.lastUnitID, f.lastPolarity = userID, unitID, polarity
	return f.judgment, f.err
}

func (f *fakeRecorder) Delete(_ context.Context, userID string, unitID int64) error {
	f.lastUserID, f.lastUnitID = userID, unitID
	return f.err
}

func (f *fakeRecorder) List(_ context.Context, userID string, polarity models.Polarity, limit, offset int) ([]models.Judgment, int64, error) {
	f.lastUserID, f.lastPolarity, f.lastLimit, f.lastOffset = userID, polarity, limit, offset
	return f.judgments, f.total, f.err
}

// fakeColleges serves payloads from a map.
type fakeColleges struct {
	colleges map[int64]*models.College
	err      error
}

func (f *fakeColleges) GetCollege(_ context.Context, unitID int64) (*models.College, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.colleges[unitID]
	if !ok {
		return nil, errNotInFake
	}
	return c, nil
}

func (f *fakeColleges) Size() int { return len(f.colleges) }

var errNotInFake = &fakeError{"college not in fake"}

type fakeError struct{ msg string }

func (e *fakeError) Error() string { return e.msg }

// fakePinger reports scripted store reachability.
type fakePinger struct{ err error }

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

// testDeps bundles the fakes behind a router.
type testDeps struct {
	selector *fakeSelector
	recorder *fakeRecorder
	colleges *fakeColleges
	pinger   *fakePinger
	cfg      *config.Config
}

func defaultTestConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			AuthMode:          "none",
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
	}
}

func newTestRouter(t *testing.T, deps *testDeps) http.Handler {
	t.Helper()

	if deps.cfg == nil {
		deps.cfg = defaultTestConfig()
	}
	if deps.selector == nil {
		deps.selector = &fakeSelector{}
	}
	if deps.recorder == nil {
		deps.recorder = &fakeRecorder{}
	}
	if deps.colleges == nil {
		deps.colleges = &fakeColleges{colleges: map[int64]*models.College{}}
	}
	if deps.pinger == nil {
		deps.pinger = &fakePinger{}
	}

	authn, err := auth.New(&deps.cfg.Security)
	if err != nil {
		t.Fatalf("auth.New failed: %v", err)
	}

	handler := NewHandler(deps.cfg, deps.pinger, deps.colleges, deps.selector, deps.recorder)
	return NewRouter(deps.cfg, handler, authn).Routes()
}

// envelope is the decoded APIResponse with raw data for per-test shapes.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Error    *models.APIError `json:"error"`
	Metadata models.Metadata  `json:"metadata"`
}

func doRequest(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, &env
}

func TestMe(t *testing.T) {
	router := newTestRouter(t, &testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-User-ID", "user-9")
	rec, env := doRequest(t, router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data["user_id"] != "user-9" {
		t.Errorf("expected user-9, got %q", data["user_id"])
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(t, &testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHealthReady_StoreDown(t *testing.T) {
	router := newTestRouter(t, &testDeps{pinger: &fakePinger{err: &fakeError{"connection refused"}}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
	rec, env := doRequest(t, router, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != codeStoreError {
		t.Errorf("unexpected error envelope: %+v", env.Error)
	}
}

func TestHealth_Degraded(t *testing.T) {
	router := newTestRouter(t, &testDeps{pinger: &fakePinger{err: &fakeError{"connection refused"}}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec, env := doRequest(t, router, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var data healthResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Status != "degraded" || data.Checks["database"] != "unavailable" {
		t.Errorf("unexpected health payload: %+v", data)
	}
}

func TestHealth_Healthy(t *testing.T) {
	router := newTestRouter(t, &testDeps{
		colleges: &fakeColleges{colleges: map[int64]*models.College{
			100: {UnitID: 100},
		}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec, env := doRequest(t, router, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var data healthResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Status != "healthy" || data.CatalogSize != 1 {
		t.Errorf("unexpected health payload: %+v", data)
	}
	if data.UptimeSeconds < 0 || time.Duration(data.UptimeSeconds)*time.Second > time.Hour {
		t.Errorf("implausible uptime %d", data.UptimeSeconds)
	}
}
