// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/collegedeck/collegedeck/internal/auth"
	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/models"
	"github.com/collegedeck/collegedeck/internal/selector"
)

// Error codes used in APIError envelopes.
const (
	codeValidationError   = "VALIDATION_ERROR"
	codeNotFound          = "NOT_FOUND"
	codeSelectionFailed   = "SELECTION_FAILED"
	codeStoreError        = "STORE_ERROR"
	codeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// CandidateSelector picks the next candidate for a user.
type CandidateSelector interface {
	Next(ctx context.Context, userID string) (*selector.Selection, error)
}

// JudgmentRecorder records, lists, and deletes swipe judgments.
type JudgmentRecorder interface {
	Record(ctx context.Context, userID string, unitID int64, polarity models.Polarity) (*models.Judgment, error)
	Delete(ctx context.Context, userID string, unitID int64) error
	List(ctx context.Context, userID string, polarity models.Polarity, limit, offset int) ([]models.Judgment, int64, error)
}

// CollegeSource serves college payloads, normally the catalog cache.
type CollegeSource interface {
	GetCollege(ctx context.Context, unitID int64) (*models.College, error)
	Size() int
}

// Pinger reports whether the profile store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	cfg       *config.Config
	store     Pinger
	colleges  CollegeSource
	selector  CandidateSelector
	recorder  JudgmentRecorder
	startTime time.Time
}

// NewHandler creates the handler set.
func NewHandler(cfg *config.Config, store Pinger, colleges CollegeSource, sel CandidateSelector, rec JudgmentRecorder) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     store,
		colleges:  colleges,
		selector:  sel,
		recorder:  rec,
		startTime: time.Now(),
	}
}

// Me returns the authenticated user id.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "no authenticated user", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"user_id": userID},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
