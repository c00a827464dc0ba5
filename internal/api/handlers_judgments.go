// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/collegedeck/collegedeck/internal/auth"
	"github.com/collegedeck/collegedeck/internal/feedback"
	"github.com/collegedeck/collegedeck/internal/models"
)

// judgmentRequest is the POST /judgments body.
type judgmentRequest struct {
	UnitID   int64  `json:"unitid" validate:"required,gt=0"`
	Polarity string `json:"polarity" validate:"required,polarity"`
}

// judgmentListResponse is the GET /judgments payload.
type judgmentListResponse struct {
	Judgments []models.Judgment `json:"judgments"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// CreateJudgment records a swipe. Re-judging the same college
// overwrites the previous polarity; the response does not distinguish
// the two cases.
func (h *Handler) CreateJudgment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req judgmentRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	judgment, err := h.recorder.Record(r.Context(), userID, req.UnitID, models.Polarity(req.Polarity))
	switch {
	case errors.Is(err, feedback.ErrInvalidPolarity):
		respondError(w, http.StatusBadRequest, codeValidationError, "polarity must be like or dislike", nil)
		return
	case errors.Is(err, feedback.ErrUnknownCollege):
		respondError(w, http.StatusNotFound, codeNotFound, "college not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusServiceUnavailable, codeStoreError, "failed to record judgment", err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status:   "success",
		Data:     judgment,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// ListJudgments returns the user's judged colleges, most recent first.
// The polarity query parameter narrows the listing; limit and offset
// page through it subject to the configured maximum page size.
func (h *Handler) ListJudgments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, _ := auth.UserID(r.Context())

	polarity := models.Polarity(r.URL.Query().Get("polarity"))
	if polarity != "" && !polarity.Valid() {
		respondError(w, http.StatusBadRequest, codeValidationError, "polarity must be like or dislike", nil)
		return
	}

	limit := getIntParam(r, "limit", h.cfg.API.DefaultPageSize)
	if limit < 1 || limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}
	offset := getIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	judgments, total, err := h.recorder.List(r.Context(), userID, polarity, limit, offset)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, codeStoreError, "failed to list judgments", err)
		return
	}
	if judgments == nil {
		judgments = []models.Judgment{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: judgmentListResponse{
			Judgments: judgments,
			Total:     total,
			Limit:     limit,
			Offset:    offset,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// DeleteJudgment removes a judgment, returning the college to the
// user's candidate pool.
func (h *Handler) DeleteJudgment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	unitID, err := strconv.ParseInt(chi.URLParam(r, "unitid"), 10, 64)
	if err != nil || unitID <= 0 {
		respondError(w, http.StatusBadRequest, codeValidationError, "unitid must be a positive integer", nil)
		return
	}

	err = h.recorder.Delete(r.Context(), userID, unitID)
	switch {
	case errors.Is(err, feedback.ErrNotFound):
		respondError(w, http.StatusNotFound, codeNotFound, "judgment not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusServiceUnavailable, codeStoreError, "failed to delete judgment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
