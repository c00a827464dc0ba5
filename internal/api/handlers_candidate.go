// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/collegedeck/collegedeck/internal/auth"
	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/models"
	"github.com/collegedeck/collegedeck/internal/selector"
)

// candidateResponse is the payload for a successful selection.
type candidateResponse struct {
	College *models.College `json:"college"`
	Source  string          `json:"source"`
}

// NextCandidate returns the next college for the user to judge.
//
// 200: a candidate with its payload and selection source.
// 204: the user has judged every college in the catalog.
// 503: the profile store was unreachable, nothing was selected.
func (h *Handler) NextCandidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, _ := auth.UserID(r.Context())

	sel, err := h.selector.Next(r.Context(), userID)
	if errors.Is(err, selector.ErrNoneLeft) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if errors.Is(err, selector.ErrSelectionFailed) {
		respondError(w, http.StatusServiceUnavailable, codeSelectionFailed, "profile store unavailable", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeSelectionFailed, "selection failed", err)
		return
	}

	college, err := h.colleges.GetCollege(r.Context(), sel.UnitID)
	if err != nil {
		// Selected id with no payload means the store went away between
		// selection and hydration.
		logging.Ctx(r.Context()).Error().Err(err).Int64("unitid", sel.UnitID).Msg("Failed to hydrate candidate payload")
		respondError(w, http.StatusServiceUnavailable, codeStoreError, "failed to load candidate payload", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: candidateResponse{
			College: college,
			Source:  string(sel.Source),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
