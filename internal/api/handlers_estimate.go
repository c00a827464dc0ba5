// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package api

import (
	"net/http"
	"time"

	"github.com/collegedeck/collegedeck/internal/estimate"
	"github.com/collegedeck/collegedeck/internal/models"
)

// estimateRequest carries whichever scores the caller knows. All fields
// are optional; unknown scores are estimated from the known ones.
type estimateRequest struct {
	SATERW       *int `json:"sat_erw" validate:"omitempty,min=200,max=800"`
	SATMath      *int `json:"sat_math" validate:"omitempty,min=200,max=800"`
	SATTotal     *int `json:"sat_total" validate:"omitempty,sat_total"`
	ACTComposite *int `json:"act_composite" validate:"omitempty,act_score"`
}

// estimateResponse mirrors the request shape with gaps filled in.
type estimateResponse struct {
	SATERW       *int `json:"sat_erw"`
	SATMath      *int `json:"sat_math"`
	SATTotal     *int `json:"sat_total"`
	ACTComposite *int `json:"act_composite"`
}

// Estimate fills in missing scores using the ACT-SAT concordance.
// Precedence for the SAT total: explicit total, then the sum of both
// section scores, then a concordance estimate from the ACT composite.
// With a total in hand, missing sections and a missing composite are
// estimated; fields that cannot be derived come back as given.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	satTotal := req.SATTotal
	if satTotal == nil && req.SATERW != nil && req.SATMath != nil {
		total := *req.SATERW + *req.SATMath
		satTotal = &total
	}
	if satTotal == nil && req.ACTComposite != nil {
		total := estimate.SATTotalFromACT(*req.ACTComposite)
		satTotal = &total
	}

	resp := estimateResponse{
		SATERW:       req.SATERW,
		SATMath:      req.SATMath,
		SATTotal:     satTotal,
		ACTComposite: req.ACTComposite,
	}

	if satTotal != nil {
		erw, math := estimate.SATPartsFromTotal(*satTotal, req.SATERW, req.SATMath)
		resp.SATERW, resp.SATMath = &erw, &math

		if req.ACTComposite == nil {
			act := estimate.ACTFromSATTotal(*satTotal)
			resp.ACTComposite = &act
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     resp,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
