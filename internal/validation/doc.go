// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps the library in a thread-safe singleton with custom
// validators for swipe-domain rules and translates failures into the API's
// VALIDATION_ERROR response format.
//
// # Custom Validators
//
//   - polarity: judgment polarity, "like" or "dislike"
//   - act_score: composite ACT score, 9 to 36
//   - sat_total: total SAT score, 400 to 1600
//
// # Quick Start
//
//	type JudgmentRequest struct {
//	    UnitID   int64  `validate:"required,gt=0"`
//	    Polarity string `validate:"required,polarity"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
// Struct reflection information is cached after the first validation of each
// type.
package validation
