// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package models

import "time"

// College is a candidate item in the catalog. UnitID is the IPEDS unit
// identifier and is stable across catalog refreshes. Descriptive attributes
// are passed through to clients untouched; selection only cares about the id.
type College struct {
	UnitID          int64   `json:"unitid"`
	InstitutionName string  `json:"institution_name"`
	StateName       string  `json:"state_name,omitempty"`
	PercentAdmitted float64 `json:"percent_admitted,omitempty"`
	TuitionAndFees  int64   `json:"tuition_and_fees,omitempty"`
}

// Polarity is the direction of a swipe judgment.
type Polarity string

const (
	// PolarityLike records a right swipe.
	PolarityLike Polarity = "like"
	// PolarityDislike records a left swipe.
	PolarityDislike Polarity = "dislike"
)

// Valid reports whether p is a recognized polarity value.
func (p Polarity) Valid() bool {
	return p == PolarityLike || p == PolarityDislike
}

// Judgment is a recorded swipe for a (user, college) pair. At most one
// judgment exists per pair; re-judging overwrites Polarity and JudgedAt.
type Judgment struct {
	UserID   string    `json:"user_id"`
	UnitID   int64     `json:"unitid"`
	Polarity Polarity  `json:"polarity"`
	JudgedAt time.Time `json:"judged_at"`
}
