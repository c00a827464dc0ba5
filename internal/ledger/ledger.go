// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package ledger provides the per-user exclusion ledger consulted by
// candidate selection. A college is excluded once the user has judged it,
// in either direction, and stays excluded until the judgment is deleted.
package ledger

import (
	"context"
	"fmt"

	"github.com/collegedeck/collegedeck/internal/database"
)

// Store is the persistence surface the ledger reads from. *database.DB
// satisfies it.
type Store interface {
	JudgedUnitIDs(ctx context.Context, userID string) (map[int64]struct{}, error)
	IsJudged(ctx context.Context, userID string, unitID int64) (bool, error)
}

// Ledger answers exclusion queries for candidate selection.
//
// The ledger never guesses: when the store cannot be read the error is
// surfaced (wrapping database.ErrStoreUnavailable for connection loss) and
// the caller must fail the selection rather than risk re-showing a judged
// college.
type Ledger struct {
	store Store
}

// New creates a ledger backed by the given store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// IsExcluded reports whether the user has already judged the college.
func (l *Ledger) IsExcluded(ctx context.Context, userID string, unitID int64) (bool, error) {
	excluded, err := l.store.IsJudged(ctx, userID, unitID)
	if err != nil {
		return false, fmt.Errorf("exclusion check failed: %w", err)
	}
	return excluded, nil
}

// ExcludedSet returns every unitid the user has judged. The returned map is
// owned by the caller. A user with no judgments gets an empty, non-nil map.
func (l *Ledger) ExcludedSet(ctx context.Context, userID string) (map[int64]struct{}, error) {
	excluded, err := l.store.JudgedUnitIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("exclusion set read failed: %w", err)
	}
	if excluded == nil {
		excluded = make(map[int64]struct{})
	}
	return excluded, nil
}

// Unavailable reports whether err stems from the store being unreachable,
// as opposed to an ordinary query failure.
func Unavailable(err error) bool {
	return database.IsStoreUnavailable(err)
}
