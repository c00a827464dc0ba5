// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package feedback records swipe judgments. A judgment is a single
// overwritable row per (user, college): recording is idempotent, a repeat
// with the opposite polarity flips the row, and the exclusion ledger
// reflects the write before Record returns.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collegedeck/collegedeck/internal/database"
	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/models"
)

var (
	// ErrInvalidPolarity means the polarity is not "like" or "dislike".
	ErrInvalidPolarity = errors.New("invalid polarity")
	// ErrUnknownCollege means the judged unitid is not in the catalog.
	ErrUnknownCollege = errors.New("unknown college")
	// ErrNotFound means no judgment exists for the pair.
	ErrNotFound = errors.New("judgment not found")
)

// Store is the persistence surface the recorder writes to. *database.DB
// satisfies it.
type Store interface {
	UpsertJudgment(ctx context.Context, j *models.Judgment) (models.Polarity, error)
	DeleteJudgment(ctx context.Context, userID string, unitID int64) error
	ListJudgments(ctx context.Context, userID string, polarity models.Polarity, limit, offset int) ([]models.Judgment, error)
	CountJudgments(ctx context.Context, userID string, polarity models.Polarity) (int64, error)
	GetCollege(ctx context.Context, unitID int64) (*models.College, error)
}

// Recorder validates and persists judgments.
type Recorder struct {
	store Store
}

// New creates a recorder backed by the given store.
func New(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record persists a judgment. The write is synchronous and durable: once
// Record returns nil, a selection issued immediately afterwards excludes
// the college. There is no retry; storage failures surface to the caller.
func (r *Recorder) Record(ctx context.Context, userID string, unitID int64, polarity models.Polarity) (*models.Judgment, error) {
	if !polarity.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolarity, polarity)
	}

	// Reject judgments against ids that are not in the catalog; an unknown
	// id would poison the exclusion set without ever matching a candidate.
	if _, err := r.store.GetCollege(ctx, unitID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCollege, unitID)
		}
		return nil, fmt.Errorf("college lookup failed: %w", err)
	}

	j := &models.Judgment{
		UserID:   userID,
		UnitID:   unitID,
		Polarity: polarity,
		JudgedAt: time.Now().UTC(),
	}

	previous, err := r.store.UpsertJudgment(ctx, j)
	if err != nil {
		return nil, fmt.Errorf("failed to record judgment: %w", err)
	}

	overwrite := previous != ""
	metrics.RecordJudgment(string(polarity), overwrite)
	if overwrite && previous != polarity {
		logging.Ctx(ctx).Debug().
			Int64("unitid", unitID).
			Str("from", string(previous)).
			Str("to", string(polarity)).
			Msg("Judgment polarity flipped")
	}

	return j, nil
}

// Delete removes a judgment, returning the college to the user's candidate
// pool. Returns ErrNotFound when no judgment exists.
func (r *Recorder) Delete(ctx context.Context, userID string, unitID int64) error {
	err := r.store.DeleteJudgment(ctx, userID, unitID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %d", ErrNotFound, unitID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete judgment: %w", err)
	}

	metrics.RecordJudgmentDeleted()
	return nil
}

// List returns the user's judgments, most recent first, with the total
// count for pagination. polarity narrows the listing when non-empty.
func (r *Recorder) List(ctx context.Context, userID string, polarity models.Polarity, limit, offset int) ([]models.Judgment, int64, error) {
	if polarity != "" && !polarity.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidPolarity, polarity)
	}

	total, err := r.store.CountJudgments(ctx, userID, polarity)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count judgments: %w", err)
	}

	judgments, err := r.store.ListJudgments(ctx, userID, polarity, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list judgments: %w", err)
	}

	return judgments, total, nil
}
