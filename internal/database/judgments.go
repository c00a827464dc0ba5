// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/models"
)

// UpsertJudgment records a judgment for a (user, college) pair. If a judgment
// already exists for the pair, its polarity and timestamp are overwritten.
// Returns the previous polarity when one existed, or empty string otherwise.
//
// The write is durable when this returns nil: a selection issued immediately
// afterwards will see the college as excluded.
func (db *DB) UpsertJudgment(ctx context.Context, j *models.Judgment) (models.Polarity, error) {
	if !j.Polarity.Valid() {
		return "", fmt.Errorf("invalid polarity %q", j.Polarity)
	}

	previous, err := db.getPolarity(ctx, j.UserID, j.UnitID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}

	start := time.Now()
	query := `INSERT INTO judgments (user_id, unitid, polarity, judged_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (user_id, unitid) DO UPDATE SET
		polarity = EXCLUDED.polarity,
		judged_at = EXCLUDED.judged_at`

	judgedAt := j.JudgedAt
	if judgedAt.IsZero() {
		judgedAt = time.Now().UTC()
	}

	_, execErr := db.conn.ExecContext(ctx, query, j.UserID, j.UnitID, string(j.Polarity), judgedAt)
	metrics.RecordDBQuery("UPSERT", "judgments", time.Since(start), execErr)
	if execErr != nil {
		return "", storeErr(fmt.Errorf("failed to upsert judgment: %w", execErr))
	}

	return previous, nil
}

// getPolarity returns the current polarity for a (user, college) pair.
func (db *DB) getPolarity(ctx context.Context, userID string, unitID int64) (models.Polarity, error) {
	start := time.Now()

	var polarity string
	err := db.conn.QueryRowContext(ctx,
		`SELECT polarity FROM judgments WHERE user_id = ? AND unitid = ?`,
		userID, unitID).Scan(&polarity)
	metrics.RecordDBQuery("SELECT", "judgments", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", storeErr(fmt.Errorf("failed to read judgment: %w", err))
	}

	return models.Polarity(polarity), nil
}

// JudgedUnitIDs returns the set of unitids the user has judged, regardless of
// polarity. This is the exclusion set for candidate selection.
func (db *DB) JudgedUnitIDs(ctx context.Context, userID string) (map[int64]struct{}, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT unitid FROM judgments WHERE user_id = ?`, userID)
	metrics.RecordDBQuery("SELECT", "judgments", time.Since(start), err)
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to list judged ids: %w", err))
	}
	defer closeWithLog(rows, "judged id rows")

	judged := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr(fmt.Errorf("failed to scan judged id: %w", err))
		}
		judged[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(fmt.Errorf("judged id iteration failed: %w", err))
	}

	return judged, nil
}

// IsJudged reports whether the user has judged the given college.
func (db *DB) IsJudged(ctx context.Context, userID string, unitID int64) (bool, error) {
	_, err := db.getPolarity(ctx, userID, unitID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListJudgments returns the user's judgments ordered most recent first.
// polarity narrows the listing when non-empty. limit and offset paginate.
func (db *DB) ListJudgments(ctx context.Context, userID string, polarity models.Polarity, limit, offset int) ([]models.Judgment, error) {
	start := time.Now()

	query := `SELECT user_id, unitid, polarity, judged_at FROM judgments WHERE user_id = ?`
	args := []interface{}{userID}
	if polarity != "" {
		query += ` AND polarity = ?`
		args = append(args, string(polarity))
	}
	query += ` ORDER BY judged_at DESC, unitid DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "judgments", time.Since(start), err)
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to list judgments: %w", err))
	}
	defer closeWithLog(rows, "judgment rows")

	var judgments []models.Judgment
	for rows.Next() {
		var j models.Judgment
		var pol string
		if err := rows.Scan(&j.UserID, &j.UnitID, &pol, &j.JudgedAt); err != nil {
			return nil, storeErr(fmt.Errorf("failed to scan judgment: %w", err))
		}
		j.Polarity = models.Polarity(pol)
		judgments = append(judgments, j)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(fmt.Errorf("judgment iteration failed: %w", err))
	}

	return judgments, nil
}

// CountJudgments returns the number of judgments for the user, optionally
// narrowed by polarity.
func (db *DB) CountJudgments(ctx context.Context, userID string, polarity models.Polarity) (int64, error) {
	start := time.Now()

	query := `SELECT COUNT(*) FROM judgments WHERE user_id = ?`
	args := []interface{}{userID}
	if polarity != "" {
		query += ` AND polarity = ?`
		args = append(args, string(polarity))
	}

	var count int64
	err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count)
	metrics.RecordDBQuery("SELECT", "judgments", time.Since(start), err)
	if err != nil {
		return 0, storeErr(fmt.Errorf("failed to count judgments: %w", err))
	}

	return count, nil
}

// DeleteJudgment removes a judgment, returning the college to the user's
// candidate pool. Returns ErrNotFound when no judgment exists for the pair.
func (db *DB) DeleteJudgment(ctx context.Context, userID string, unitID int64) error {
	start := time.Now()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM judgments WHERE user_id = ? AND unitid = ?`, userID, unitID)
	metrics.RecordDBQuery("DELETE", "judgments", time.Since(start), err)
	if err != nil {
		return storeErr(fmt.Errorf("failed to delete judgment: %w", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(fmt.Errorf("failed to read affected rows: %w", err))
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
