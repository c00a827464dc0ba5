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

// GetCollege fetches a single college by unitid.
// Returns ErrNotFound when the id is not in the catalog.
func (db *DB) GetCollege(ctx context.Context, unitID int64) (*models.College, error) {
	start := time.Now()

	query := `SELECT unitid, institution_name,
		COALESCE(state_name, ''), COALESCE(percent_admitted, 0), COALESCE(tuition_and_fees, 0)
		FROM colleges WHERE unitid = ?`

	var c models.College
	err := db.conn.QueryRowContext(ctx, query, unitID).Scan(
		&c.UnitID, &c.InstitutionName, &c.StateName, &c.PercentAdmitted, &c.TuitionAndFees,
	)
	metrics.RecordDBQuery("SELECT", "colleges", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to get college %d: %w", unitID, err))
	}

	return &c, nil
}

// ListCollegeIDs returns every unitid in the catalog in ascending order.
// Used to build the in-memory id snapshot for fallback sampling.
func (db *DB) ListCollegeIDs(ctx context.Context) ([]int64, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx, `SELECT unitid FROM colleges ORDER BY unitid`)
	metrics.RecordDBQuery("SELECT", "colleges", time.Since(start), err)
	if err != nil {
		return nil, storeErr(fmt.Errorf("failed to list college ids: %w", err))
	}
	defer closeWithLog(rows, "college id rows")

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr(fmt.Errorf("failed to scan college id: %w", err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(fmt.Errorf("college id iteration failed: %w", err))
	}

	return ids, nil
}

// CountColleges returns the number of colleges in the catalog.
func (db *DB) CountColleges(ctx context.Context) (int64, error) {
	start := time.Now()

	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&count)
	metrics.RecordDBQuery("SELECT", "colleges", time.Since(start), err)
	if err != nil {
		return 0, storeErr(fmt.Errorf("failed to count colleges: %w", err))
	}

	return count, nil
}

// UpsertCollege inserts or updates a catalog entry. Descriptive attributes
// are replaced wholesale; unitid never changes.
func (db *DB) UpsertCollege(ctx context.Context, c *models.College) error {
	start := time.Now()

	query := `INSERT INTO colleges (
		unitid, institution_name, state_name, percent_admitted, tuition_and_fees, updated_at
	) VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (unitid) DO UPDATE SET
		institution_name = EXCLUDED.institution_name,
		state_name = EXCLUDED.state_name,
		percent_admitted = EXCLUDED.percent_admitted,
		tuition_and_fees = EXCLUDED.tuition_and_fees,
		updated_at = EXCLUDED.updated_at`

	_, err := db.conn.ExecContext(ctx, query,
		c.UnitID, c.InstitutionName, c.StateName, c.PercentAdmitted, c.TuitionAndFees)
	metrics.RecordDBQuery("UPSERT", "colleges", time.Since(start), err)
	if err != nil {
		return storeErr(fmt.Errorf("failed to upsert college %d: %w", c.UnitID, err))
	}

	return nil
}
