// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

/*
schema.go - Database Schema Management

Tables:
  - colleges: The college catalog, keyed by IPEDS UNITID. Source of truth
    for candidate eligibility and card payloads.
  - judgments: One row per (user_id, unitid) holding the user's current
    judgment. A later judgment for the same college overwrites the earlier
    one, so the table doubles as the exclusion ledger.

Index Strategy:
Judgment lookups are always scoped to a single user (exclusion checks,
listings, deletions), so user_id leads every index. The primary key on
(user_id, unitid) covers point lookups; the secondary index on
(user_id, judged_at) serves recency-ordered listings.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS colleges (
			unitid BIGINT PRIMARY KEY,
			institution_name TEXT NOT NULL,
			state_name TEXT,
			percent_admitted DOUBLE,
			tuition_and_fees BIGINT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS judgments (
			user_id TEXT NOT NULL,
			unitid BIGINT NOT NULL,
			polarity TEXT NOT NULL CHECK (polarity IN ('like', 'dislike')),
			judged_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, unitid)
		)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// createIndexes creates secondary indexes for common query patterns
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_judgments_user_judged_at ON judgments (user_id, judged_at)`,
		`CREATE INDEX IF NOT EXISTS idx_colleges_state ON colleges (state_name)`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
