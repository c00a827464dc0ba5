// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

/*
Package database provides DuckDB-backed storage for the college catalog and
the per-user judgment store.

# Overview

The package wraps a single embedded DuckDB database accessed through
database/sql. Two tables back the whole service:

  - colleges: the candidate catalog, keyed by IPEDS UNITID
  - judgments: one row per (user_id, unitid), holding the user's current
    polarity and timestamp

The judgments table is both the feedback record and the exclusion ledger:
a row existing for (user, unitid) means the college never reappears in that
user's deck, regardless of polarity.

# Error Semantics

Connection-level failures are wrapped in ErrStoreUnavailable so callers can
fail the current operation instead of proceeding with unknown exclusion
state. Missing rows surface as ErrNotFound. Both are sentinel errors usable
with errors.Is.

# Durability

UpsertJudgment returns only after the write is applied. Selection issued
immediately after a successful write observes the new exclusion. The WAL is
checkpointed on Close and after schema initialization.

# Concurrency

*DB is safe for concurrent use. The connection pool bounds concurrent CGO
calls into DuckDB; last write wins on concurrent upserts for the same
(user, unitid) pair, which is acceptable because both writes carry the same
user intent ordering as the HTTP requests that produced them.
*/
package database
