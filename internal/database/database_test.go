// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/collegedeck/collegedeck/internal/config"
)

// testDBSemaphore limits concurrent database creation to prevent resource
// exhaustion in CI. Concurrent DuckDB CGO calls can hang under pressure, so
// database access is fully serialized across tests.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes the New() call itself.
var testDBMutex sync.Mutex

// setupTestDB creates a new in-memory test database with timeout protection.
// The semaphore is held for the entire test lifecycle (released via
// t.Cleanup) so only one test has an active DuckDB connection at a time.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	type result struct {
		db  *DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Logf("Failed to close test database: %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

func TestNew_InitializesSchema(t *testing.T) {
	db := setupTestDB(t)

	ctx := context.Background()
	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	// Both tables exist and are empty
	count, err := db.CountColleges(ctx)
	if err != nil {
		t.Fatalf("CountColleges failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty catalog, got %d", count)
	}

	judged, err := db.JudgedUnitIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("JudgedUnitIDs failed: %v", err)
	}
	if len(judged) != 0 {
		t.Errorf("expected no judgments, got %d", len(judged))
	}
}

func TestCheckpoint(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Checkpoint(context.Background()); err != nil {
		t.Errorf("Checkpoint failed: %v", err)
	}
}

func TestSeedDemoData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData failed: %v", err)
	}

	count, err := db.CountColleges(ctx)
	if err != nil {
		t.Fatalf("CountColleges failed: %v", err)
	}
	if count != int64(len(demoCatalog)) {
		t.Errorf("expected %d colleges, got %d", len(demoCatalog), count)
	}

	// Second seed is a no-op
	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("second SeedDemoData failed: %v", err)
	}
	count2, err := db.CountColleges(ctx)
	if err != nil {
		t.Fatalf("CountColleges failed: %v", err)
	}
	if count2 != count {
		t.Errorf("seed should be idempotent: %d != %d", count2, count)
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"query error", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError() = %v, want %v", got, tt.want)
			}
		})
	}
}
