// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/collegedeck/collegedeck/internal/models"
)

func TestUpsertJudgment_InsertAndOverwrite(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	prev, err := db.UpsertJudgment(ctx, &models.Judgment{
		UserID: "user-1", UnitID: 100654, Polarity: models.PolarityLike,
	})
	if err != nil {
		t.Fatalf("UpsertJudgment failed: %v", err)
	}
	if prev != "" {
		t.Errorf("expected no previous polarity, got %q", prev)
	}

	// Overwrite with the opposite polarity
	prev, err = db.UpsertJudgment(ctx, &models.Judgment{
		UserID: "user-1", UnitID: 100654, Polarity: models.PolarityDislike,
	})
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if prev != models.PolarityLike {
		t.Errorf("expected previous polarity like, got %q", prev)
	}

	// Still a single row, with the new polarity
	count, err := db.CountJudgments(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("CountJudgments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 judgment, got %d", count)
	}

	judgments, err := db.ListJudgments(ctx, "user-1", "", 10, 0)
	if err != nil {
		t.Fatalf("ListJudgments failed: %v", err)
	}
	if len(judgments) != 1 || judgments[0].Polarity != models.PolarityDislike {
		t.Errorf("expected single dislike, got %+v", judgments)
	}
}

func TestUpsertJudgment_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	j := &models.Judgment{UserID: "user-1", UnitID: 110404, Polarity: models.PolarityLike}
	if _, err := db.UpsertJudgment(ctx, j); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	prev, err := db.UpsertJudgment(ctx, j)
	if err != nil {
		t.Fatalf("repeat upsert failed: %v", err)
	}
	if prev != models.PolarityLike {
		t.Errorf("expected previous polarity like, got %q", prev)
	}

	count, err := db.CountJudgments(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("CountJudgments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("repeat judgment should not add rows, got %d", count)
	}
}

func TestUpsertJudgment_ConcurrentWritesKeepSingleRow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Two near-simultaneous swipes on the same college must collapse to a
	// single row; whichever write lands last wins.
	polarities := []models.Polarity{models.PolarityLike, models.PolarityDislike}
	var wg sync.WaitGroup
	errs := make([]error, len(polarities))
	for i, p := range polarities {
		wg.Add(1)
		go func(i int, p models.Polarity) {
			defer wg.Done()
			_, errs[i] = db.UpsertJudgment(ctx, &models.Judgment{
				UserID: "user-1", UnitID: 100654, Polarity: p,
			})
		}(i, p)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent upsert %d failed: %v", i, err)
		}
	}

	count, err := db.CountJudgments(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("CountJudgments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 judgment after concurrent writes, got %d", count)
	}

	judgments, err := db.ListJudgments(ctx, "user-1", "", 10, 0)
	if err != nil {
		t.Fatalf("ListJudgments failed: %v", err)
	}
	if len(judgments) != 1 {
		t.Fatalf("expected single judgment, got %d", len(judgments))
	}
	if p := judgments[0].Polarity; p != models.PolarityLike && p != models.PolarityDislike {
		t.Errorf("expected one of the written polarities, got %q", p)
	}
}

func TestUpsertJudgment_InvalidPolarity(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.UpsertJudgment(context.Background(), &models.Judgment{
		UserID: "user-1", UnitID: 1, Polarity: "maybe",
	})
	if err == nil {
		t.Error("expected error for invalid polarity")
	}
}

func TestJudgedUnitIDs_BothPolarities(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seed := []models.Judgment{
		{UserID: "user-1", UnitID: 100654, Polarity: models.PolarityLike},
		{UserID: "user-1", UnitID: 110404, Polarity: models.PolarityDislike},
		{UserID: "user-2", UnitID: 130794, Polarity: models.PolarityLike},
	}
	for i := range seed {
		if _, err := db.UpsertJudgment(ctx, &seed[i]); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}

	judged, err := db.JudgedUnitIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("JudgedUnitIDs failed: %v", err)
	}
	if len(judged) != 2 {
		t.Fatalf("expected 2 judged ids, got %d", len(judged))
	}
	if _, ok := judged[100654]; !ok {
		t.Error("expected liked college in exclusion set")
	}
	if _, ok := judged[110404]; !ok {
		t.Error("expected disliked college in exclusion set")
	}
	if _, ok := judged[130794]; ok {
		t.Error("another user's judgment leaked into exclusion set")
	}
}

func TestIsJudged(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.UpsertJudgment(ctx, &models.Judgment{
		UserID: "user-1", UnitID: 100654, Polarity: models.PolarityLike,
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	judged, err := db.IsJudged(ctx, "user-1", 100654)
	if err != nil {
		t.Fatalf("IsJudged failed: %v", err)
	}
	if !judged {
		t.Error("expected judged = true")
	}

	judged, err = db.IsJudged(ctx, "user-1", 999999)
	if err != nil {
		t.Fatalf("IsJudged failed: %v", err)
	}
	if judged {
		t.Error("expected judged = false for unjudged college")
	}
}

func TestListJudgments_OrderAndFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Judgment{
		{UserID: "user-1", UnitID: 100654, Polarity: models.PolarityLike, JudgedAt: base},
		{UserID: "user-1", UnitID: 110404, Polarity: models.PolarityDislike, JudgedAt: base.Add(time.Minute)},
		{UserID: "user-1", UnitID: 130794, Polarity: models.PolarityLike, JudgedAt: base.Add(2 * time.Minute)},
	}
	for i := range seed {
		if _, err := db.UpsertJudgment(ctx, &seed[i]); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}

	// Most recent first
	all, err := db.ListJudgments(ctx, "user-1", "", 10, 0)
	if err != nil {
		t.Fatalf("ListJudgments failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 judgments, got %d", len(all))
	}
	if all[0].UnitID != 130794 || all[2].UnitID != 100654 {
		t.Errorf("expected recency order, got %v, %v, %v", all[0].UnitID, all[1].UnitID, all[2].UnitID)
	}

	// Polarity filter
	likes, err := db.ListJudgments(ctx, "user-1", models.PolarityLike, 10, 0)
	if err != nil {
		t.Fatalf("ListJudgments(like) failed: %v", err)
	}
	if len(likes) != 2 {
		t.Errorf("expected 2 likes, got %d", len(likes))
	}
	for _, j := range likes {
		if j.Polarity != models.PolarityLike {
			t.Errorf("filter leaked polarity %q", j.Polarity)
		}
	}

	// Pagination
	page, err := db.ListJudgments(ctx, "user-1", "", 2, 2)
	if err != nil {
		t.Fatalf("paginated ListJudgments failed: %v", err)
	}
	if len(page) != 1 || page[0].UnitID != 100654 {
		t.Errorf("expected last page with oldest judgment, got %+v", page)
	}
}

func TestDeleteJudgment(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.UpsertJudgment(ctx, &models.Judgment{
		UserID: "user-1", UnitID: 100654, Polarity: models.PolarityDislike,
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := db.DeleteJudgment(ctx, "user-1", 100654); err != nil {
		t.Fatalf("DeleteJudgment failed: %v", err)
	}

	// College is back in the candidate pool
	judged, err := db.IsJudged(ctx, "user-1", 100654)
	if err != nil {
		t.Fatalf("IsJudged failed: %v", err)
	}
	if judged {
		t.Error("expected judgment removed")
	}

	// Deleting again reports not found
	err = db.DeleteJudgment(ctx, "user-1", 100654)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
