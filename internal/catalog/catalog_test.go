// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/models"
)

// fakeSource is an in-memory catalog source that counts reads.
type fakeSource struct {
	mu       sync.Mutex
	colleges map[int64]models.College
	getCalls int
	listErr  error
}

func (f *fakeSource) ListCollegeIDs(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.colleges))
	for id := range f.colleges {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeSource) GetCollege(_ context.Context, unitID int64) (*models.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	c, ok := f.colleges[unitID]
	if !ok {
		return nil, errors.New("not found")
	}
	return &c, nil
}

func newTestCatalog(t *testing.T, source *fakeSource) *Catalog {
	t.Helper()

	c, err := Open(source, &config.CatalogConfig{
		CachePath:  "", // in-memory
		PayloadTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Logf("close failed: %v", err)
		}
	})
	return c
}

func TestRefreshAndIDs(t *testing.T) {
	source := &fakeSource{colleges: map[int64]models.College{
		100: {UnitID: 100, InstitutionName: "A"},
		200: {UnitID: 200, InstitutionName: "B"},
	}}
	c := newTestCatalog(t, source)

	if c.Size() != 0 {
		t.Errorf("expected empty snapshot before refresh, got %d", c.Size())
	}

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if c.Size() != 2 {
		t.Errorf("expected 2 ids after refresh, got %d", c.Size())
	}
}

func TestRefresh_FailureKeepsOldSnapshot(t *testing.T) {
	source := &fakeSource{colleges: map[int64]models.College{
		100: {UnitID: 100, InstitutionName: "A"},
	}}
	c := newTestCatalog(t, source)
	ctx := context.Background()

	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	source.mu.Lock()
	source.listErr = errors.New("store down")
	source.mu.Unlock()

	if err := c.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}
	if c.Size() != 1 {
		t.Errorf("failed refresh should keep old snapshot, got size %d", c.Size())
	}
}

func TestGetCollege_ReadThrough(t *testing.T) {
	source := &fakeSource{colleges: map[int64]models.College{
		100: {UnitID: 100, InstitutionName: "Test College", TuitionAndFees: 12345},
	}}
	c := newTestCatalog(t, source)
	ctx := context.Background()

	// First read hits the source
	got, err := c.GetCollege(ctx, 100)
	if err != nil {
		t.Fatalf("GetCollege failed: %v", err)
	}
	if got.InstitutionName != "Test College" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if source.getCalls != 1 {
		t.Errorf("expected 1 source read, got %d", source.getCalls)
	}

	// Second read is served from cache
	got, err = c.GetCollege(ctx, 100)
	if err != nil {
		t.Fatalf("cached GetCollege failed: %v", err)
	}
	if got.TuitionAndFees != 12345 {
		t.Errorf("cached payload corrupted: %+v", got)
	}
	if source.getCalls != 1 {
		t.Errorf("expected cache hit, source reads = %d", source.getCalls)
	}
}

func TestGetCollege_SourceErrorPropagates(t *testing.T) {
	source := &fakeSource{colleges: map[int64]models.College{}}
	c := newTestCatalog(t, source)

	if _, err := c.GetCollege(context.Background(), 999); err == nil {
		t.Error("expected source error to propagate")
	}
}

func TestInvalidate(t *testing.T) {
	source := &fakeSource{colleges: map[int64]models.College{
		100: {UnitID: 100, InstitutionName: "Before"},
	}}
	c := newTestCatalog(t, source)
	ctx := context.Background()

	if _, err := c.GetCollege(ctx, 100); err != nil {
		t.Fatalf("GetCollege failed: %v", err)
	}

	// Update the source and invalidate the cached payload
	source.mu.Lock()
	source.colleges[100] = models.College{UnitID: 100, InstitutionName: "After"}
	source.mu.Unlock()
	if err := c.Invalidate(100); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	got, err := c.GetCollege(ctx, 100)
	if err != nil {
		t.Fatalf("GetCollege after invalidate failed: %v", err)
	}
	if got.InstitutionName != "After" {
		t.Errorf("expected refreshed payload, got %+v", got)
	}
}

func TestRefresh_DropsPayloadsForRemovedColleges(t *testing.T) {
	source := &fakeSource{colleges: map[int64]models.College{
		100: {UnitID: 100, InstitutionName: "Closing College"},
		200: {UnitID: 200, InstitutionName: "Staying College"},
	}}
	c := newTestCatalog(t, source)
	ctx := context.Background()

	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	// Populate the payload cache for both colleges
	for _, id := range []int64{100, 200} {
		if _, err := c.GetCollege(ctx, id); err != nil {
			t.Fatalf("GetCollege(%d) failed: %v", id, err)
		}
	}

	// College 100 leaves the catalog
	source.mu.Lock()
	delete(source.colleges, 100)
	source.mu.Unlock()
	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("second Refresh failed: %v", err)
	}
	if c.Size() != 1 {
		t.Fatalf("expected 1 id after removal, got %d", c.Size())
	}

	// The removed college's payload must not be served from cache
	if _, err := c.GetCollege(ctx, 100); err == nil {
		t.Error("expected stale payload to be dropped on refresh")
	}

	// The surviving college is still cached
	reads := source.getCalls
	if _, err := c.GetCollege(ctx, 200); err != nil {
		t.Fatalf("GetCollege(200) failed: %v", err)
	}
	if source.getCalls != reads {
		t.Errorf("expected cache hit for surviving college, source reads went %d -> %d", reads, source.getCalls)
	}
}

func TestIDs_ConcurrentWithRefresh(t *testing.T) {
	source := &fakeSource{colleges: map[int64]models.College{
		100: {UnitID: 100}, 200: {UnitID: 200}, 300: {UnitID: 300},
	}}
	c := newTestCatalog(t, source)
	ctx := context.Background()

	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = c.Refresh(ctx)
			}
		}
	}()

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				ids := c.IDs()
				if len(ids) != 3 {
					t.Errorf("snapshot torn: %d ids", len(ids))
					return
				}
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(stop)
	wg.Wait()
}
