// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package sampler

import (
	"sync"
	"testing"
)

func TestSampleExcluding_EmptyCatalog(t *testing.T) {
	s := NewSeeded(10, 1)

	if _, ok := s.SampleExcluding(nil, nil); ok {
		t.Error("expected NoneLeft for empty catalog")
	}
	if _, ok := s.SampleExcluding([]int64{}, map[int64]struct{}{}); ok {
		t.Error("expected NoneLeft for empty catalog")
	}
}

func TestSampleExcluding_NoExclusions(t *testing.T) {
	s := NewSeeded(10, 1)
	ids := []int64{100, 200, 300}

	id, ok := s.SampleExcluding(ids, nil)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if id != 100 && id != 200 && id != 300 {
		t.Errorf("sampled id %d not in catalog", id)
	}
}

func TestSampleExcluding_SkipsExcluded(t *testing.T) {
	s := NewSeeded(50, 42)
	ids := []int64{100, 200, 300}
	excluded := map[int64]struct{}{100: {}, 300: {}}

	// Only 200 remains; every draw must return it
	for i := 0; i < 20; i++ {
		id, ok := s.SampleExcluding(ids, excluded)
		if !ok {
			t.Fatal("expected a candidate")
		}
		if id != 200 {
			t.Fatalf("sampled excluded id %d", id)
		}
	}
}

func TestSampleExcluding_AllExcluded(t *testing.T) {
	s := NewSeeded(10, 7)
	ids := []int64{100, 200, 300}
	excluded := map[int64]struct{}{100: {}, 200: {}, 300: {}}

	if _, ok := s.SampleExcluding(ids, excluded); ok {
		t.Error("expected NoneLeft when every id is excluded")
	}
}

func TestSampleExcluding_ExclusionsBeyondCatalog(t *testing.T) {
	s := NewSeeded(10, 7)
	ids := []int64{100}
	// Exclusion set larger than the catalog (stale snapshot scenario)
	excluded := map[int64]struct{}{100: {}, 200: {}, 300: {}}

	if _, ok := s.SampleExcluding(ids, excluded); ok {
		t.Error("expected NoneLeft")
	}
}

func TestSampleExcluding_HeavyExclusionTerminates(t *testing.T) {
	// 1000 ids with all but one excluded: rejection sampling will very
	// likely exhaust its attempts and the scan must still find the survivor.
	s := NewSeeded(5, 99)

	ids := make([]int64, 1000)
	excluded := make(map[int64]struct{}, 999)
	for i := range ids {
		ids[i] = int64(i + 1)
		if i != 500 {
			excluded[int64(i+1)] = struct{}{}
		}
	}

	for i := 0; i < 10; i++ {
		id, ok := s.SampleExcluding(ids, excluded)
		if !ok {
			t.Fatal("expected the single remaining candidate")
		}
		if id != 501 {
			t.Fatalf("expected id 501, got %d", id)
		}
	}
}

func TestSampleExcluding_RoughlyUniform(t *testing.T) {
	s := NewSeeded(50, 12345)
	ids := []int64{1, 2, 3, 4}
	excluded := map[int64]struct{}{4: {}}

	counts := make(map[int64]int)
	const draws = 3000
	for i := 0; i < draws; i++ {
		id, ok := s.SampleExcluding(ids, excluded)
		if !ok {
			t.Fatal("expected a candidate")
		}
		counts[id]++
	}

	if counts[4] != 0 {
		t.Fatalf("excluded id sampled %d times", counts[4])
	}
	// Each eligible id should get roughly a third of draws; allow wide slack
	for _, id := range []int64{1, 2, 3} {
		share := float64(counts[id]) / draws
		if share < 0.23 || share > 0.43 {
			t.Errorf("id %d share %.3f outside tolerance", id, share)
		}
	}
}

func TestSampleExcluding_Concurrent(t *testing.T) {
	s := New(50)
	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	excluded := map[int64]struct{}{1: {}, 2: {}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id, ok := s.SampleExcluding(ids, excluded)
				if !ok {
					t.Error("expected a candidate")
					return
				}
				if id <= 2 {
					t.Errorf("sampled excluded id %d", id)
					return
				}
			}
		}()
	}
	wg.Wait()
}
