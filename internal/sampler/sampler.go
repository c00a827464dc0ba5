// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package sampler provides uniform random candidate sampling over the
// catalog minus a user's exclusions. It backs selection whenever the
// ranking provider is unavailable, empty, or fully excluded.
package sampler

import (
	"math/rand"
	"sync"
	"time"

	"github.com/collegedeck/collegedeck/internal/metrics"
)

// DefaultMaxAttempts caps rejection sampling before the sampler switches to
// an explicit scan of the remaining ids.
const DefaultMaxAttempts = 50

// Sampler draws uniformly from a candidate id list, skipping excluded ids.
//
// Strategy: rejection sampling first, because exclusions are usually a
// small fraction of the catalog and a few draws almost always succeed. When
// maxAttempts draws all land on excluded ids, the sampler falls through to
// building the remaining-ids slice and drawing once from it, which
// guarantees termination and exact uniformity as exclusions approach the
// full catalog.
type Sampler struct {
	maxAttempts int

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a sampler. maxAttempts <= 0 selects DefaultMaxAttempts.
func New(maxAttempts int) *Sampler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Sampler{
		maxAttempts: maxAttempts,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // G404: sampling candidates is not security sensitive
	}
}

// NewSeeded creates a sampler with a fixed seed for deterministic tests.
func NewSeeded(maxAttempts int, seed int64) *Sampler {
	s := New(maxAttempts)
	s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // G404: deterministic test sampling
	return s
}

// SampleExcluding draws one id uniformly from ids minus excluded.
// ok is false when every id is excluded or ids is empty (NoneLeft).
func (s *Sampler) SampleExcluding(ids []int64, excluded map[int64]struct{}) (int64, bool) {
	if len(ids) == 0 {
		return 0, false
	}

	// Fast path: nothing excluded, one draw suffices.
	if len(excluded) == 0 {
		metrics.RecordSamplerAttempts(1, false)
		return ids[s.intn(len(ids))], true
	}

	// Every id excluded: skip straight to NoneLeft.
	if len(excluded) >= len(ids) {
		remaining := remainingIDs(ids, excluded)
		if len(remaining) == 0 {
			return 0, false
		}
		metrics.RecordSamplerAttempts(1, true)
		return remaining[s.intn(len(remaining))], true
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		id := ids[s.intn(len(ids))]
		if _, isExcluded := excluded[id]; !isExcluded {
			metrics.RecordSamplerAttempts(attempt, false)
			return id, true
		}
	}

	// Heavily excluded catalog: enumerate what is left and draw once.
	remaining := remainingIDs(ids, excluded)
	if len(remaining) == 0 {
		return 0, false
	}
	metrics.RecordSamplerAttempts(s.maxAttempts, true)
	return remaining[s.intn(len(remaining))], true
}

// intn draws a random index under the sampler lock. rand.Rand is not safe
// for concurrent use.
func (s *Sampler) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// remainingIDs returns ids minus excluded, preserving order.
func remainingIDs(ids []int64, excluded map[int64]struct{}) []int64 {
	capHint := len(ids) - len(excluded)
	if capHint < 0 {
		capHint = 0
	}
	remaining := make([]int64, 0, capHint)
	for _, id := range ids {
		if _, isExcluded := excluded[id]; !isExcluded {
			remaining = append(remaining, id)
		}
	}
	return remaining
}
