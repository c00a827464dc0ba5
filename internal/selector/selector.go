// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package selector picks the next candidate college for a user.
//
// Selection order: the ranked list from the ranking adapter, filtered by
// the exclusion ledger with order preserved, first survivor wins; when
// ranking is unavailable, empty, or fully excluded, a uniform fallback
// sample over the remaining catalog; when nothing remains, NoneLeft.
//
// The ledger is load-bearing: if the exclusion set cannot be read the
// selection fails rather than risking an already-judged college.
package selector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collegedeck/collegedeck/internal/ledger"
	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/ranking"
	"github.com/collegedeck/collegedeck/internal/sampler"
)

// Source says which path produced a selection.
type Source string

const (
	// SourceRanked means the candidate came from the ranking provider.
	SourceRanked Source = "ranked"
	// SourceFallback means the candidate came from uniform sampling.
	SourceFallback Source = "fallback"
)

var (
	// ErrNoneLeft means the user has judged the entire catalog.
	ErrNoneLeft = errors.New("no candidates left")
	// ErrSelectionFailed means the exclusion ledger could not be consulted.
	ErrSelectionFailed = errors.New("selection failed")
)

// Selection is one chosen candidate and the path that produced it.
type Selection struct {
	UnitID int64
	Source Source
}

// CatalogView supplies the id universe for fallback sampling.
type CatalogView interface {
	IDs() []int64
}

// Selector orchestrates ledger, ranking, and sampling.
type Selector struct {
	ledger  *ledger.Ledger
	ranker  ranking.Ranker // nil when ranking is disabled
	sampler *sampler.Sampler
	catalog CatalogView
}

// New creates a selector. ranker may be nil, in which case every selection
// uses the fallback path.
func New(l *ledger.Ledger, ranker ranking.Ranker, s *sampler.Sampler, catalog CatalogView) *Selector {
	return &Selector{
		ledger:  l,
		ranker:  ranker,
		sampler: s,
		catalog: catalog,
	}
}

// Next returns the next candidate for the user.
//
// Errors: ErrSelectionFailed (wrapping the ledger failure) when the
// exclusion set is unreadable; ErrNoneLeft when the catalog is exhausted
// for this user. Ranking failures never surface; they downgrade to
// fallback sampling.
func (s *Selector) Next(ctx context.Context, userID string) (*Selection, error) {
	start := time.Now()

	excluded, err := s.ledger.ExcludedSet(ctx, userID)
	if err != nil {
		metrics.RecordSelection("failed", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrSelectionFailed, err)
	}

	if s.ranker != nil {
		if sel := s.rankedCandidate(ctx, userID, excluded); sel != nil {
			metrics.RecordSelection("ranked", time.Since(start))
			return sel, nil
		}
	}

	id, ok := s.sampler.SampleExcluding(s.catalog.IDs(), excluded)
	if !ok {
		metrics.RecordSelection("none_left", time.Since(start))
		return nil, ErrNoneLeft
	}

	metrics.RecordSelection("fallback", time.Since(start))
	return &Selection{UnitID: id, Source: SourceFallback}, nil
}

// rankedCandidate returns the first unexcluded id from the ranked list, or
// nil when ranking cannot produce a candidate.
func (s *Selector) rankedCandidate(ctx context.Context, userID string, excluded map[int64]struct{}) *Selection {
	result := s.ranker.Rank(ctx, userID)
	if result.Outcome != ranking.OutcomeRanked {
		return nil
	}

	for _, id := range result.IDs {
		if _, isExcluded := excluded[id]; !isExcluded {
			return &Selection{UnitID: id, Source: SourceRanked}
		}
	}

	// Provider only suggested colleges the user has already judged.
	logging.Ctx(ctx).Debug().Int("ranked", len(result.IDs)).Msg("Ranked list fully excluded, falling back")
	return nil
}
