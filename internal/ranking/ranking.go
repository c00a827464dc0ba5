// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package ranking adapts the external top-k ranking provider into a
// best-effort candidate source for selection.
//
// The provider is never load-bearing: transport failures, timeouts, open
// circuit breakers, and fully-malformed responses all classify as
// Unavailable, which the selector absorbs by falling back to uniform
// sampling. Individual malformed or out-of-range entries are dropped during
// normalization without failing the call.
package ranking

import (
	"context"
	"time"

	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/metrics"
)

// Outcome classifies the result of a ranking call.
type Outcome int

const (
	// OutcomeUnavailable means the provider could not produce a usable
	// response. The selector falls back to uniform sampling.
	OutcomeUnavailable Outcome = iota
	// OutcomeEmpty means the provider answered with no candidates.
	OutcomeEmpty
	// OutcomeRanked means the provider returned at least one candidate.
	OutcomeRanked
)

// String returns the outcome label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomeRanked:
		return "ranked"
	case OutcomeEmpty:
		return "empty"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the outcome of one ranking call. IDs is ordered best-first and
// is only populated for OutcomeRanked. Reason explains Unavailable results
// for logging; it is never surfaced to clients.
type Result struct {
	Outcome Outcome
	IDs     []int64
	Reason  string
}

// Ranker produces ranked candidate ids for a user.
type Ranker interface {
	Rank(ctx context.Context, userID string) Result
}

// Provider is the transport-level source of ranked ids. Implementations
// return an error for anything that should count as a provider failure.
type Provider interface {
	TopK(ctx context.Context, userID string) ([]int64, error)
}

// Adapter converts Provider errors into ranking outcomes. It is the
// selector-facing entry point.
type Adapter struct {
	provider Provider
}

// NewAdapter wraps a provider (typically the HTTP client behind the circuit
// breaker) into a Ranker.
func NewAdapter(provider Provider) *Adapter {
	return &Adapter{provider: provider}
}

// Rank calls the provider once, with no retry. Failures are logged and
// absorbed into OutcomeUnavailable.
func (a *Adapter) Rank(ctx context.Context, userID string) Result {
	start := time.Now()

	ids, err := a.provider.TopK(ctx, userID)
	if err != nil {
		metrics.RecordRankingRequest(OutcomeUnavailable.String(), time.Since(start))
		logging.Ctx(ctx).Warn().Err(err).Msg("Ranking provider unavailable, selection will fall back")
		return Result{Outcome: OutcomeUnavailable, Reason: err.Error()}
	}

	if len(ids) == 0 {
		metrics.RecordRankingRequest(OutcomeEmpty.String(), time.Since(start))
		return Result{Outcome: OutcomeEmpty}
	}

	metrics.RecordRankingRequest(OutcomeRanked.String(), time.Since(start))
	return Result{Outcome: OutcomeRanked, IDs: ids}
}
