// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package ranking

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/metrics"
)

// breakerName labels ranking breaker metrics and logs.
const breakerName = "ranking-provider"

// CircuitBreakerProvider wraps a Provider with a circuit breaker so a
// failing ranking service is short-circuited instead of adding its timeout
// to every selection.
//
// DETERMINISM NOTE: the breaker uses real time for its interval and timeout
// calculations. Tests exercise the wrapped provider directly or configure
// short windows.
type CircuitBreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker[[]int64]
}

// NewCircuitBreakerProvider wraps provider with breaker settings from cfg.
// The circuit opens when the failure ratio reaches cfg.BreakerFailureRatio
// over at least cfg.BreakerMinRequests requests, and stays open for
// cfg.BreakerOpenTimeout before probing half-open.
func NewCircuitBreakerProvider(provider Provider, cfg *config.RankingConfig) *CircuitBreakerProvider {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	minRequests := cfg.BreakerMinRequests
	failureRatio := cfg.BreakerFailureRatio

	cb := gobreaker.NewCircuitBreaker[[]int64](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3, // concurrent probes allowed in half-open state
		Interval:    0, // counts reset only on state change
		Timeout:     cfg.BreakerOpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}

			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := ratio >= failureRatio

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening ranking circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerProvider{
		provider: provider,
		cb:       cb,
	}
}

// TopK runs the wrapped provider call through the breaker.
func (p *CircuitBreakerProvider) TopK(ctx context.Context, userID string) ([]int64, error) {
	ids, err := p.cb.Execute(func() ([]int64, error) {
		return p.provider.TopK(ctx, userID)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return ids, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a label value
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
