// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Candidate selection outcomes (ranked, fallback, none_left, failed)
// - Ranking provider calls and circuit breaker state
// - Judgment writes
// - Catalog cache efficiency

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Candidate Selection Metrics
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selections_total",
			Help: "Total number of candidate selections by outcome",
		},
		[]string{"outcome"}, // "ranked", "fallback", "none_left", "failed"
	)

	SelectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "selection_duration_seconds",
			Help:    "Duration of candidate selection in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)

	SamplerAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fallback_sampler_attempts",
			Help:    "Number of rejection sampling attempts per fallback selection",
			Buckets: []float64{1, 2, 5, 10, 25, 50},
		},
	)

	SamplerExhaustiveScans = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fallback_sampler_exhaustive_scans_total",
			Help: "Total number of fallback selections that fell through to a full remaining-ids scan",
		},
	)

	// Ranking Provider Metrics
	RankingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_requests_total",
			Help: "Total number of ranking provider requests by result",
		},
		[]string{"result"}, // "ranked", "empty", "unavailable"
	)

	RankingRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_request_duration_seconds",
			Help:    "Duration of ranking provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RankingDroppedEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_dropped_entries_total",
			Help: "Total number of ranking response entries dropped during normalization",
		},
		[]string{"reason"}, // "malformed", "out_of_range", "duplicate"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Judgment Metrics
	JudgmentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgments_recorded_total",
			Help: "Total number of judgments recorded by polarity",
		},
		[]string{"polarity"}, // "like", "dislike"
	)

	JudgmentOverwrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "judgment_overwrites_total",
			Help: "Total number of judgments that replaced an existing judgment for the same college",
		},
	)

	JudgmentsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "judgments_deleted_total",
			Help: "Total number of judgments deleted",
		},
	)

	// Catalog Cache Metrics
	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
		[]string{"cache_type"}, // "payload", "snapshot"
	)

	CatalogCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
		[]string{"cache_type"},
	)

	CatalogSnapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_colleges",
			Help: "Number of colleges in the current catalog id snapshot",
		},
	)

	CatalogSnapshotRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_snapshot_refreshes_total",
			Help: "Total number of catalog snapshot refresh attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	CatalogLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_refresh_timestamp",
			Help: "Unix timestamp of last successful catalog snapshot refresh",
		},
	)

	// Score Estimate Metrics
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_estimates_total",
			Help: "Total number of score concordance estimates by direction",
		},
		[]string{"direction"}, // "act_to_sat", "sat_to_act"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSelection records a candidate selection outcome and its duration
func RecordSelection(outcome string, duration time.Duration) {
	SelectionsTotal.WithLabelValues(outcome).Inc()
	SelectionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordSamplerAttempts records rejection sampling attempts for one fallback
// selection. exhaustive is true when sampling gave up and a full scan ran.
func RecordSamplerAttempts(attempts int, exhaustive bool) {
	SamplerAttempts.Observe(float64(attempts))
	if exhaustive {
		SamplerExhaustiveScans.Inc()
	}
}

// RecordRankingRequest records a ranking provider call and its result
func RecordRankingRequest(result string, duration time.Duration) {
	RankingRequestsTotal.WithLabelValues(result).Inc()
	RankingRequestDuration.Observe(duration.Seconds())
}

// RecordRankingDropped records ranking entries discarded during normalization
func RecordRankingDropped(reason string, count int) {
	if count > 0 {
		RankingDroppedEntries.WithLabelValues(reason).Add(float64(count))
	}
}

// RecordJudgment records a judgment write. overwrite is true when the write
// replaced an existing judgment for the same (user, college) pair.
func RecordJudgment(polarity string, overwrite bool) {
	JudgmentsRecorded.WithLabelValues(polarity).Inc()
	if overwrite {
		JudgmentOverwrites.Inc()
	}
}

// RecordJudgmentDeleted records a judgment deletion
func RecordJudgmentDeleted() {
	JudgmentsDeleted.Inc()
}

// RecordCatalogCacheHit records a catalog cache hit
func RecordCatalogCacheHit(cacheType string) {
	CatalogCacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCatalogCacheMiss records a catalog cache miss
func RecordCatalogCacheMiss(cacheType string) {
	CatalogCacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCatalogRefresh records a catalog snapshot refresh attempt
func RecordCatalogRefresh(size int, err error) {
	if err != nil {
		CatalogSnapshotRefreshes.WithLabelValues("failure").Inc()
		return
	}
	CatalogSnapshotRefreshes.WithLabelValues("success").Inc()
	CatalogSnapshotSize.Set(float64(size))
	CatalogLastRefresh.Set(float64(time.Now().Unix()))
}

// RecordEstimate records a score concordance estimate
func RecordEstimate(direction string) {
	EstimatesTotal.WithLabelValues(direction).Inc()
}
