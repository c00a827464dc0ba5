// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Database query performance (DuckDB)
  - Candidate selection outcomes and fallback sampler behavior
  - Ranking provider call results and circuit breaker state
  - Judgment writes, overwrites, and deletions
  - Catalog cache hit/miss rates and snapshot refreshes

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Key Metrics

Selection:
  - selections_total: Candidate selections (counter)
    Labels: outcome (ranked, fallback, none_left, failed)
  - selection_duration_seconds: Selection latency (histogram)
    Labels: outcome
  - fallback_sampler_attempts: Rejection sampling attempts per fallback (histogram)
  - fallback_sampler_exhaustive_scans_total: Full remaining-ids scans (counter)

Ranking provider:
  - ranking_requests_total: Provider calls (counter)
    Labels: result (ranked, empty, unavailable)
  - ranking_request_duration_seconds: Provider call latency (histogram)
  - ranking_dropped_entries_total: Entries dropped during normalization (counter)
    Labels: reason (malformed, out_of_range, duplicate)
  - circuit_breaker_state: Breaker state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open

Feedback:
  - judgments_recorded_total: Judgment writes (counter)
    Labels: polarity (like, dislike)
  - judgment_overwrites_total: Writes that replaced an existing judgment (counter)
  - judgments_deleted_total: Judgment deletions (counter)

Catalog:
  - catalog_cache_hits_total / catalog_cache_misses_total (counter)
    Labels: cache_type (payload, snapshot)
  - catalog_snapshot_colleges: Colleges in the current id snapshot (gauge)
  - catalog_snapshot_refreshes_total: Refresh attempts (counter)
    Labels: result (success, failure)

# Usage

Record metrics through the helper functions:

	start := time.Now()
	rows, err := db.Query(query)
	metrics.RecordDBQuery("SELECT", "colleges", time.Since(start), err)

	metrics.RecordSelection("fallback", time.Since(start))
	metrics.RecordJudgment("like", false)

All metrics are registered with promauto at package init and are safe for
concurrent use.
*/
package metrics
