// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package catalog keeps a fast-path view of the college catalog: an
// in-memory id snapshot for fallback sampling and a BadgerDB payload cache
// that keeps card reads off DuckDB.
//
// Snapshot staleness only affects which colleges are eligible for random
// fallback; exclusion correctness always comes from the judgment store.
package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/models"
)

// Source is the authoritative catalog reader. *database.DB satisfies it.
type Source interface {
	ListCollegeIDs(ctx context.Context) ([]int64, error)
	GetCollege(ctx context.Context, unitID int64) (*models.College, error)
}

// Catalog serves college ids and payloads.
//
// The id snapshot is an immutable slice swapped atomically on refresh, so
// readers never block and never see a half-built snapshot. Payloads are
// cached in BadgerDB with a TTL and read through to the source on miss.
type Catalog struct {
	source     Source
	cache      *badger.DB
	payloadTTL time.Duration

	snapshot atomic.Pointer[[]int64]
}

// Open creates a catalog with a BadgerDB payload cache at cfg.CachePath.
// An empty CachePath selects an in-memory cache (used by tests and demos).
func Open(source Source, cfg *config.CatalogConfig) (*Catalog, error) {
	var opts badger.Options
	if cfg.CachePath == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.CachePath)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	cache, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open catalog cache: %w", err)
	}

	c := &Catalog{
		source:     source,
		cache:      cache,
		payloadTTL: cfg.PayloadTTL,
	}
	empty := make([]int64, 0)
	c.snapshot.Store(&empty)

	return c, nil
}

// Close closes the payload cache.
func (c *Catalog) Close() error {
	return c.cache.Close()
}

// Refresh rebuilds the id snapshot from the source and drops cached
// payloads for colleges that are no longer listed. Safe to call
// concurrently with readers; the swap is atomic.
func (c *Catalog) Refresh(ctx context.Context) error {
	ids, err := c.source.ListCollegeIDs(ctx)
	metrics.RecordCatalogRefresh(len(ids), err)
	if err != nil {
		return fmt.Errorf("catalog refresh failed: %w", err)
	}

	previous := *c.snapshot.Load()
	c.snapshot.Store(&ids)

	// Payloads for colleges that left the catalog must not be served from
	// cache until their TTL runs out.
	current := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		current[id] = struct{}{}
	}
	for _, id := range previous {
		if _, ok := current[id]; ok {
			continue
		}
		if err := c.Invalidate(id); err != nil {
			logging.Warn().Err(err).Int64("unitid", id).Msg("Failed to drop removed college payload")
		}
	}

	logging.Debug().Int("colleges", len(ids)).Msg("Catalog snapshot refreshed")
	return nil
}

// IDs returns the current id snapshot. The slice is shared and must not be
// mutated.
func (c *Catalog) IDs() []int64 {
	return *c.snapshot.Load()
}

// Size returns the number of colleges in the current snapshot.
func (c *Catalog) Size() int {
	return len(c.IDs())
}
