// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package services

import (
	"context"
	"time"

	"github.com/collegedeck/collegedeck/internal/logging"
)

// Refresher reloads the catalog id snapshot from the store.
// *catalog.Catalog satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefreshService periodically refreshes the catalog snapshot so
// fallback sampling sees colleges added or removed after startup. A
// failed refresh keeps the previous snapshot; the service logs the
// failure and waits for the next tick rather than crashing, since a
// stale snapshot is still serviceable.
type CatalogRefreshService struct {
	refresher Refresher
	interval  time.Duration
	name      string
}

// NewCatalogRefreshService creates the refresher service.
func NewCatalogRefreshService(refresher Refresher, interval time.Duration) *CatalogRefreshService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &CatalogRefreshService{
		refresher: refresher,
		interval:  interval,
		name:      "catalog-refresher",
	}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.refresher.Refresh(ctx); err != nil {
				logging.Error().Err(err).Msg("Catalog refresh failed, keeping previous snapshot")
			}
		}
	}
}

// String identifies the service in suture log messages.
func (s *CatalogRefreshService) String() string {
	return s.name
}
