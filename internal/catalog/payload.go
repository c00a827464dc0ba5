// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/models"
)

// payloadKeyPrefix namespaces college payloads in the cache.
const payloadKeyPrefix = "college:"

func payloadKey(unitID int64) []byte {
	return []byte(payloadKeyPrefix + strconv.FormatInt(unitID, 10))
}

// GetCollege returns the card payload for a college, reading through the
// cache. Source errors propagate unchanged so callers can classify them.
func (c *Catalog) GetCollege(ctx context.Context, unitID int64) (*models.College, error) {
	if college, ok := c.cachedCollege(unitID); ok {
		metrics.RecordCatalogCacheHit("payload")
		return college, nil
	}
	metrics.RecordCatalogCacheMiss("payload")

	college, err := c.source.GetCollege(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if err := c.storeCollege(college); err != nil {
		// Cache write failure is not fatal; the source answered.
		return college, nil //nolint:nilerr // cache population is best-effort
	}

	return college, nil
}

// Invalidate drops a cached payload, forcing the next read through to the
// source. Called after catalog updates.
func (c *Catalog) Invalidate(unitID int64) error {
	err := c.cache.Update(func(txn *badger.Txn) error {
		return txn.Delete(payloadKey(unitID))
	})
	if err != nil {
		return fmt.Errorf("invalidate college %d: %w", unitID, err)
	}
	return nil
}

// cachedCollege reads a payload from the cache. ok is false on miss or on
// any cache error; decode failures also count as misses.
func (c *Catalog) cachedCollege(unitID int64) (*models.College, bool) {
	var college models.College

	err := c.cache.View(func(txn *badger.Txn) error {
		item, err := txn.Get(payloadKey(unitID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &college)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	return &college, true
}

// storeCollege writes a payload with the configured TTL.
func (c *Catalog) storeCollege(college *models.College) error {
	data, err := json.Marshal(college)
	if err != nil {
		return fmt.Errorf("marshal college payload: %w", err)
	}

	return c.cache.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(payloadKey(college.UnitID), data)
		if c.payloadTTL > 0 {
			entry = entry.WithTTL(c.payloadTTL)
		}
		return txn.SetEntry(entry)
	})
}
