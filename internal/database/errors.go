// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/collegedeck/collegedeck/internal/logging"
)

// ErrStoreUnavailable indicates the judgment store could not be read or
// written. Callers must treat this as fatal for the current operation
// rather than guessing at exclusion state.
var ErrStoreUnavailable = errors.New("judgment store unavailable")

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// isConnectionError checks if an error indicates database connection loss
// rather than a query-level problem.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "bad connection") ||
		strings.Contains(errMsg, "database is closed") ||
		strings.Contains(errMsg, "database has been invalidated")
}

// IsStoreUnavailable reports whether err indicates the judgment store is
// unreachable.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// storeErr wraps connection-level failures in ErrStoreUnavailable so callers
// can distinguish "the store is down" from ordinary query errors.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if isConnectionError(err) {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return err
}
