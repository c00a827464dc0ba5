// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package middleware provides the HTTP middleware stack: request id
// propagation, Prometheus instrumentation, and response compression.
// Authentication lives in internal/auth; rate limiting and CORS are
// wired directly in internal/api from third-party middleware.
package middleware
