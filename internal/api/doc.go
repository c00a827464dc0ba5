// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package api provides the HTTP surface of Collegedeck.
//
// All responses use the models.APIResponse envelope. Authenticated
// routes resolve the user id through internal/auth; the handlers never
// see unauthenticated traffic. Selection outcomes map to status codes:
// 200 with a candidate, 204 when the user has exhausted the catalog,
// 503 when the profile store is unreachable. Ranking provider failures
// are absorbed upstream and never change a status code here.
package api
