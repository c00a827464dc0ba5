// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package supervisor builds the suture supervision tree that runs the
// long-lived parts of the service: the HTTP server and the catalog
// refresher. Crashed services restart with exponential backoff instead
// of taking the process down.
package supervisor
