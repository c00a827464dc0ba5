// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package auth resolves the requesting user's identity.
//
// Collegedeck does not issue tokens. An external identity provider
// issues HS256 JWTs with a shared secret; this package validates them
// and exposes the sub claim as the user id through the request context.
// Everything downstream treats that id as already-authenticated input.
package auth
