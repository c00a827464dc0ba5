// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package models defines the shared data structures used across Collegedeck:
// the college catalog entry, the judgment record, and the standardized API
// response envelope. Keeping these in one dependency-free package avoids
// import cycles between the storage, selection, and HTTP layers.
package models
