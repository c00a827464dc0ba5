// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package config provides layered application configuration built on Koanf v2.
//
// Configuration is merged from three sources in increasing priority:
// built-in defaults, an optional YAML config file, and environment
// variables. Only explicitly mapped environment variables are honored.
package config
