// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment
// variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Ranking   RankingConfig   `koanf:"ranking"`
	Selection SelectionConfig `koanf:"selection"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings for the profile store and catalog
// source of truth.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/collegedeck.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: Query threads, 0 = runtime.NumCPU()
//   - SEED_DEMO_DATA: Seed a small demo catalog on startup (default: false)
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	SeedDemoData bool   `koanf:"seed_demo_data"`
}

// CatalogConfig holds settings for the catalog id snapshot and the
// badger-backed payload cache that keeps the swipe path off DuckDB.
//
// Staleness of the id snapshot only affects which colleges are eligible for
// random fallback; exclusion correctness always comes from the store.
type CatalogConfig struct {
	CachePath       string        `koanf:"cache_path"`       // BadgerDB directory; empty = in-memory
	RefreshInterval time.Duration `koanf:"refresh_interval"` // id snapshot refresh cadence
	PayloadTTL      time.Duration `koanf:"payload_ttl"`      // cached payload lifetime
}

// RankingConfig holds settings for the external ranking provider.
//
// The provider is best-effort: the adapter applies Timeout per call and never
// retries on its own. Breaker settings control when calls are short-circuited
// after repeated failures. MaxRPS bounds outbound request rate to the
// provider (0 = unlimited).
type RankingConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
	TopK    int           `koanf:"top_k"`
	MaxRPS  float64       `koanf:"max_rps"`

	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerOpenTimeout  time.Duration `koanf:"breaker_open_timeout"`
}

// SelectionConfig holds settings for candidate selection and fallback
// sampling.
type SelectionConfig struct {
	// SamplerMaxAttempts caps rejection sampling before switching to an
	// explicit remaining-ids scan. Guarantees termination as exclusions
	// approach the full catalog.
	SamplerMaxAttempts int `koanf:"sampler_max_attempts"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// APIConfig holds API pagination limits for judgment listings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and rate limiting settings.
//
// Tokens are issued by the external identity provider and validated here
// with a shared HS256 secret; issuer and audience claims are checked when
// configured.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // "jwt" or "none"
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	JWTAudience       string        `koanf:"jwt_audience"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds log level and output format settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
