// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

// Package main is the entry point for the Collegedeck server.
//
// Collegedeck is the backend for a college swipe app: authenticated
// users fetch the next candidate college, swipe like or dislike, and
// never see the same college twice. An external ranking provider
// personalizes ordering; a uniform-random fallback guarantees forward
// progress when ranking is unusable.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables and optional config file (Koanf v2)
//  2. Database: DuckDB profile store and catalog source of truth
//  3. Catalog: id snapshot plus BadgerDB payload cache
//  4. Ranking: HTTP provider client behind a circuit breaker (optional)
//  5. Selection: exclusion ledger, fallback sampler, candidate selector
//  6. Authentication: HS256 bearer tokens from the external identity provider
//  7. HTTP Server: REST API under /api/v1 plus /metrics
//
// The HTTP server and the catalog refresher run under a suture
// supervision tree and restart with backoff on failure.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// For development without an identity provider:
//
//	export AUTH_MODE=none
//	export SEED_DEMO_DATA=true
//	export DUCKDB_PATH=:memory:
//	./collegedeck
//
// Production with JWT and a ranking provider:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export RANKING_ENABLED=true
//	export RANKING_URL=https://ranking.internal
//	export RANKING_API_KEY=...
//	./collegedeck
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests (10s timeout),
// checkpoints and closes the database, and stops the supervision tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/collegedeck/collegedeck/internal/api"
	"github.com/collegedeck/collegedeck/internal/auth"
	"github.com/collegedeck/collegedeck/internal/catalog"
	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/database"
	"github.com/collegedeck/collegedeck/internal/feedback"
	"github.com/collegedeck/collegedeck/internal/ledger"
	"github.com/collegedeck/collegedeck/internal/logging"
	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/ranking"
	"github.com/collegedeck/collegedeck/internal/sampler"
	"github.com/collegedeck/collegedeck/internal/selector"
	"github.com/collegedeck/collegedeck/internal/supervisor"
	"github.com/collegedeck/collegedeck/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("ranking_enabled", cfg.Ranking.Enabled).
		Msg("Starting Collegedeck")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	cat, err := catalog.Open(db, &cfg.Catalog)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog cache")
	}
	defer func() {
		if err := cat.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog cache")
		}
	}()

	// An initial refresh failure is survivable: the refresher service
	// retries on its cadence and selection reports none-left until a
	// snapshot lands.
	if err := cat.Refresh(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Initial catalog refresh failed, starting with empty snapshot")
	} else {
		logging.Info().Int("colleges", cat.Size()).Msg("Catalog snapshot loaded")
	}

	// Ranking is optional. With it disabled every selection takes the
	// uniform fallback path.
	var ranker ranking.Ranker
	if cfg.Ranking.Enabled {
		provider := ranking.NewCircuitBreakerProvider(ranking.NewClient(&cfg.Ranking), &cfg.Ranking)
		ranker = ranking.NewAdapter(provider)
		logging.Info().
			Str("url", cfg.Ranking.URL).
			Int("top_k", cfg.Ranking.TopK).
			Msg("Ranking provider enabled")
	} else {
		logging.Info().Msg("Ranking provider disabled, selections use uniform fallback")
	}

	sel := selector.New(
		ledger.New(db),
		ranker,
		sampler.New(cfg.Selection.SamplerMaxAttempts),
		cat,
	)
	recorder := feedback.New(db)

	if cfg.Security.AuthMode == "none" {
		logging.Warn().Msg("SECURITY WARNING: authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("All endpoints trust the X-User-ID header. Development use only!")
	}

	authn, err := auth.New(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(cfg, db, cat, sel, recorder)
	router := api.NewRouter(cfg, handler, authn)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStorageService(services.NewCatalogRefreshService(cat, cfg.Catalog.RefreshInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
