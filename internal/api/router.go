// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/collegedeck/collegedeck/internal/auth"
	"github.com/collegedeck/collegedeck/internal/config"
	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/middleware"
)

// Router assembles the middleware stack and routes.
type Router struct {
	cfg     *config.Config
	handler *Handler
	auth    *auth.Authenticator
}

// NewRouter creates a router over the given handler set.
func NewRouter(cfg *config.Config, handler *Handler, authn *auth.Authenticator) *Router {
	return &Router{
		cfg:     cfg,
		handler: handler,
		auth:    authn,
	}
}

// Routes builds the chi handler tree.
//
// Health probes and /metrics stay outside authentication and rate
// limiting so orchestrators and the scrape loop are never locked out.
// The estimate endpoint is a pure function over its input and needs no
// identity, but is rate limited.
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.corsMiddleware())
	r.Use(middleware.Compression)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", rt.handler.Health)
		r.Get("/health/live", rt.handler.HealthLive)
		r.Get("/health/ready", rt.handler.HealthReady)

		r.With(rt.rateLimit()).Post("/estimate", rt.handler.Estimate)

		r.Group(func(r chi.Router) {
			r.Use(rt.rateLimit())
			r.Use(middleware.PrometheusMetrics)
			r.Use(rt.auth.Middleware)

			r.Get("/me", rt.handler.Me)
			r.Get("/next-candidate", rt.handler.NextCandidate)

			r.Route("/judgments", func(r chi.Router) {
				r.Post("/", rt.handler.CreateJudgment)
				r.Get("/", rt.handler.ListJudgments)
				r.Delete("/{unitid}", rt.handler.DeleteJudgment)
			})
		})
	})

	return r
}

// corsMiddleware builds the CORS handler from configured origins.
func (rt *Router) corsMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID", "X-User-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// rateLimit limits requests per client IP over the configured window.
func (rt *Router) rateLimit() func(http.Handler) http.Handler {
	if rt.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		rt.cfg.Security.RateLimitReqs,
		rt.cfg.Security.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, http.StatusTooManyRequests, codeRateLimitExceeded, "rate limit exceeded", nil)
		}),
	)
}
