// Collegedeck - College Matching and Swipe Feedback Service
// Copyright 2026 Collegedeck contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/collegedeck/collegedeck

package api

import (
	"net/http"
	"time"

	"github.com/collegedeck/collegedeck/internal/metrics"
	"github.com/collegedeck/collegedeck/internal/models"
)

// healthResponse summarizes service health and its dependencies.
type healthResponse struct {
	Status        string            `json:"status"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	CatalogSize   int               `json:"catalog_size"`
	Checks        map[string]string `json:"checks"`
}

// Health reports overall health with a dependency summary. The ranking
// provider is intentionally absent: it is optional and its failures
// never make the service unhealthy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	metrics.AppUptime.Set(uptime.Seconds())

	checks := map[string]string{"database": "ok"}
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		checks["database"] = "unavailable"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data: healthResponse{
			Status:        status,
			UptimeSeconds: int64(uptime.Seconds()),
			CatalogSize:   h.colleges.Size(),
			Checks:        checks,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthLive is the liveness probe. It answers as long as the process
// can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// HealthReady is the readiness probe. Selection and judgment writes
// need the profile store, so readiness follows its reachability.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, codeStoreError, "profile store unreachable", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
