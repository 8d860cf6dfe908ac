// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/blogfront/internal/scheduler"
)

// StatusSource reports the latest backend probe.
type StatusSource interface {
	Status() scheduler.Status
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	probe     StatusSource
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(probe StatusSource, version string) *HealthHandler {
	return &HealthHandler{
		probe:     probe,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatus is the liveness response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   string    `json:"version"`
}

// ReadinessStatus is the readiness response.
type ReadinessStatus struct {
	Status  string           `json:"status"`
	Backend scheduler.Status `json:"backend"`
}

// Health handles GET /health. It reports the process as alive regardless
// of the backend.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
	})
}

// Readiness handles GET /health/ready. It returns 503 until the last
// backend probe succeeded.
func (h *HealthHandler) Readiness(w http.ResponseWriter, _ *http.Request) {
	st := h.probe.Status()
	if !st.Healthy {
		writeJSON(w, http.StatusServiceUnavailable, ReadinessStatus{Status: "not ready", Backend: st})
		return
	}
	writeJSON(w, http.StatusOK, ReadinessStatus{Status: "ready", Backend: st})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
