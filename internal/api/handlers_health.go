// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shopsignal/internal/similarity"
)

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status        string            `json:"status"`
	UptimeSeconds float64           `json:"uptimeSeconds"`
	Events        int               `json:"events"`
	Purchases     int               `json:"purchases"`
	Coupons       int               `json:"coupons"`
	Similarity    *similarity.Stats `json:"similarity,omitempty"`
}

// similarityReporter is implemented by *similarity.Engine and
// *similarity.Breaker.
type similarityReporter interface {
	Stats() similarity.Stats
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := HealthStatus{
		Status:        "healthy",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Events:        h.stores.Events.Len(),
		Purchases:     h.stores.Purchases.Len(),
		Coupons:       h.stores.Coupons.Len(),
	}
	if r, ok := h.similarity.(similarityReporter); ok {
		stats := r.Stats()
		status.Similarity = &stats
	}
	respondSuccess(w, http.StatusOK, status, start, false)
}
