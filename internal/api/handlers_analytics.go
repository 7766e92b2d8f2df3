// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/shopsignal/internal/analytics"
	"github.com/tomtom215/shopsignal/internal/similarity"
)

// Analytics handles GET /api/v1/analytics
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	report := analytics.Aggregate(h.stores.Purchases.Snapshot())
	respondSuccess(w, http.StatusOK, report, start, false)
}

// AnalyticsRealtime handles GET /api/v1/analytics/realtime
func (h *Handler) AnalyticsRealtime(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	report := analytics.Realtime(h.stores.Events.Snapshot(), h.stores.Purchases.Snapshot())
	respondSuccess(w, http.StatusOK, report, start, false)
}

// ProductSimilarity handles GET /api/v1/product-similarity?threshold=0.1
//
// Fewer than two engaged products is not an error: the response carries
// insufficientData=true with empty nodes and edges.
func (h *Handler) ProductSimilarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	threshold, ok := parseThreshold(r, h.similarity.DefaultThreshold())
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, "threshold must be a number", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.similarityTimeout)
	defer cancel()

	result, cached, err := h.similarity.Compute(ctx, threshold)
	if err != nil {
		if errors.Is(err, similarity.ErrOverloaded) {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Similarity computation is temporarily unavailable", err)
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Similarity computation did not finish", err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to compute product similarity", err)
		return
	}

	respondSuccess(w, http.StatusOK, result, start, cached)
}

// parseThreshold reads the threshold query parameter. A missing value yields
// def; range clamping is left to the similarity engine.
func parseThreshold(r *http.Request, def float64) (float64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("threshold"))
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
