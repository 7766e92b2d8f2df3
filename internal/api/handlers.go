// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package api

import (
	"context"
	"time"

	"github.com/tomtom215/shopsignal/internal/shop"
	"github.com/tomtom215/shopsignal/internal/similarity"
	"github.com/tomtom215/shopsignal/internal/store"
)

// SimilarityComputer produces similarity graphs. Satisfied by
// *similarity.Engine and *similarity.Breaker.
type SimilarityComputer interface {
	Compute(ctx context.Context, threshold float64) (*similarity.Result, bool, error)
	DefaultThreshold() float64
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: health endpoint
//   - handlers_shop.go: coupon, purchase and event ingestion endpoints
//   - handlers_analytics.go: aggregate, realtime and similarity endpoints
type Handler struct {
	shop       *shop.Service
	stores     *store.Stores
	similarity SimilarityComputer
	startTime  time.Time

	// similarityTimeout bounds one similarity computation.
	similarityTimeout time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSimilarityTimeout bounds how long a similarity request waits for its
// graph. Keep it below the server's write timeout so the 503 can be sent.
func WithSimilarityTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.similarityTimeout = d
		}
	}
}

// NewHandler creates a new API handler.
func NewHandler(shopSvc *shop.Service, stores *store.Stores, sim SimilarityComputer, opts ...HandlerOption) *Handler {
	h := &Handler{
		shop:              shopSvc,
		stores:            stores,
		similarity:        sim,
		startTime:         time.Now(),
		similarityTimeout: 25 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
