// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ingestion Metrics
	EventsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_events_ingested_total",
			Help: "Total number of engagement events appended to the event log",
		},
		[]string{"event_type"},
	)

	EventBatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engagement_event_batches_total",
			Help: "Total number of SDK event batches ingested",
		},
	)

	PurchasesRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_recorded_total",
			Help: "Total number of purchases appended to the purchase log",
		},
		[]string{"tracker", "synthetic"},
	)

	PurchaseRevenueTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_revenue_total",
			Help: "Total recorded revenue (sum of item final prices) in USD",
		},
		[]string{"tracker"},
	)

	CouponsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coupons_issued_total",
			Help: "Total number of coupons issued",
		},
	)

	StoreEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_entries",
			Help: "Current number of entries in each in-memory log",
		},
		[]string{"store"},
	)

	// Similarity Metrics
	SimilarityComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similarity_compute_duration_seconds",
			Help:    "Time to build the engagement matrix, similarity graph and layout",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	SimilarityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "similarity_cache_hits_total",
			Help: "Total number of similarity results served from cache",
		},
	)

	SimilarityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "similarity_cache_misses_total",
			Help: "Total number of similarity results computed from scratch",
		},
	)

	SimilarityGraphNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "similarity_graph_nodes",
			Help: "Number of product nodes in the last computed similarity graph",
		},
	)

	SimilarityGraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "similarity_graph_edges",
			Help: "Number of edges in the last computed similarity graph",
		},
	)

	SimilarityInsufficientData = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "similarity_insufficient_data_total",
			Help: "Total number of similarity queries answered with the insufficient-data result",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests passed through a circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordEventsIngested records count events of the given type.
func RecordEventsIngested(eventType string, count int) {
	if count <= 0 {
		return
	}
	EventsIngestedTotal.WithLabelValues(eventType).Add(float64(count))
}

// RecordEventBatch records one ingested SDK batch.
func RecordEventBatch() {
	EventBatchesTotal.Inc()
}

// RecordPurchase records one purchase and its revenue.
func RecordPurchase(trackerEnabled, synthetic bool, revenue float64) {
	tracker := trackerLabel(trackerEnabled)
	PurchasesRecordedTotal.WithLabelValues(tracker, strconv.FormatBool(synthetic)).Inc()
	if revenue > 0 {
		PurchaseRevenueTotal.WithLabelValues(tracker).Add(revenue)
	}
}

// RecordCouponIssued records one issued coupon.
func RecordCouponIssued() {
	CouponsIssuedTotal.Inc()
}

// UpdateStoreSize sets the entry gauge for a log.
func UpdateStoreSize(store string, size int) {
	StoreEntries.WithLabelValues(store).Set(float64(size))
}

// RecordSimilarityCompute records a full similarity computation.
func RecordSimilarityCompute(duration time.Duration, nodes, edges int) {
	SimilarityComputeDuration.Observe(duration.Seconds())
	SimilarityGraphNodes.Set(float64(nodes))
	SimilarityGraphEdges.Set(float64(edges))
}

// RecordSimilarityCache records a similarity cache lookup.
func RecordSimilarityCache(hit bool) {
	if hit {
		SimilarityCacheHits.Inc()
	} else {
		SimilarityCacheMisses.Inc()
	}
}

// RecordSimilarityInsufficientData records a query with fewer than two products.
func RecordSimilarityInsufficientData() {
	SimilarityInsufficientData.Inc()
}

// RecordCircuitBreakerRequest records one request outcome: success, failure
// or rejected.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordCircuitBreakerTransition records a state change and updates the
// state gauge.
func RecordCircuitBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

func trackerLabel(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
