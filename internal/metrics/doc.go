// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package metrics provides Prometheus instrumentation for the service.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Ingestion volume (events by type, purchases by tracker state, coupons)
  - In-memory log sizes
  - Similarity graph computation time, cache efficiency, and graph size

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage

Collectors are registered with the default registry at package init through
promauto. Callers use the Record* helpers rather than touching collectors:

	metrics.RecordEventsIngested("click", 3)
	metrics.RecordSimilarityCompute(12*time.Millisecond, nodes, edges)
*/
package metrics
