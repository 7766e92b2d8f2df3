// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package middleware provides HTTP middleware shared by every route.

  - RequestID: honors or generates X-Request-ID and stores it in the
    request context for the logging package.
  - PrometheusMetrics: records request counts, latency and in-flight
    requests, labelled by the chi route pattern so path parameters do
    not explode label cardinality.

Both are written against http.HandlerFunc and adapted for chi by the api
package.
*/
package middleware
