// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package api exposes Shopsignal over HTTP using the chi router.

Every response is wrapped in models.APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "cached": true}
	}

Errors carry a machine-readable code:

  - BAD_REQUEST: body is not valid JSON
  - VALIDATION_ERROR: body failed validation, including unknown event types
  - INVALID_PARAMETER: a query parameter could not be parsed
  - TOO_MANY_REQUESTS: per-IP rate limit exceeded
  - INTERNAL_ERROR: anything else

# Routes

	GET  /health                        liveness and store sizes
	GET  /metrics                       Prometheus exposition
	POST /api/v1/coupon                 issue a coupon
	GET  /api/v1/coupons                list coupons
	POST /api/v1/purchase               record a purchase
	GET  /api/v1/purchases              list purchases
	POST /api/v1/analytics-events       ingest an SDK event batch
	GET  /api/v1/analytics              revenue and tracker report
	GET  /api/v1/analytics/realtime     engagement dashboard rollups
	GET  /api/v1/product-similarity     similarity graph (?threshold=0.1)

Write endpoints are rate limited per client IP; read endpoints share a
separate, more permissive limit.
*/
package api
