// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package main is the entry point for the Shopsignal server.

Shopsignal records ad-attributed purchases and product engagement events in
memory, serves aggregated ad analytics, and builds a product-similarity graph
from user engagement.

# Application Architecture

	RootSupervisor ("shopsignal")
	├── WorkerSupervisor ("worker-layer")
	│   └── Similarity warm service (optional, SIMILARITY_WARM_INTERVAL)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Stores: append-only in-memory logs for events, purchases, and coupons
 4. Shop service: coupons, purchases, and event ingestion
 5. Similarity engine: engagement matrix, cosine graph, spring layout
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Configuration

Priority: Environment variables > Config file > Defaults

	HTTP_PORT=8080
	HTTP_HOST=0.0.0.0
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	CORS_ORIGINS=*
	RATE_LIMIT_REQUESTS=100
	SIMILARITY_THRESHOLD=0.1
	SIMILARITY_WARM_INTERVAL=30s # 0 disables background warming
	COUPON_DISCOUNT=0.2
	SYNTHETIC_PURCHASES=true

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. Every supervised service gets
the configured shutdown timeout to stop; services that overrun it are
logged before exit.

# Endpoints

	GET  /health
	GET  /metrics
	POST /api/v1/coupon
	GET  /api/v1/coupons
	POST /api/v1/purchase
	GET  /api/v1/purchases
	POST /api/v1/analytics-events
	GET  /api/v1/analytics
	GET  /api/v1/analytics/realtime
	GET  /api/v1/product-similarity?threshold=0.1
*/
package main
