// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package config loads and validates Shopsignal configuration.

Configuration is layered with koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, else config.yaml, config.yml or
    /etc/shopsignal/config.yaml
 3. Environment variables

# Environment Variables

HTTP Server:
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_PORT: listen port (default: 8080)
  - HTTP_TIMEOUT: read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 10s)

Security:
  - CORS_ORIGINS: comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: requests per window per client IP (default: 100)
  - RATE_LIMIT_WINDOW: window length (default: 1m)
  - DISABLE_RATE_LIMIT: turn rate limiting off (default: false)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)

Similarity:
  - SIMILARITY_THRESHOLD: default edge threshold in [0,1] (default: 0.1)
  - SIMILARITY_SEED: layout seed (default: 42)
  - SIMILARITY_ITERATIONS: layout iterations (default: 50)
  - SIMILARITY_SPRING_K: layout optimal distance (default: 2)
  - SIMILARITY_CACHE_SIZE: memoized graphs (default: 32)
  - SIMILARITY_CACHE_TTL: memoized graph lifetime (default: 10m)
  - SIMILARITY_WARM_INTERVAL: background recompute interval, 0 disables (default: 30s)
  - SIMILARITY_BREAKER_FAILURES: consecutive timeouts before rejecting requests (default: 3)
  - SIMILARITY_BREAKER_TIMEOUT: how long requests are rejected once tripped (default: 30s)

Shop:
  - COUPON_DISCOUNT: fractional coupon discount (default: 0.2)
  - SYNTHETIC_PURCHASES: mirror purchases into demo records (default: true)

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	addr := cfg.Server.Addr()
*/
package config
