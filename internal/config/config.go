// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Shop       ShopConfig       `koanf:"shop"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// HandlerBudget is how long a handler may work before it has to start
// writing, so that an error response still fits inside the write timeout.
// It leaves a tenth of Timeout, at least 500ms, for the response.
func (s ServerConfig) HandlerBudget() time.Duration {
	margin := s.Timeout / 10
	if margin < 500*time.Millisecond {
		margin = 500 * time.Millisecond
	}
	if budget := s.Timeout - margin; budget > 0 {
		return budget
	}
	return s.Timeout / 2
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SimilarityConfig tunes the product similarity engine.
type SimilarityConfig struct {
	Threshold    float64       `koanf:"threshold"`
	Seed         int64         `koanf:"seed"`
	Iterations   int           `koanf:"iterations"`
	SpringK      float64       `koanf:"spring_k"`
	CacheSize    int           `koanf:"cache_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	WarmInterval time.Duration `koanf:"warm_interval"`

	// BreakerFailures consecutive timed-out computations open the breaker
	// for BreakerTimeout.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// ShopConfig holds coupon and purchase settings.
type ShopConfig struct {
	CouponDiscount     float64 `koanf:"coupon_discount"`
	SyntheticPurchases bool    `koanf:"synthetic_purchases"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
