// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package config

import (
	"fmt"
	"math"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSimilarity(); err != nil {
		return err
	}
	return c.validateShop()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if !validLogLevels[level] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	s := c.Similarity
	if math.IsNaN(s.Threshold) || s.Threshold < 0 || s.Threshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in [0, 1], got %v", s.Threshold)
	}
	if s.Iterations < 1 || s.Iterations > 1000 {
		return fmt.Errorf("SIMILARITY_ITERATIONS must be between 1 and 1000, got %d", s.Iterations)
	}
	if s.SpringK <= 0 {
		return fmt.Errorf("SIMILARITY_SPRING_K must be positive, got %v", s.SpringK)
	}
	if s.CacheSize < 1 {
		return fmt.Errorf("SIMILARITY_CACHE_SIZE must be positive, got %d", s.CacheSize)
	}
	if s.CacheTTL <= 0 {
		return fmt.Errorf("SIMILARITY_CACHE_TTL must be positive, got %v", s.CacheTTL)
	}
	if s.WarmInterval < 0 {
		return fmt.Errorf("SIMILARITY_WARM_INTERVAL must not be negative, got %v", s.WarmInterval)
	}
	if s.BreakerFailures < 1 {
		return fmt.Errorf("SIMILARITY_BREAKER_FAILURES must be positive, got %d", s.BreakerFailures)
	}
	if s.BreakerTimeout <= 0 {
		return fmt.Errorf("SIMILARITY_BREAKER_TIMEOUT must be positive, got %v", s.BreakerTimeout)
	}
	return nil
}

func (c *Config) validateShop() error {
	d := c.Shop.CouponDiscount
	if math.IsNaN(d) || d <= 0 || d >= 1 {
		return fmt.Errorf("COUPON_DISCOUNT must be in (0, 1), got %v", d)
	}
	return nil
}
