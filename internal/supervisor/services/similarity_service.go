// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SimilarityWarmer recomputes the default similarity graph.
// Satisfied by *similarity.Engine.
type SimilarityWarmer interface {
	Warm(ctx context.Context) error
}

// SimilarityWarmConfig controls the warm-up schedule.
type SimilarityWarmConfig struct {
	// WarmOnStartup computes once before the first tick.
	WarmOnStartup bool

	// Interval between recomputations. Zero or negative disables the ticker;
	// the service then only performs the startup warm.
	Interval time.Duration

	// Timeout bounds a single recomputation. Default: 1m
	Timeout time.Duration
}

// SimilarityWarmService keeps the similarity cache warm so the first
// dashboard load after new events does not pay for the layout.
type SimilarityWarmService struct {
	warmer SimilarityWarmer
	config SimilarityWarmConfig
	logger zerolog.Logger
	name   string
}

// NewSimilarityWarmService creates the warm-up service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSimilarityWarmService(warmer SimilarityWarmer, cfg SimilarityWarmConfig, logger zerolog.Logger) *SimilarityWarmService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &SimilarityWarmService{
		warmer: warmer,
		config: cfg,
		logger: logger.With().Str("service", "similarity-warm").Logger(),
		name:   "similarity-warm-service",
	}
}

// Serve implements suture.Service. Warm failures are logged and retried on
// the next tick; they never restart the service.
func (s *SimilarityWarmService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_startup", s.config.WarmOnStartup).
		Dur("interval", s.config.Interval).
		Msg("similarity warm service starting")

	if s.config.WarmOnStartup {
		s.warm(ctx)
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("similarity warm service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *SimilarityWarmService) warm(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.warmer.Warm(warmCtx); err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("similarity warm failed")
		}
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("similarity cache warmed")
}

// String returns the service name for logging.
func (s *SimilarityWarmService) String() string {
	return s.name
}
