// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package similarity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/shopsignal/internal/metrics"
)

// ErrOverloaded is returned while the breaker rejects computations after
// repeated timeouts.
var ErrOverloaded = errors.New("similarity computation temporarily rejected")

// Computer produces similarity graphs. Satisfied by *Engine and *Breaker.
type Computer interface {
	Compute(ctx context.Context, threshold float64) (*Result, bool, error)
	DefaultThreshold() float64
}

// BreakerConfig configures the compute circuit breaker.
type BreakerConfig struct {
	// FailureThreshold consecutive failures open the circuit. Default: 3
	FailureThreshold uint32

	// OpenTimeout is how long the circuit stays open before one trial
	// computation is let through. Default: 30s
	OpenTimeout time.Duration
}

const breakerName = "similarity-compute"

// computeOutcome carries both Compute results through gobreaker's single
// typed value.
type computeOutcome struct {
	result *Result
	cached bool
}

// Breaker sheds similarity requests after computations keep failing, which
// in practice means they keep running past the request deadline. A client
// hanging up (context.Canceled) does not count against the computation.
type Breaker struct {
	next   Computer
	cb     *gobreaker.CircuitBreaker[computeOutcome]
	logger zerolog.Logger
}

// NewBreaker wraps next with a circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreaker(next Computer, cfg BreakerConfig, logger zerolog.Logger) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	b := &Breaker{
		next:   next,
		logger: logger.With().Str("component", "similarity-breaker").Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[computeOutcome](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String(), stateValue(to))
		},
	})

	return b
}

// Compute runs the wrapped computation unless the circuit is open.
func (b *Breaker) Compute(ctx context.Context, threshold float64) (*Result, bool, error) {
	out, err := b.cb.Execute(func() (computeOutcome, error) {
		res, cached, err := b.next.Compute(ctx, threshold)
		return computeOutcome{result: res, cached: cached}, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCircuitBreakerRequest(breakerName, "rejected")
			return nil, false, fmt.Errorf("%w: %w", ErrOverloaded, err)
		}
		metrics.RecordCircuitBreakerRequest(breakerName, "failure")
		return nil, false, err
	}

	metrics.RecordCircuitBreakerRequest(breakerName, "success")
	return out.result, out.cached, nil
}

// DefaultThreshold delegates to the wrapped computer.
func (b *Breaker) DefaultThreshold() float64 {
	return b.next.DefaultThreshold()
}

// State reports the breaker state: closed, half-open or open.
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// Stats adds the breaker state to the wrapped computer's stats.
func (b *Breaker) Stats() Stats {
	var st Stats
	if r, ok := b.next.(interface{ Stats() Stats }); ok {
		st = r.Stats()
	}
	st.Breaker = b.State()
	return st
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
