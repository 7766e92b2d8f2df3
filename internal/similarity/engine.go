// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package similarity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/shopsignal/internal/cache"
	"github.com/tomtom215/shopsignal/internal/metrics"
	"github.com/tomtom215/shopsignal/internal/models"
	"github.com/tomtom215/shopsignal/internal/store"
)

// EngineConfig holds similarity engine settings.
type EngineConfig struct {
	// DefaultThreshold is used by Warm.
	DefaultThreshold float64

	// Layout tunes SpringLayout.
	Layout LayoutOptions

	// CacheSize is the number of memoized results. Default: 32
	CacheSize int

	// CacheTTL bounds how long a memoized result is kept. Default: 10m
	CacheTTL time.Duration

	// ComputeTimeout bounds one shared computation, independent of the
	// callers waiting on it. Default: 1m
	ComputeTimeout time.Duration
}

// DefaultEngineConfig returns the settings the dashboard expects.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultThreshold: DefaultThreshold,
		Layout: LayoutOptions{
			K:          DefaultSpringK,
			Iterations: DefaultIterations,
			Seed:       DefaultSeed,
			Scale:      DefaultScale,
		},
		CacheSize:      32,
		CacheTTL:       10 * time.Minute,
		ComputeTimeout: time.Minute,
	}
}

// Result is a positioned similarity graph, or the insufficient-data
// sentinel when Insufficient is set.
type Result struct {
	Insufficient  bool          `json:"insufficientData"`
	Message       string        `json:"message,omitempty"`
	Threshold     float64       `json:"threshold"`
	TotalProducts int           `json:"totalProducts"`
	TotalUsers    int           `json:"totalUsers"`
	Nodes         []Node        `json:"nodes"`
	Edges         []Edge        `json:"edges"`
	Positions     map[int]Point `json:"positions"`
}

const insufficientMessage = "Need at least 2 products with user interactions to calculate similarity."

// Engine computes similarity graphs from an event store. It is safe for
// concurrent use. Results are memoized by (log length, threshold, seed);
// the log is append-only, so its length identifies its contents.
type Engine struct {
	events store.EventStore
	config EngineConfig
	logger zerolog.Logger

	cache *cache.LRU[*Result]
	group singleflight.Group

	// beforeCompute runs inside the shared computation; tests use it to
	// hold a computation in flight.
	beforeCompute func()
}

// NewEngine creates an engine reading from events.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(events store.EventStore, cfg EngineConfig, logger zerolog.Logger) *Engine {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 32
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.ComputeTimeout <= 0 {
		cfg.ComputeTimeout = time.Minute
	}
	cfg.DefaultThreshold = ClampThreshold(cfg.DefaultThreshold)
	cfg.Layout = cfg.Layout.withDefaults()

	return &Engine{
		events: events,
		config: cfg,
		logger: logger.With().Str("component", "similarity").Logger(),
		cache:  cache.NewLRU[*Result](cfg.CacheSize, cfg.CacheTTL),
	}
}

// DefaultThreshold returns the threshold used when a caller supplies none.
func (e *Engine) DefaultThreshold() float64 {
	return e.config.DefaultThreshold
}

// Compute returns the similarity graph for the current event log. The
// boolean reports whether the result came from the cache. Returned results
// are shared and must not be modified.
//
// Concurrent callers asking for the same graph share one computation. The
// computation runs under the engine's ComputeTimeout, not a caller's
// context: a caller whose ctx ends gets ctx.Err() while the others keep
// waiting, and the finished result still lands in the cache.
func (e *Engine) Compute(ctx context.Context, threshold float64) (*Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	threshold = ClampThreshold(threshold)
	snapshot := e.events.Snapshot()
	key := cacheKey(len(snapshot), threshold, e.config.Layout.Seed)

	if res, ok := e.cache.Get(key); ok {
		metrics.RecordSimilarityCache(true)
		return res, true, nil
	}
	metrics.RecordSimilarityCache(false)

	ch := e.group.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.config.ComputeTimeout)
		defer cancel()

		if e.beforeCompute != nil {
			e.beforeCompute()
		}
		res, err := e.compute(shared, snapshot, threshold)
		if err != nil {
			return nil, err
		}
		e.cache.Add(key, res)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, false, r.Err
		}
		return r.Val.(*Result), false, nil
	}
}

// Warm computes the default-threshold graph so the next dashboard load is
// served from the cache.
func (e *Engine) Warm(ctx context.Context) error {
	res, cached, err := e.Compute(ctx, e.config.DefaultThreshold)
	if err != nil {
		return fmt.Errorf("warm similarity cache: %w", err)
	}

	e.logger.Debug().
		Bool("cached", cached).
		Bool("insufficient", res.Insufficient).
		Int("nodes", len(res.Nodes)).
		Int("edges", len(res.Edges)).
		Msg("similarity cache warmed")
	return nil
}

// Stats summarizes engine state for health reporting.
type Stats struct {
	Breaker     string `json:"breaker,omitempty"`
	CacheHits   int64  `json:"cacheHits"`
	CacheMisses int64  `json:"cacheMisses"`
	CacheSize   int    `json:"cacheSize"`
}

// Stats reports result cache usage.
func (e *Engine) Stats() Stats {
	hits, misses, size := e.cache.Stats()
	return Stats{CacheHits: hits, CacheMisses: misses, CacheSize: size}
}

func (e *Engine) compute(ctx context.Context, snapshot []models.EngagementEvent, threshold float64) (*Result, error) {
	start := time.Now()

	m, err := BuildMatrix(snapshot)
	if errors.Is(err, ErrInsufficientData) {
		metrics.RecordSimilarityInsufficientData()
		return &Result{
			Insufficient: true,
			Message:      insufficientMessage,
			Threshold:    threshold,
			Nodes:        []Node{},
			Edges:        []Edge{},
			Positions:    map[int]Point{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("build engagement matrix: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := ComputeGraph(m, threshold)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	positions := SpringLayout(g, e.config.Layout)

	elapsed := time.Since(start)
	metrics.RecordSimilarityCompute(elapsed, len(g.Nodes), len(g.Edges))

	e.logger.Debug().
		Int("events", len(snapshot)).
		Int("products", m.Rows()).
		Int("users", m.Cols()).
		Int("edges", len(g.Edges)).
		Float64("threshold", threshold).
		Dur("duration", elapsed).
		Msg("similarity graph computed")

	return &Result{
		Threshold:     threshold,
		TotalProducts: m.Rows(),
		TotalUsers:    m.Cols(),
		Nodes:         g.Nodes,
		Edges:         g.Edges,
		Positions:     positions,
	}, nil
}

func cacheKey(logLen int, threshold float64, seed int64) string {
	return strconv.Itoa(logLen) + "|" +
		strconv.FormatFloat(threshold, 'g', -1, 64) + "|" +
		strconv.FormatInt(seed, 10)
}
