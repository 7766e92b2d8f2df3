// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package similarity

import (
	"math"
	"math/rand"
)

// Layout defaults.
const (
	DefaultSpringK    = 2.0
	DefaultIterations = 50
	DefaultSeed       = 42
	DefaultScale      = 1.0

	// minDistance bounds pairwise distance and displacement so coincident
	// nodes never divide by zero.
	minDistance = 0.01

	// convergenceTolerance stops the simulation early once the mean
	// per-node movement falls below it.
	convergenceTolerance = 1e-4
)

// Point is a 2-D layout coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutOptions tunes SpringLayout. Zero fields take the defaults.
type LayoutOptions struct {
	// K is the optimal distance between nodes.
	K float64

	// Iterations is the maximum number of simulation steps.
	Iterations int

	// Seed drives initial placement. Equal seeds give equal layouts.
	Seed int64

	// Scale is the largest absolute coordinate after rescaling.
	Scale float64
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.K <= 0 {
		o.K = DefaultSpringK
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	return o
}

type neighbor struct {
	index  int
	weight float64
}

// SpringLayout positions the nodes of g with the Fruchterman-Reingold
// force-directed algorithm.
//
// Every pair of nodes repels with force K^2/d and every edge attracts its
// endpoints with force similarity*d^2/K. Nodes start uniformly in the unit
// square in node order, drawn from a source seeded with opts.Seed, and move
// under a linearly cooling temperature. The final layout is centered on the
// origin and rescaled so the largest absolute coordinate equals opts.Scale.
//
// The result maps Node.ID to its position. An empty graph yields an empty
// map and a single node sits at the origin. Graphs without edges are laid
// out by repulsion alone.
func SpringLayout(g *Graph, opts LayoutOptions) map[int]Point {
	opts = opts.withDefaults()

	n := len(g.Nodes)
	positions := make(map[int]Point, n)
	switch n {
	case 0:
		return positions
	case 1:
		positions[g.Nodes[0].ID] = Point{}
		return positions
	}

	index := make(map[int]int, n)
	for i, node := range g.Nodes {
		index[node.ID] = i
	}

	adj := make([][]neighbor, n)
	for _, e := range g.Edges {
		a, okA := index[e.Source]
		b, okB := index[e.Target]
		if !okA || !okB || a == b {
			continue
		}
		adj[a] = append(adj[a], neighbor{index: b, weight: e.Similarity})
		adj[b] = append(adj[b], neighbor{index: a, weight: e.Similarity})
	}

	rng := rand.New(rand.NewSource(opts.Seed)) //nolint:gosec // layout placement, not security sensitive
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = rng.Float64()
		ys[i] = rng.Float64()
	}

	temperature := 0.1 * math.Max(spread(xs), spread(ys))
	cooling := temperature / float64(opts.Iterations+1)
	k := opts.K
	k2 := k * k

	dispX := make([]float64, n)
	dispY := make([]float64, n)

	for iter := 0; iter < opts.Iterations; iter++ {
		for i := 0; i < n; i++ {
			var fx, fy float64

			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				dx := xs[i] - xs[j]
				dy := ys[i] - ys[j]
				d := math.Max(math.Hypot(dx, dy), minDistance)
				f := k2 / (d * d)
				fx += dx * f
				fy += dy * f
			}

			for _, nb := range adj[i] {
				dx := xs[i] - xs[nb.index]
				dy := ys[i] - ys[nb.index]
				d := math.Max(math.Hypot(dx, dy), minDistance)
				f := nb.weight * d / k
				fx -= dx * f
				fy -= dy * f
			}

			dispX[i] = fx
			dispY[i] = fy
		}

		var moved float64
		for i := 0; i < n; i++ {
			length := math.Hypot(dispX[i], dispY[i])
			if length < minDistance {
				length = 0.1
			}
			sx := dispX[i] * temperature / length
			sy := dispY[i] * temperature / length
			xs[i] += sx
			ys[i] += sy
			moved += sx*sx + sy*sy
		}

		temperature -= cooling
		if math.Sqrt(moved)/float64(n) < convergenceTolerance {
			break
		}
	}

	rescale(xs, ys, opts.Scale)

	for i, node := range g.Nodes {
		positions[node.ID] = Point{X: xs[i], Y: ys[i]}
	}
	return positions
}

// spread returns max(v) - min(v).
func spread(v []float64) float64 {
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return hi - lo
}

// rescale centers the coordinates on the origin and scales them so the
// largest absolute coordinate equals scale.
func rescale(xs, ys []float64, scale float64) {
	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var limit float64
	for i := range xs {
		xs[i] -= meanX
		ys[i] -= meanY
		limit = math.Max(limit, math.Max(math.Abs(xs[i]), math.Abs(ys[i])))
	}
	if limit == 0 {
		return
	}

	factor := scale / limit
	for i := range xs {
		xs[i] *= factor
		ys[i] *= factor
	}
}
