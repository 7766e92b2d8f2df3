// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package similarity

import (
	"math"

	"github.com/tomtom215/shopsignal/internal/models"
)

// DefaultThreshold is used when the caller supplies no usable threshold.
const DefaultThreshold = 0.1

// Node is one product in the similarity graph. ID is its matrix row.
type Node struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	Product         models.ProductKey `json:"product"`
	TotalEngagement float64           `json:"engagement"`
}

// Edge connects two products whose similarity exceeds the threshold.
// Source is always less than Target.
type Edge struct {
	Source     int     `json:"source"`
	Target     int     `json:"target"`
	Similarity float64 `json:"similarity"`
}

// Graph is an undirected product similarity graph without self-edges.
type Graph struct {
	Nodes     []Node  `json:"nodes"`
	Edges     []Edge  `json:"edges"`
	Threshold float64 `json:"threshold"`
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// has zero norm. The result is clamped to [-1, 1]. Vectors must have equal
// length.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	default:
		return sim
	}
}

// ClampThreshold maps t into [0, 1]; NaN becomes DefaultThreshold.
func ClampThreshold(t float64) float64 {
	if math.IsNaN(t) {
		return DefaultThreshold
	}
	return math.Max(0, math.Min(1, t))
}

// ComputeGraph builds the similarity graph for m. The threshold is clamped
// before use and an edge requires similarity strictly above it.
func ComputeGraph(m *Matrix, threshold float64) *Graph {
	threshold = ClampThreshold(threshold)

	n := m.Rows()
	g := &Graph{
		Nodes:     make([]Node, n),
		Edges:     make([]Edge, 0),
		Threshold: threshold,
	}

	for i := 0; i < n; i++ {
		g.Nodes[i] = Node{
			ID:              i,
			Name:            m.Products[i].String(),
			Product:         m.Products[i],
			TotalEngagement: m.RowSum(i),
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := Cosine(m.Values[i], m.Values[j])
			if sim > threshold {
				g.Edges = append(g.Edges, Edge{Source: i, Target: j, Similarity: sim})
			}
		}
	}

	return g
}
