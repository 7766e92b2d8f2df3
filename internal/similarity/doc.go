// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package similarity turns the engagement event log into a positioned product
similarity graph.

The pipeline has four stages, each usable on its own:

  - BuildMatrix folds events into a dense products x advertising-ids matrix.
    Rows and columns are sorted lexicographically, so two builds from the
    same log agree on coordinates. A click adds 10.0 to its cell and a view
    carrying a duration adds 0.1 per second viewed. view_start and view_end
    contribute nothing here even when view_end carries a duration; the
    dashboard rollups in package analytics account for those.
  - ComputeGraph compares every pair of product rows with cosine similarity
    and keeps an undirected edge when the similarity is strictly greater
    than the threshold.
  - SpringLayout assigns 2-D coordinates with a seeded Fruchterman-Reingold
    simulation in which edge similarity scales attraction.
  - Engine snapshots the event store, runs the stages and memoizes results.

# Complexity

Matrix construction is O(events + products x users) time and memory. The
pairwise similarity pass is O(products^2 x users) and layout is
O(iterations x products^2). A few thousand products is the practical
ceiling before the quadratic stages dominate request latency.

# Insufficient Data

Fewer than two distinct products in the log yields ErrInsufficientData from
BuildMatrix and a Result with Insufficient set from Engine.Compute. Callers
render the sentinel rather than treating it as a failure.

# Load Shedding

Breaker wraps any Computer with a circuit breaker. After FailureThreshold
consecutive failed computations, usually requests that ran past their
deadline, it rejects calls with ErrOverloaded for OpenTimeout and then lets
a single trial through.
*/
package similarity
