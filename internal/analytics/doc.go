// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package analytics folds the purchase and event logs into dashboard rollups.

Two reports are produced, both pure functions of log snapshots:

  - Aggregate: per advertising id and per product revenue rollups, tracker
    on/off revenue split and a revenue projection.
  - Realtime: per advertising id and per product engagement counters.

# Tracker State

The tracker flag on an AdidRollup is last-write-wins: it reflects only the
most recently processed purchase for that id, while revenue and counts are
cumulative. Tracker on/off totals use this last-seen flag to place each id
in exactly one set.

# Revenue Projection

The projection assumes every id would behave like the average tracker-on id:

	avg        = revenueTrackerOn / |onSet|          (0 when onSet is empty)
	projected  = avg * |onSet ∪ offSet|
	additional = projected - (revenueTrackerOn + revenueTrackerOff)
	percent    = additional / currentTotal * 100     (0 when currentTotal is 0)

It is a linear extrapolation for a demo dashboard, not a causal estimate.

# Complexity

Aggregate is O(purchases × items); Realtime is O(events + purchase items).
*/
package analytics
