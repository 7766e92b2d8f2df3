// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package cache provides a thread-safe, typed LRU cache with TTL expiration.

The similarity engine uses it to memoize computed graphs. A result is a pure
function of the event log contents and the query parameters, and the log is
append-only, so (log length, threshold, seed) identifies a result exactly;
the TTL only bounds memory held by stale versions.

# Overview

  - O(1) Get, Add and Remove through a map plus doubly-linked list
  - Least recently used entry evicted when capacity is exceeded
  - Lazy TTL expiration on access, plus CleanupExpired for sweeping
  - Hit/miss counters for metrics
*/
package cache
