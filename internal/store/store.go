// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

// Package store holds the append-only in-memory logs that back ingestion.
//
// The logs are shared between the HTTP ingestion handlers (writers) and the
// analytics pipeline (readers). Readers never iterate the live slice; they
// take a Snapshot at the start of each computation so a single pass sees a
// consistent point-in-time view. One Append call is atomic with respect to
// Snapshot, so a batch is never split across two snapshots.
//
// Data is retained for the lifetime of the process and lost on restart.
package store

import (
	"sync"

	"github.com/tomtom215/shopsignal/internal/models"
)

// EventStore is the engagement event log.
type EventStore interface {
	// Append adds events in order as one atomic batch.
	Append(events ...models.EngagementEvent)
	// Snapshot returns a copy of every event in insertion order.
	Snapshot() []models.EngagementEvent
	// Len returns the number of stored events.
	Len() int
}

// PurchaseStore is the purchase log.
type PurchaseStore interface {
	Append(records ...models.PurchaseRecord)
	Snapshot() []models.PurchaseRecord
	Len() int
}

// CouponStore is the issued-coupon log.
type CouponStore interface {
	Append(coupons ...models.Coupon)
	Snapshot() []models.Coupon
	Len() int
}

// Log is a mutex-guarded append-only slice. The zero value is not usable;
// create one with NewLog.
type Log[T any] struct {
	mu      sync.RWMutex
	entries []T
	onGrow  func(size int)
}

// NewLog creates an empty log. onGrow, if non-nil, is called with the new
// size after every non-empty append (outside the lock).
func NewLog[T any](onGrow func(size int)) *Log[T] {
	return &Log[T]{
		entries: make([]T, 0, 256),
		onGrow:  onGrow,
	}
}

// Append adds entries as one batch.
func (l *Log[T]) Append(entries ...T) {
	if len(entries) == 0 {
		return
	}

	l.mu.Lock()
	l.entries = append(l.entries, entries...)
	size := len(l.entries)
	l.mu.Unlock()

	if l.onGrow != nil {
		l.onGrow(size)
	}
}

// Snapshot returns a copy of the log. The returned slice is never nil.
func (l *Log[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Compile-time interface checks
var (
	_ EventStore    = (*Log[models.EngagementEvent])(nil)
	_ PurchaseStore = (*Log[models.PurchaseRecord])(nil)
	_ CouponStore   = (*Log[models.Coupon])(nil)
)
