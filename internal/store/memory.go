// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package store

import (
	"github.com/tomtom215/shopsignal/internal/metrics"
	"github.com/tomtom215/shopsignal/internal/models"
)

// Stores groups the three logs the service runs on.
type Stores struct {
	Events    EventStore
	Purchases PurchaseStore
	Coupons   CouponStore
}

// NewMemoryStores creates in-memory logs that report their sizes to the
// store_entries gauge.
func NewMemoryStores() *Stores {
	return &Stores{
		Events:    NewLog[models.EngagementEvent](sizeReporter("events")),
		Purchases: NewLog[models.PurchaseRecord](sizeReporter("purchases")),
		Coupons:   NewLog[models.Coupon](sizeReporter("coupons")),
	}
}

func sizeReporter(name string) func(int) {
	return func(size int) {
		metrics.UpdateStoreSize(name, size)
	}
}
