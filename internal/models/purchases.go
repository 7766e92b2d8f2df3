// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package models

import (
	"time"
)

// PurchaseItem is one line of a purchase. FinalPrice is authoritative for
// revenue; Price is the pre-discount price.
type PurchaseItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Discount   float64 `json:"discount" validate:"gte=0,lte=1"`
	FinalPrice float64 `json:"finalPrice"`
}

// Discounted reports whether a coupon was applied to the item.
func (i *PurchaseItem) Discounted() bool {
	return i.Discount > 0
}

// FullPrice reports whether the item was bought without a coupon. An item
// with a negative discount is neither discounted nor full price.
func (i *PurchaseItem) FullPrice() bool {
	return i.Discount == 0
}

// Savings returns Price - FinalPrice. It is not clamped; inputs that
// violate FinalPrice <= Price yield a negative value.
func (i *PurchaseItem) Savings() float64 {
	return i.Price - i.FinalPrice
}

// Key returns the product identity of the item.
func (i *PurchaseItem) Key() ProductKey {
	return NewProductKey(i.ID, i.Name)
}

// PurchaseRecord is one completed transaction.
type PurchaseRecord struct {
	PurchaseID     string         `json:"purchaseId"`
	AdvertisingID  string         `json:"adid"`
	Items          []PurchaseItem `json:"items"`
	Total          float64        `json:"total"`
	TrackerEnabled bool           `json:"trackerEnabled"`
	Timestamp      time.Time      `json:"timestamp"`
	Synthetic      bool           `json:"synthetic,omitempty"`
}

// Coupon is an issued discount coupon.
type Coupon struct {
	CouponID      string    `json:"couponId"`
	AdvertisingID string    `json:"adid"`
	ProductName   string    `json:"productName"`
	Discount      float64   `json:"discount"`
	Timestamp     time.Time `json:"timestamp"`
}
