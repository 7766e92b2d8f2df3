// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package models

// CouponRequest asks for a coupon for a product the user engaged with.
type CouponRequest struct {
	AdvertisingID string `json:"adid" validate:"required,max=256"`
	ProductName   string `json:"productName" validate:"required,max=512"`
}

// CouponResponse is returned by the coupon endpoint.
type CouponResponse struct {
	CouponID string  `json:"couponId"`
	Discount float64 `json:"discount"`
}

// PurchaseRequest records a checkout. TrackerEnabled defaults to true when
// omitted, matching older clients that never sent the flag.
type PurchaseRequest struct {
	AdvertisingID  string         `json:"adid" validate:"required,max=256"`
	Items          []PurchaseItem `json:"items" validate:"dive"`
	Total          float64        `json:"total"`
	TrackerEnabled *bool          `json:"trackerEnabled"`
}

// Tracker resolves the tracker flag, defaulting to true.
func (r *PurchaseRequest) Tracker() bool {
	if r.TrackerEnabled == nil {
		return true
	}
	return *r.TrackerEnabled
}

// PurchaseResponse is returned by the purchase endpoint.
type PurchaseResponse struct {
	Success    bool   `json:"success"`
	PurchaseID string `json:"purchaseId"`
	Timestamp  string `json:"timestamp"`
}

// AnalyticsEvent is one event inside an SDK batch.
type AnalyticsEvent struct {
	EventType    string `json:"eventType" validate:"required,eventtype"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName" validate:"required"`
	Timestamp    int64  `json:"timestamp"`
	ViewDuration *int64 `json:"viewDuration" validate:"omitempty,gte=0"`
}

// AnalyticsBatch is the payload posted by the SDK.
type AnalyticsBatch struct {
	AdvertisingID string           `json:"adid" validate:"required,max=256"`
	Events        []AnalyticsEvent `json:"events" validate:"dive"`
}

// AnalyticsBatchResponse acknowledges an ingested batch.
type AnalyticsBatchResponse struct {
	Success        bool `json:"success"`
	EventsReceived int  `json:"eventsReceived"`
}
