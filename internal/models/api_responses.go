// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package models

import "time"

// APIResponse is the standard envelope for every JSON endpoint.
//
// Example success:
//
//	{"status":"success","data":{...},"metadata":{"timestamp":"2026-01-01T12:00:00Z"}}
//
// Example error:
//
//	{"status":"error","data":null,"metadata":{...},"error":{"code":"VALIDATION_ERROR","message":"..."}}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable error code plus a human message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CouponList is the debug listing of issued coupons.
type CouponList struct {
	Total   int      `json:"total"`
	Coupons []Coupon `json:"coupons"`
}

// PurchaseList is the debug listing of recorded purchases.
type PurchaseList struct {
	Total     int              `json:"total"`
	Purchases []PurchaseRecord `json:"purchases"`
}
