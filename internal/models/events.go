// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package models

import (
	"time"
)

// EventType enumerates the engagement events emitted by the client SDK.
type EventType string

const (
	EventViewStart EventType = "view_start"
	EventView      EventType = "view"
	EventViewEnd   EventType = "view_end"
	EventClick     EventType = "click"
)

// EventTypes lists every accepted event type in wire order.
var EventTypes = []EventType{EventViewStart, EventView, EventViewEnd, EventClick}

// Valid reports whether t is one of the enumerated event types.
func (t EventType) Valid() bool {
	switch t {
	case EventViewStart, EventView, EventViewEnd, EventClick:
		return true
	default:
		return false
	}
}

// UnknownProductID substitutes for a missing product id when building keys.
const UnknownProductID = "unknown"

// ProductKey is the composite identity of a product. Two keys with the same
// id but a different name are distinct products.
type ProductKey struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewProductKey builds a key, substituting UnknownProductID for an empty id.
func NewProductKey(id, name string) ProductKey {
	if id == "" {
		id = UnknownProductID
	}
	return ProductKey{ID: id, Name: name}
}

// String renders the key as "<id> - <name>".
func (k ProductKey) String() string {
	return k.ID + " - " + k.Name
}

// EngagementEvent is one ingested user action.
//
// Timestamp is client supplied (epoch milliseconds) and is never used for
// ordering; ingestion order is authoritative. ViewDuration is only
// meaningful on view and view_end events and is nil when absent.
type EngagementEvent struct {
	AdvertisingID string    `json:"adid"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	Type          EventType `json:"eventType"`
	Timestamp     int64     `json:"timestamp"`
	ViewDuration  *int64    `json:"viewDuration"`
	ReceivedAt    time.Time `json:"receivedAt"`
}

// Key returns the product identity of the event.
func (e *EngagementEvent) Key() ProductKey {
	return NewProductKey(e.ProductID, e.ProductName)
}

// DurationMS returns the view duration in milliseconds, treating a missing
// or negative value as zero.
func (e *EngagementEvent) DurationMS() int64 {
	if e.ViewDuration == nil || *e.ViewDuration < 0 {
		return 0
	}
	return *e.ViewDuration
}

// HasDuration reports whether the event carries a view duration.
func (e *EngagementEvent) HasDuration() bool {
	return e.ViewDuration != nil
}
