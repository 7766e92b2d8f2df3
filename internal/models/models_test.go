// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package models

import (
	"testing"
)

func TestEventType_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   EventType
		want bool
	}{
		{"view_start", EventViewStart, true},
		{"view", EventView, true},
		{"view_end", EventViewEnd, true},
		{"click", EventClick, true},
		{"empty", "", false},
		{"unknown", "scroll", false},
		{"case sensitive", "CLICK", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.want {
				t.Errorf("EventType(%q).Valid() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProductKey_String(t *testing.T) {
	if got := NewProductKey("p1", "Shoes").String(); got != "p1 - Shoes" {
		t.Errorf("String() = %q, want %q", got, "p1 - Shoes")
	}
	if got := NewProductKey("", "Hat").String(); got != "unknown - Hat" {
		t.Errorf("String() = %q, want %q", got, "unknown - Hat")
	}
	if NewProductKey("p1", "Shoes") == NewProductKey("p1", "Sneakers") {
		t.Error("keys with the same id but different names must differ")
	}
}

func TestEngagementEvent_DurationMS(t *testing.T) {
	d := int64(1500)
	neg := int64(-20)

	tests := []struct {
		name     string
		duration *int64
		want     int64
		has      bool
	}{
		{"present", &d, 1500, true},
		{"missing", nil, 0, false},
		{"negative treated as zero", &neg, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EngagementEvent{Type: EventView, ViewDuration: tt.duration}
			if got := e.DurationMS(); got != tt.want {
				t.Errorf("DurationMS() = %d, want %d", got, tt.want)
			}
			if got := e.HasDuration(); got != tt.has {
				t.Errorf("HasDuration() = %v, want %v", got, tt.has)
			}
		})
	}
}

func TestPurchaseItem(t *testing.T) {
	item := PurchaseItem{ID: "p1", Name: "Shoes", Price: 10, Discount: 0.2, FinalPrice: 8}
	if !item.Discounted() {
		t.Error("expected item with discount 0.2 to be discounted")
	}
	if got := item.Savings(); got != 2 {
		t.Errorf("Savings() = %v, want 2", got)
	}

	full := PurchaseItem{ID: "p2", Name: "Hat", Price: 5, FinalPrice: 5}
	if full.Discounted() {
		t.Error("expected item without discount to be non-discounted")
	}
	if !full.FullPrice() || item.FullPrice() {
		t.Error("FullPrice() must hold only for a zero discount")
	}

	negative := PurchaseItem{ID: "p3", Name: "Odd", Price: 10, Discount: -0.1, FinalPrice: 11}
	if negative.Discounted() || negative.FullPrice() {
		t.Error("negative discount must be neither discounted nor full price")
	}
}

func TestPurchaseRequest_Tracker(t *testing.T) {
	off := false
	on := true

	if got := (&PurchaseRequest{}).Tracker(); !got {
		t.Error("missing tracker flag should default to true")
	}
	if got := (&PurchaseRequest{TrackerEnabled: &off}).Tracker(); got {
		t.Error("explicit false should be preserved")
	}
	if got := (&PurchaseRequest{TrackerEnabled: &on}).Tracker(); !got {
		t.Error("explicit true should be preserved")
	}
}
