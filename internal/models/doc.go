// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package models defines the records exchanged between the ingestion boundary,
the in-memory logs, and the analytics pipeline.

Key Components:

  - EngagementEvent: one observed user action (view_start, view, view_end, click)
  - PurchaseRecord / PurchaseItem: one completed transaction and its line items
  - Coupon: an issued discount coupon
  - ProductKey: composite product identity (id + name)
  - APIResponse: standard response envelope for every JSON endpoint

Records are immutable once appended to a log. Field names on the wire follow
the client SDK (camelCase: adid, productId, viewDuration, ...).
*/
package models
