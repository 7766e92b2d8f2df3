// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package shop implements the write side of the service: coupon issuance,
purchase recording and engagement event ingestion.

Every operation appends to an injected store and never reads derived state,
so the aggregation and similarity read paths see each request as one atomic
batch. Identifiers follow the demo client's formats:

	COUPON-<unix seconds>-<6 chars A-Z0-9>
	PURCHASE-<unix seconds>-<1000..9999>
	SYNTHETIC-<unix seconds>-<1000..9999>

# Synthetic Purchases

When enabled, each recorded purchase is mirrored into up to two demo
purchases under derived advertising ids so dashboards have a tracker-off
population to compare against:

 1. the same items and tracker flag under adid[:16] + "-" + md5(adid+"-synthetic-1")[:8]
 2. only the full-price items, tracker off, under the "-synthetic-2" suffix

The second is skipped when every item was discounted.
*/
package shop
