// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/shopsignal/internal/logging"
	"github.com/tomtom215/shopsignal/internal/models"
	"github.com/tomtom215/shopsignal/internal/shop"
	"github.com/tomtom215/shopsignal/internal/validation"
)

// IssueCoupon handles POST /api/v1/coupon
func (h *Handler) IssueCoupon(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CouponRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	coupon, err := h.shop.IssueCoupon(r.Context(), req)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to issue coupon", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.CouponResponse{
		CouponID: coupon.CouponID,
		Discount: coupon.Discount,
	}, start, false)
}

// ListCoupons handles GET /api/v1/coupons
func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	coupons := h.shop.Coupons()
	respondSuccess(w, http.StatusOK, models.CouponList{
		Total:   len(coupons),
		Coupons: coupons,
	}, start, false)
}

// RecordPurchase handles POST /api/v1/purchase
func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PurchaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.shop.RecordPurchase(r.Context(), req)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to record purchase", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.PurchaseResponse{
		Success:    true,
		PurchaseID: record.PurchaseID,
		Timestamp:  record.Timestamp.Format(time.RFC3339),
	}, start, false)
}

// ListPurchases handles GET /api/v1/purchases
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	purchases := h.shop.Purchases()
	respondSuccess(w, http.StatusOK, models.PurchaseList{
		Total:     len(purchases),
		Purchases: purchases,
	}, start, false)
}

// IngestEvents handles POST /api/v1/analytics-events
func (h *Handler) IngestEvents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var batch models.AnalyticsBatch
	if !decodeAndValidate(w, r, &batch) {
		return
	}

	n, err := h.shop.IngestEvents(r.Context(), batch)
	if err != nil {
		if errors.Is(err, shop.ErrInvalidEvent) {
			respondError(w, r, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to ingest events", err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("adid", logging.Sanitize(batch.AdvertisingID)).
		Int("events", n).
		Msg("Event batch ingested")

	respondSuccess(w, http.StatusOK, models.AnalyticsBatchResponse{
		Success:        true,
		EventsReceived: n,
	}, start, false)
}
