// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package api

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shopsignal/internal/models"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		query  string
		want   float64
		wantOK bool
	}{
		{"", 0.1, true},
		{"threshold=0.5", 0.5, true},
		{"threshold=%200.3%20", 0.3, true},
		{"threshold=2", 2, true},
		{"threshold=-1", -1, true},
		{"threshold=abc", 0, false},
		{"threshold=0.5x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/product-similarity?"+tt.query, nil)
			got, ok := parseThreshold(req, 0.1)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("threshold = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseThreshold_NaNPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x?threshold=NaN", nil)
	got, ok := parseThreshold(req, 0.1)
	if !ok || !math.IsNaN(got) {
		t.Errorf("parseThreshold(NaN) = %v, %v; want NaN, true", got, ok)
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"adid":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/coupon", strings.NewReader(body))
	rec := httptest.NewRecorder()

	var dst models.CouponRequest
	if decodeJSON(rec, req, &dst) {
		t.Fatal("decodeJSON accepted an oversized body")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestValidateRequest(t *testing.T) {
	if apiErr := validateRequest(&models.CouponRequest{AdvertisingID: "a", ProductName: "b"}); apiErr != nil {
		t.Errorf("valid request rejected: %+v", apiErr)
	}

	apiErr := validateRequest(&models.CouponRequest{})
	if apiErr == nil {
		t.Fatal("empty request accepted")
	}
	if apiErr.Code != ErrCodeValidation {
		t.Errorf("code = %q, want %s", apiErr.Code, ErrCodeValidation)
	}
}

func TestRespondError_Envelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	respondError(rec, req, http.StatusBadRequest, ErrCodeBadRequest, "bad", nil)

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != statusError || resp.Error == nil || resp.Error.Message != "bad" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Data != nil {
		t.Errorf("data = %v, want null", resp.Data)
	}
}
