// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsignal/internal/logging"
	"github.com/tomtom215/shopsignal/internal/models"
	"github.com/tomtom215/shopsignal/internal/shop"
	"github.com/tomtom215/shopsignal/internal/similarity"
	"github.com/tomtom215/shopsignal/internal/store"
	"github.com/tomtom215/shopsignal/internal/validation"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

type testServer struct {
	handler http.Handler
	stores  *store.Stores
}

func newTestServer(t *testing.T, mwConfig *ChiMiddlewareConfig) *testServer {
	t.Helper()

	stores := store.NewMemoryStores()
	shopSvc := shop.NewService(stores, shop.Config{CouponDiscount: 0.2},
		shop.WithClock(func() time.Time { return fixedNow }),
	)
	engine := similarity.NewEngine(stores.Events, similarity.DefaultEngineConfig(), zerolog.Nop())
	computer := similarity.NewBreaker(engine, similarity.BreakerConfig{}, zerolog.Nop())

	if mwConfig == nil {
		mwConfig = DefaultChiMiddlewareConfig()
		mwConfig.RateLimitDisabled = true
	}

	router := NewRouter(NewHandler(shopSvc, stores, computer), mwConfig)
	return &testServer{handler: router.Setup(), stores: stores}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid envelope %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("failed to decode data %s: %v", env.Data, err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if env.Status != statusError {
		t.Errorf("envelope status = %q, want error", env.Status)
	}
	if env.Error == nil || env.Error.Code != code {
		t.Errorf("error = %+v, want code %s", env.Error, code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != statusSuccess {
		t.Errorf("envelope status = %q, want success", env.Status)
	}

	var health HealthStatus
	decodeData(t, env, &health)
	if health.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", health.Status)
	}
	if health.Similarity == nil || health.Similarity.Breaker != "closed" {
		t.Errorf("health similarity = %+v, want closed breaker", health.Similarity)
	}
	if !strings.Contains(string(env.Data), `"uptimeSeconds"`) {
		t.Errorf("health payload missing uptimeSeconds: %s", env.Data)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID response header")
	}
}

func TestCouponEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/coupon", `{"adid":"ad-1","productName":"Running Shoe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var coupon models.CouponResponse
	decodeData(t, env, &coupon)
	if !strings.HasPrefix(coupon.CouponID, "COUPON-1717237800-") {
		t.Errorf("couponId = %q, want COUPON-1717237800- prefix", coupon.CouponID)
	}
	if coupon.Discount != 0.2 {
		t.Errorf("discount = %v, want 0.2", coupon.Discount)
	}

	_, env = srv.do(t, http.MethodGet, "/api/v1/coupons", "")
	var list models.CouponList
	decodeData(t, env, &list)
	if list.Total != 1 || len(list.Coupons) != 1 {
		t.Fatalf("coupon list = %+v, want one coupon", list)
	}
	if list.Coupons[0].CouponID != coupon.CouponID {
		t.Errorf("listed coupon %q, want %q", list.Coupons[0].CouponID, coupon.CouponID)
	}
}

func TestCouponEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"invalid json", `{"adid":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing adid", `{"productName":"Shoe"}`, http.StatusBadRequest, ErrCodeValidation},
		{"missing product", `{"adid":"ad-1"}`, http.StatusBadRequest, ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			rec, env := srv.do(t, http.MethodPost, "/api/v1/coupon", tt.body)
			expectError(t, rec, env, tt.status, tt.code)
			if srv.stores.Coupons.Len() != 0 {
				t.Error("rejected request must not issue a coupon")
			}
		})
	}
}

func TestPurchaseEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"adid":"ad-1","trackerEnabled":true,"total":80,"items":[
		{"id":"p1","name":"Shoe","price":100,"discount":0.2,"finalPrice":80}]}`
	rec, env := srv.do(t, http.MethodPost, "/api/v1/purchase", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp models.PurchaseResponse
	decodeData(t, env, &resp)
	if !resp.Success || !strings.HasPrefix(resp.PurchaseID, "PURCHASE-1717237800-") {
		t.Errorf("purchase response = %+v", resp)
	}
	if resp.Timestamp != "2024-06-01T10:30:00Z" {
		t.Errorf("timestamp = %q, want 2024-06-01T10:30:00Z", resp.Timestamp)
	}

	_, env = srv.do(t, http.MethodGet, "/api/v1/purchases", "")
	var list models.PurchaseList
	decodeData(t, env, &list)
	if list.Total != 1 {
		t.Fatalf("purchase total = %d, want 1", list.Total)
	}
	if got := list.Purchases[0].Items[0].FinalPrice; got != 80 {
		t.Errorf("stored finalPrice = %v, want 80", got)
	}

	_, env = srv.do(t, http.MethodGet, "/api/v1/analytics", "")
	var report struct {
		Summary struct {
			TotalRevenue        float64 `json:"totalRevenue"`
			PurchasesWithCoupon int     `json:"purchasesWithCoupon"`
		} `json:"summary"`
	}
	decodeData(t, env, &report)
	if report.Summary.TotalRevenue != 80 || report.Summary.PurchasesWithCoupon != 1 {
		t.Errorf("summary = %+v, want revenue 80 with one coupon purchase", report.Summary)
	}
}

func TestIngestEvents(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"adid":"ad-1","events":[
		{"eventType":"view_start","productId":"p1","productName":"Shoe","timestamp":1},
		{"eventType":"click","productId":"p1","productName":"Shoe","timestamp":2}]}`
	rec, env := srv.do(t, http.MethodPost, "/api/v1/analytics-events", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp models.AnalyticsBatchResponse
	decodeData(t, env, &resp)
	if !resp.Success || resp.EventsReceived != 2 {
		t.Errorf("response = %+v, want 2 events received", resp)
	}
	if srv.stores.Events.Len() != 2 {
		t.Errorf("event store len = %d, want 2", srv.stores.Events.Len())
	}

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/analytics/realtime", "")
	if rec.Code != http.StatusOK {
		t.Errorf("realtime status = %d, want 200", rec.Code)
	}
}

func TestIngestEvents_UnknownTypeRejected(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"adid":"ad-1","events":[
		{"eventType":"click","productId":"p1","productName":"Shoe","timestamp":1},
		{"eventType":"hover","productId":"p1","productName":"Shoe","timestamp":2}]}`
	rec, env := srv.do(t, http.MethodPost, "/api/v1/analytics-events", body)
	expectError(t, rec, env, http.StatusBadRequest, ErrCodeValidation)

	if srv.stores.Events.Len() != 0 {
		t.Errorf("event store len = %d, want 0 after rejected batch", srv.stores.Events.Len())
	}
}

func TestProductSimilarity_InsufficientData(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/product-similarity", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result struct {
		Insufficient bool              `json:"insufficientData"`
		Nodes        []json.RawMessage `json:"nodes"`
		Edges        []json.RawMessage `json:"edges"`
	}
	decodeData(t, env, &result)
	if !result.Insufficient {
		t.Error("insufficientData = false, want true")
	}
	if len(result.Nodes) != 0 || len(result.Edges) != 0 {
		t.Errorf("nodes/edges = %d/%d, want empty", len(result.Nodes), len(result.Edges))
	}
}

func TestProductSimilarity_Graph(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"adid":"ad-1","events":[
		{"eventType":"click","productId":"p1","productName":"Shoe","timestamp":1},
		{"eventType":"click","productId":"p2","productName":"Sock","timestamp":2}]}`
	if rec, _ := srv.do(t, http.MethodPost, "/api/v1/analytics-events", body); rec.Code != http.StatusOK {
		t.Fatalf("ingest status = %d", rec.Code)
	}

	rec, env := srv.do(t, http.MethodGet, "/api/v1/product-similarity?threshold=0.5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if env.Metadata.Cached {
		t.Error("first computation reported as cached")
	}

	var result struct {
		Insufficient bool    `json:"insufficientData"`
		Threshold    float64 `json:"threshold"`
		Nodes        []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"nodes"`
		Edges []struct {
			Source     int     `json:"source"`
			Target     int     `json:"target"`
			Similarity float64 `json:"similarity"`
		} `json:"edges"`
		Positions map[string]similarity.Point `json:"positions"`
	}
	decodeData(t, env, &result)

	if result.Insufficient {
		t.Fatal("insufficientData = true with two products")
	}
	if result.Threshold != 0.5 {
		t.Errorf("threshold = %v, want 0.5", result.Threshold)
	}
	if len(result.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(result.Nodes))
	}
	if len(result.Edges) != 1 || result.Edges[0].Similarity < 0.999 {
		t.Errorf("edges = %+v, want one edge of similarity 1", result.Edges)
	}
	if len(result.Positions) != 2 {
		t.Errorf("positions = %d, want 2", len(result.Positions))
	}

	_, env = srv.do(t, http.MethodGet, "/api/v1/product-similarity?threshold=0.5", "")
	if !env.Metadata.Cached {
		t.Error("repeat computation should be served from cache")
	}
}

func TestProductSimilarity_InvalidThreshold(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/product-similarity?threshold=abc", "")
	expectError(t, rec, env, http.StatusBadRequest, ErrCodeInvalidParameter)
}

type failingComputer struct {
	err error
}

func (f failingComputer) Compute(context.Context, float64) (*similarity.Result, bool, error) {
	return nil, false, f.err
}

func (f failingComputer) DefaultThreshold() float64 { return 0.1 }

func TestProductSimilarity_ComputeErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"breaker open", fmt.Errorf("%w: open", similarity.ErrOverloaded), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores := store.NewMemoryStores()
			h := NewHandler(shop.NewService(stores, shop.Config{}), stores, failingComputer{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/product-similarity", nil)
			rec := httptest.NewRecorder()
			h.ProductSimilarity(rec, req)

			var env envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid envelope: %v", err)
			}
			expectError(t, rec, env, tt.status, tt.code)
		})
	}
}

// blockingComputer waits for the request budget to run out.
type blockingComputer struct{}

func (blockingComputer) Compute(ctx context.Context, _ float64) (*similarity.Result, bool, error) {
	<-ctx.Done()
	return nil, false, ctx.Err()
}

func (blockingComputer) DefaultThreshold() float64 { return 0.1 }

func TestProductSimilarity_TimeoutBudget(t *testing.T) {
	stores := store.NewMemoryStores()
	h := NewHandler(shop.NewService(stores, shop.Config{}), stores, blockingComputer{},
		WithSimilarityTimeout(20*time.Millisecond))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/product-similarity", nil)
	rec := httptest.NewRecorder()

	start := time.Now()
	h.ProductSimilarity(rec, req)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("handler took %v, want it bounded by the 20ms budget", elapsed)
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	expectError(t, rec, env, http.StatusServiceUnavailable, ErrCodeServiceUnavailable)
}

func TestWithSimilarityTimeoutIgnoresNonPositive(t *testing.T) {
	stores := store.NewMemoryStores()
	h := NewHandler(nil, stores, blockingComputer{}, WithSimilarityTimeout(0), WithSimilarityTimeout(-time.Second))
	if h.similarityTimeout != 25*time.Second {
		t.Errorf("similarityTimeout = %v, want default 25s", h.similarityTimeout)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/nope", "")
	expectError(t, rec, env, http.StatusNotFound, ErrCodeNotFound)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/coupon", "")
	expectError(t, rec, env, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	srv := newTestServer(t, cfg)

	body := `{"adid":"ad-1","productName":"Shoe"}`
	for i := 0; i < 2; i++ {
		if rec, _ := srv.do(t, http.MethodPost, "/api/v1/coupon", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}

	rec, env := srv.do(t, http.MethodPost, "/api/v1/coupon", body)
	expectError(t, rec, env, http.StatusTooManyRequests, ErrCodeTooManyRequests)

	// Reads have their own, larger budget.
	if rec, _ := srv.do(t, http.MethodGet, "/api/v1/coupons", ""); rec.Code != http.StatusOK {
		t.Errorf("read after write limit status = %d, want 200", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/analytics-events", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodGet, "/health", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestPurchase_NegativeDiscountRejected(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{"adid":"ad-1","total":11,"items":[
		{"id":"p1","name":"Shoe","price":10,"discount":-0.1,"finalPrice":11}]}`
	rec, env := srv.do(t, http.MethodPost, "/api/v1/purchase", body)
	expectError(t, rec, env, http.StatusBadRequest, validation.ErrorCode)

	if n := srv.stores.Purchases.Len(); n != 0 {
		t.Errorf("purchase store len = %d, want 0", n)
	}
}

// Coupon and purchase writes are logged once, by the shop service, with the
// request id attached.
func TestShopWritesLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	prev := logging.Logger()
	logging.SetLogger(logger)
	t.Cleanup(func() { logging.SetLogger(prev) })

	stores := store.NewMemoryStores()
	shopSvc := shop.NewService(stores, shop.Config{CouponDiscount: 0.2},
		shop.WithClock(func() time.Time { return fixedNow }),
		shop.WithLogger(logger),
	)
	computer := similarity.NewEngine(stores.Events, similarity.DefaultEngineConfig(), zerolog.Nop())
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	srv := &testServer{handler: NewRouter(NewHandler(shopSvc, stores, computer), mw).Setup(), stores: stores}

	rec, _ := srv.do(t, http.MethodPost, "/api/v1/coupon", `{"adid":"ad-1","productName":"Running Shoe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("coupon status = %d, want 200", rec.Code)
	}
	rec, _ = srv.do(t, http.MethodPost, "/api/v1/purchase", `{"adid":"ad-1","total":10,"items":[
		{"id":"p1","name":"Shoe","price":10,"discount":0,"finalPrice":10}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("purchase status = %d, want 200", rec.Code)
	}

	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		if entry["level"] != "info" {
			continue
		}
		msg := strings.ToLower(fmt.Sprint(entry["message"]))
		counts[msg]++
		if msg == "coupon issued" || msg == "purchase recorded" {
			if id, _ := entry["request_id"].(string); id == "" {
				t.Errorf("%q logged without request_id", msg)
			}
		}
	}
	for _, msg := range []string{"coupon issued", "purchase recorded"} {
		if counts[msg] != 1 {
			t.Errorf("%q logged %d times at info, want 1", msg, counts[msg])
		}
	}
}
