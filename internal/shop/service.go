// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package shop

import (
	"context"
	"crypto/md5" //nolint:gosec // identifier derivation only
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shopsignal/internal/logging"
	"github.com/tomtom215/shopsignal/internal/metrics"
	"github.com/tomtom215/shopsignal/internal/models"
	"github.com/tomtom215/shopsignal/internal/store"
)

// DefaultCouponDiscount is the fractional discount of an issued coupon.
const DefaultCouponDiscount = 0.2

// ErrInvalidEvent is returned when a batch contains an unknown event type.
var ErrInvalidEvent = errors.New("invalid event type")

const couponAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Config holds shop settings.
type Config struct {
	// CouponDiscount is applied to every issued coupon. Default: 0.2
	CouponDiscount float64

	// SyntheticPurchases mirrors each purchase into demo records.
	SyntheticPurchases bool
}

// Service records coupons, purchases and engagement events. It is safe for
// concurrent use.
type Service struct {
	stores *store.Stores
	config Config
	logger zerolog.Logger

	now   func() time.Time
	rng   *rand.Rand
	rngMu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand replaces the identifier random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithLogger sets the service logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger.With().Str("component", "shop").Logger() }
}

// NewService creates a shop service writing to stores.
func NewService(stores *store.Stores, cfg Config, opts ...Option) *Service {
	if cfg.CouponDiscount <= 0 {
		cfg.CouponDiscount = DefaultCouponDiscount
	}

	s := &Service{
		stores: stores,
		config: cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // identifiers, not secrets
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueCoupon creates and stores a coupon for the requested product.
func (s *Service) IssueCoupon(ctx context.Context, req models.CouponRequest) (models.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return models.Coupon{}, err
	}

	now := s.now()
	coupon := models.Coupon{
		CouponID:      fmt.Sprintf("COUPON-%d-%s", now.Unix(), s.couponSuffix()),
		AdvertisingID: req.AdvertisingID,
		ProductName:   req.ProductName,
		Discount:      s.config.CouponDiscount,
		Timestamp:     now,
	}
	s.stores.Coupons.Append(coupon)
	metrics.RecordCouponIssued()

	s.log(ctx).Info().
		Str("coupon_id", coupon.CouponID).
		Str("adid", logging.Sanitize(coupon.AdvertisingID)).
		Str("product", logging.Sanitize(coupon.ProductName)).
		Float64("discount", coupon.Discount).
		Msg("coupon issued")

	return coupon, nil
}

// log returns the service logger tagged with the request id carried by ctx.
func (s *Service) log(ctx context.Context) *zerolog.Logger {
	logger := s.logger
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	return &logger
}

// Coupons returns every issued coupon in issue order.
func (s *Service) Coupons() []models.Coupon {
	return s.stores.Coupons.Snapshot()
}

// RecordPurchase stores a purchase and, when enabled, its synthetic demo
// purchases. All records are appended in one batch and the real purchase is
// returned.
func (s *Service) RecordPurchase(ctx context.Context, req models.PurchaseRequest) (models.PurchaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.PurchaseRecord{}, err
	}

	now := s.now()
	items := make([]models.PurchaseItem, len(req.Items))
	copy(items, req.Items)

	record := models.PurchaseRecord{
		PurchaseID:     fmt.Sprintf("PURCHASE-%d-%d", now.Unix(), s.randomID()),
		AdvertisingID:  req.AdvertisingID,
		Items:          items,
		Total:          req.Total,
		TrackerEnabled: req.Tracker(),
		Timestamp:      now,
	}

	batch := []models.PurchaseRecord{record}
	if s.config.SyntheticPurchases {
		batch = append(batch, s.synthesize(record, now)...)
	}
	s.stores.Purchases.Append(batch...)

	for i := range batch {
		metrics.RecordPurchase(batch[i].TrackerEnabled, batch[i].Synthetic, batch[i].Total)
	}

	s.log(ctx).Info().
		Str("purchase_id", record.PurchaseID).
		Str("adid", logging.Sanitize(record.AdvertisingID)).
		Int("items", len(record.Items)).
		Float64("total", record.Total).
		Bool("tracker_enabled", record.TrackerEnabled).
		Int("synthetic", len(batch)-1).
		Msg("purchase recorded")

	return record, nil
}

// Purchases returns every purchase record, synthetic ones included, in
// recording order.
func (s *Service) Purchases() []models.PurchaseRecord {
	return s.stores.Purchases.Snapshot()
}

// IngestEvents stamps every event in the batch with one receive time and
// appends them in arrival order. The whole batch is rejected if any event
// type is unknown.
func (s *Service) IngestEvents(ctx context.Context, batch models.AnalyticsBatch) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	for i := range batch.Events {
		if !models.EventType(batch.Events[i].EventType).Valid() {
			return 0, fmt.Errorf("%w: %q at index %d", ErrInvalidEvent, batch.Events[i].EventType, i)
		}
	}
	if len(batch.Events) == 0 {
		return 0, nil
	}

	receivedAt := s.now()
	events := make([]models.EngagementEvent, len(batch.Events))
	counts := make(map[models.EventType]int, len(models.EventTypes))
	for i := range batch.Events {
		in := &batch.Events[i]
		events[i] = models.EngagementEvent{
			AdvertisingID: batch.AdvertisingID,
			ProductID:     in.ProductID,
			ProductName:   in.ProductName,
			Type:          models.EventType(in.EventType),
			Timestamp:     in.Timestamp,
			ViewDuration:  in.ViewDuration,
			ReceivedAt:    receivedAt,
		}
		counts[events[i].Type]++
	}
	s.stores.Events.Append(events...)

	metrics.RecordEventBatch()
	for _, t := range models.EventTypes {
		metrics.RecordEventsIngested(string(t), counts[t])
	}

	s.logger.Debug().
		Str("adid", batch.AdvertisingID).
		Int("events", len(events)).
		Msg("analytics batch ingested")

	return len(events), nil
}

// synthesize derives the demo purchases for record.
func (s *Service) synthesize(record models.PurchaseRecord, now time.Time) []models.PurchaseRecord {
	out := make([]models.PurchaseRecord, 0, 2)

	mirrored := make([]models.PurchaseItem, len(record.Items))
	copy(mirrored, record.Items)
	out = append(out, models.PurchaseRecord{
		PurchaseID:     s.syntheticID(now),
		AdvertisingID:  SyntheticAdid(record.AdvertisingID, 1),
		Items:          mirrored,
		Total:          record.Total,
		TrackerEnabled: record.TrackerEnabled,
		Timestamp:      now,
		Synthetic:      true,
	})

	var fullPrice []models.PurchaseItem
	var total float64
	for _, item := range record.Items {
		if item.Discount == 0 {
			fullPrice = append(fullPrice, item)
			total += item.FinalPrice
		}
	}
	if len(fullPrice) > 0 {
		out = append(out, models.PurchaseRecord{
			PurchaseID:     s.syntheticID(now),
			AdvertisingID:  SyntheticAdid(record.AdvertisingID, 2),
			Items:          fullPrice,
			Total:          total,
			TrackerEnabled: false,
			Timestamp:      now,
			Synthetic:      true,
		})
	}

	return out
}

// SyntheticAdid derives the advertising id of the n-th synthetic purchase
// for adid: the first 16 characters of adid, a dash and the first 8 hex
// digits of md5(adid + "-synthetic-<n>").
func SyntheticAdid(adid string, n int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s-synthetic-%d", adid, n))) //nolint:gosec // identifier derivation only
	return truncateRunes(adid, 16) + "-" + hex.EncodeToString(sum[:])[:8]
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func (s *Service) syntheticID(now time.Time) string {
	return fmt.Sprintf("SYNTHETIC-%d-%d", now.Unix(), s.randomID())
}

// randomID returns a value in [1000, 9999].
func (s *Service) randomID() int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return 1000 + s.rng.Intn(9000)
}

func (s *Service) couponSuffix() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	var b strings.Builder
	b.Grow(6)
	for i := 0; i < 6; i++ {
		b.WriteByte(couponAlphabet[s.rng.Intn(len(couponAlphabet))])
	}
	return b.String()
}
