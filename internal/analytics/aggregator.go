// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package analytics

import (
	"sort"

	"github.com/tomtom215/shopsignal/internal/models"
)

// AdidRollup is the revenue rollup of one advertising id.
type AdidRollup struct {
	AdvertisingID          string  `json:"adid"`
	Purchases              int     `json:"purchases"`
	PurchasesWithCoupon    int     `json:"purchasesWithCoupon"`
	PurchasesWithoutCoupon int     `json:"purchasesWithoutCoupon"`
	TotalRevenue           float64 `json:"totalRevenue"`
	RevenueWithCoupon      float64 `json:"revenueWithCoupon"`
	RevenueWithoutCoupon   float64 `json:"revenueWithoutCoupon"`
	TotalSavings           float64 `json:"totalSavings"`
	ItemsPurchased         int     `json:"itemsPurchased"`
	TrackerEnabled         bool    `json:"trackerEnabled"`
}

// BucketStats accumulates quantity, revenue and savings for one bucket.
type BucketStats struct {
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Savings  float64 `json:"savings"`
}

func (b *BucketStats) add(item *models.PurchaseItem, withSavings bool) {
	b.Quantity++
	b.Revenue += item.FinalPrice
	if withSavings {
		b.Savings += item.Savings()
	}
}

func (b *BucketStats) merge(o BucketStats) {
	b.Quantity += o.Quantity
	b.Revenue += o.Revenue
	b.Savings += o.Savings
}

// ProductRollup splits a product's sales into three disjoint buckets.
type ProductRollup struct {
	Product             models.ProductKey `json:"product"`
	Key                 string            `json:"key"`
	TrackerOnDiscounted BucketStats       `json:"trackerOnWithCoupon"`
	TrackerOnFullPrice  BucketStats       `json:"trackerOnWithoutCoupon"`
	TrackerOff          BucketStats       `json:"trackerOff"`
}

// TotalRevenue sums revenue across all three buckets.
func (p *ProductRollup) TotalRevenue() float64 {
	return p.TrackerOnDiscounted.Revenue + p.TrackerOnFullPrice.Revenue + p.TrackerOff.Revenue
}

// Projection is the linear tracker-adoption revenue extrapolation.
type Projection struct {
	AvgRevenuePerTrackerOnAdid float64 `json:"avgRevenuePerTrackerOnAdid"`
	CurrentRevenue             float64 `json:"currentRevenue"`
	ProjectedRevenue           float64 `json:"projectedRevenue"`
	AdditionalRevenue          float64 `json:"additionalRevenue"`
	PercentIncrease            float64 `json:"percentIncrease"`
}

// BucketTotals sums the product buckets across every product.
type BucketTotals struct {
	TrackerOnDiscounted BucketStats `json:"trackerOnWithCoupon"`
	TrackerOnFullPrice  BucketStats `json:"trackerOnWithoutCoupon"`
	TrackerOff          BucketStats `json:"trackerOff"`
}

// Summary holds the derived dashboard scalars.
type Summary struct {
	TotalRevenue           float64      `json:"totalRevenue"`
	RevenueTrackerOn       float64      `json:"revenueTrackerOn"`
	RevenueTrackerOff      float64      `json:"revenueTrackerOff"`
	RevenueWithCoupon      float64      `json:"revenueWithCoupon"`
	RevenueWithoutCoupon   float64      `json:"revenueWithoutCoupon"`
	PurchasesWithCoupon    int          `json:"purchasesWithCoupon"`
	PurchasesWithoutCoupon int          `json:"purchasesWithoutCoupon"`
	PurchasesTrackerOn     int          `json:"purchasesTrackerOn"`
	PurchasesTrackerOff    int          `json:"purchasesTrackerOff"`
	AdidsTrackerOn         int          `json:"adidsTrackerOn"`
	AdidsTrackerOff        int          `json:"adidsTrackerOff"`
	TrackerOnPercentage    float64      `json:"trackerOnPercentage"`
	Projection             Projection   `json:"projection"`
	Buckets                BucketTotals `json:"buckets"`
}

// Report is the output of Aggregate.
type Report struct {
	Adids    []AdidRollup    `json:"adids"`
	Products []ProductRollup `json:"products"`
	Summary  Summary         `json:"summary"`
}

// Adid returns the rollup for id, or nil if the id made no purchase.
func (r *Report) Adid(id string) *AdidRollup {
	for i := range r.Adids {
		if r.Adids[i].AdvertisingID == id {
			return &r.Adids[i]
		}
	}
	return nil
}

// Product returns the rollup for key, or nil if the product was never sold.
func (r *Report) Product(key models.ProductKey) *ProductRollup {
	for i := range r.Products {
		if r.Products[i].Product == key {
			return &r.Products[i]
		}
	}
	return nil
}

// Aggregate folds the purchase log into revenue rollups. It never mutates
// its input and returns identical reports for identical inputs.
func Aggregate(purchases []models.PurchaseRecord) *Report {
	adids := make([]AdidRollup, 0)
	adidIndex := make(map[string]int)
	products := make([]ProductRollup, 0)
	productIndex := make(map[models.ProductKey]int)

	productFor := func(key models.ProductKey) *ProductRollup {
		idx, ok := productIndex[key]
		if !ok {
			idx = len(products)
			productIndex[key] = idx
			products = append(products, ProductRollup{Product: key, Key: key.String()})
		}
		return &products[idx]
	}

	for pi := range purchases {
		purchase := &purchases[pi]

		idx, ok := adidIndex[purchase.AdvertisingID]
		if !ok {
			idx = len(adids)
			adidIndex[purchase.AdvertisingID] = idx
			adids = append(adids, AdidRollup{AdvertisingID: purchase.AdvertisingID})
		}
		rollup := &adids[idx]

		rollup.Purchases++
		rollup.TrackerEnabled = purchase.TrackerEnabled

		var hasDiscounted, hasFullPrice bool
		for ii := range purchase.Items {
			switch {
			case purchase.Items[ii].Discounted():
				hasDiscounted = true
			case purchase.Items[ii].FullPrice():
				hasFullPrice = true
			}
		}
		if hasDiscounted {
			rollup.PurchasesWithCoupon++
		}
		if hasFullPrice {
			rollup.PurchasesWithoutCoupon++
		}

		for ii := range purchase.Items {
			item := &purchase.Items[ii]
			// Negative discounts fall in neither partition and are not counted.
			if !item.Discounted() && !item.FullPrice() {
				continue
			}
			rollup.ItemsPurchased++

			product := productFor(item.Key())
			if item.Discounted() {
				rollup.RevenueWithCoupon += item.FinalPrice
				rollup.TotalSavings += item.Savings()
				if purchase.TrackerEnabled {
					product.TrackerOnDiscounted.add(item, true)
				} else {
					product.TrackerOff.add(item, true)
				}
				continue
			}

			rollup.RevenueWithoutCoupon += item.FinalPrice
			if purchase.TrackerEnabled {
				product.TrackerOnFullPrice.add(item, false)
			} else {
				product.TrackerOff.add(item, false)
			}
		}
	}

	// Revenue conservation holds exactly: total is derived, not accumulated.
	for i := range adids {
		adids[i].TotalRevenue = adids[i].RevenueWithCoupon + adids[i].RevenueWithoutCoupon
	}

	report := &Report{
		Adids:    adids,
		Products: products,
		Summary:  summarize(adids, products),
	}

	sort.SliceStable(report.Adids, func(i, j int) bool {
		return report.Adids[i].TotalRevenue > report.Adids[j].TotalRevenue
	})
	sort.SliceStable(report.Products, func(i, j int) bool {
		return report.Products[i].TotalRevenue() > report.Products[j].TotalRevenue()
	})

	return report
}

// summarize derives the dashboard scalars. Rollups must still be in
// first-appearance order so float sums are reproducible.
func summarize(adids []AdidRollup, products []ProductRollup) Summary {
	var s Summary

	for i := range adids {
		a := &adids[i]
		s.RevenueWithCoupon += a.RevenueWithCoupon
		s.RevenueWithoutCoupon += a.RevenueWithoutCoupon
		s.PurchasesWithCoupon += a.PurchasesWithCoupon
		s.PurchasesWithoutCoupon += a.PurchasesWithoutCoupon

		if a.TrackerEnabled {
			s.RevenueTrackerOn += a.TotalRevenue
			s.PurchasesTrackerOn += a.Purchases
			s.AdidsTrackerOn++
		} else {
			s.RevenueTrackerOff += a.TotalRevenue
			s.PurchasesTrackerOff += a.Purchases
			s.AdidsTrackerOff++
		}
	}

	s.TotalRevenue = s.RevenueTrackerOn + s.RevenueTrackerOff

	totalAdids := s.AdidsTrackerOn + s.AdidsTrackerOff
	if totalAdids > 0 {
		s.TrackerOnPercentage = float64(s.AdidsTrackerOn) / float64(totalAdids) * 100
	}

	s.Projection = project(s.RevenueTrackerOn, s.RevenueTrackerOff, s.AdidsTrackerOn, totalAdids)

	for i := range products {
		s.Buckets.TrackerOnDiscounted.merge(products[i].TrackerOnDiscounted)
		s.Buckets.TrackerOnFullPrice.merge(products[i].TrackerOnFullPrice)
		s.Buckets.TrackerOff.merge(products[i].TrackerOff)
	}

	return s
}

// project computes the linear tracker-adoption extrapolation.
func project(revenueOn, revenueOff float64, adidsOn, adidsTotal int) Projection {
	var p Projection
	if adidsOn > 0 {
		p.AvgRevenuePerTrackerOnAdid = revenueOn / float64(adidsOn)
	}
	p.CurrentRevenue = revenueOn + revenueOff
	p.ProjectedRevenue = p.AvgRevenuePerTrackerOnAdid * float64(adidsTotal)
	p.AdditionalRevenue = p.ProjectedRevenue - p.CurrentRevenue
	if p.CurrentRevenue != 0 {
		p.PercentIncrease = p.AdditionalRevenue / p.CurrentRevenue * 100
	}
	return p
}
