// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package analytics

import (
	"sort"
	"time"

	"github.com/tomtom215/shopsignal/internal/models"
)

// AdidEngagement counts the engagement of one advertising id.
type AdidEngagement struct {
	AdvertisingID       string              `json:"adid"`
	ViewStarts          int                 `json:"viewStarts"`
	ViewEnds            int                 `json:"viewEnds"`
	Clicks              int                 `json:"clicks"`
	TotalViewDurationMS int64               `json:"totalViewDurationMs"`
	ProductsViewed      []string            `json:"productsViewed"`
	ProductsClicked     []string            `json:"productsClicked"`
	LastActivity        time.Time           `json:"lastActivity"`
	Purchases           []PurchasedProduct  `json:"purchases"`
	Performance         []ProductEngagement `json:"performance"`
}

// ProductEngagement is the engagement of one advertising id with one product.
type ProductEngagement struct {
	Product        string  `json:"product"`
	Clicks         int     `json:"clicks"`
	ViewDurationMS int64   `json:"viewDurationMs"`
	Purchased      int     `json:"purchased"`
	Revenue        float64 `json:"revenue"`
}

// PurchasedProduct summarizes what one advertising id bought of a product.
type PurchasedProduct struct {
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
	Discounted int     `json:"discounted"`
}

// ProductActivity counts engagement with one product across all ids.
type ProductActivity struct {
	Product             string `json:"product"`
	Clicks              int    `json:"clicks"`
	TotalViewDurationMS int64  `json:"totalViewDurationMs"`
	UniqueAdids         int    `json:"uniqueAdids"`
}

// RealtimeReport is the output of Realtime.
type RealtimeReport struct {
	TotalEvents int               `json:"totalEvents"`
	Adids       []AdidEngagement  `json:"adids"`
	Products    []ProductActivity `json:"products"`
}

// stringSet keeps first-insertion order so output is deterministic.
type stringSet struct {
	seen  map[string]struct{}
	order []string
}

func (s *stringSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *stringSet) values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.Strings(out)
	return out
}

type adidAccumulator struct {
	AdidEngagement
	viewed      stringSet
	clicked     stringSet
	performance map[string]*ProductEngagement
	perfOrder   []string
	purchased   map[string]*PurchasedProduct
	buyOrder    []string
}

func (a *adidAccumulator) perf(product string) *ProductEngagement {
	if a.performance == nil {
		a.performance = make(map[string]*ProductEngagement)
	}
	p, ok := a.performance[product]
	if !ok {
		p = &ProductEngagement{Product: product}
		a.performance[product] = p
		a.perfOrder = append(a.perfOrder, product)
	}
	return p
}

func (a *adidAccumulator) bought(product string) *PurchasedProduct {
	if a.purchased == nil {
		a.purchased = make(map[string]*PurchasedProduct)
	}
	p, ok := a.purchased[product]
	if !ok {
		p = &PurchasedProduct{Product: product}
		a.purchased[product] = p
		a.buyOrder = append(a.buyOrder, product)
	}
	return p
}

type productAccumulator struct {
	ProductActivity
	adids stringSet
}

// Realtime builds the engagement dashboard from log snapshots.
//
// view_start and duration-carrying view events mark a product as viewed;
// view and view_end durations both add to view time; a missing duration
// contributes zero. Only ids with at least one event are listed; their
// purchases are attached, purchases of other ids are ignored.
func Realtime(events []models.EngagementEvent, purchases []models.PurchaseRecord) *RealtimeReport {
	adids := make(map[string]*adidAccumulator)
	products := make(map[string]*productAccumulator)
	var productOrder []string

	adidFor := func(id string) *adidAccumulator {
		a, ok := adids[id]
		if !ok {
			a = &adidAccumulator{AdidEngagement: AdidEngagement{AdvertisingID: id}}
			adids[id] = a
		}
		return a
	}
	productFor := func(key string) *productAccumulator {
		p, ok := products[key]
		if !ok {
			p = &productAccumulator{ProductActivity: ProductActivity{Product: key}}
			products[key] = p
			productOrder = append(productOrder, key)
		}
		return p
	}

	for i := range events {
		e := &events[i]
		key := e.Key().String()
		a := adidFor(e.AdvertisingID)
		a.LastActivity = e.ReceivedAt

		switch e.Type {
		case models.EventViewStart:
			a.ViewStarts++
			a.viewed.add(key)
			productFor(key).adids.add(e.AdvertisingID)

		case models.EventViewEnd:
			a.ViewEnds++
			if e.HasDuration() {
				d := e.DurationMS()
				a.TotalViewDurationMS += d
				productFor(key).TotalViewDurationMS += d
				a.perf(key).ViewDurationMS += d
			}

		case models.EventView:
			if e.HasDuration() {
				d := e.DurationMS()
				p := productFor(key)
				a.TotalViewDurationMS += d
				p.TotalViewDurationMS += d
				a.viewed.add(key)
				p.adids.add(e.AdvertisingID)
				a.perf(key).ViewDurationMS += d
			}

		case models.EventClick:
			a.Clicks++
			a.clicked.add(key)
			productFor(key).Clicks++
			a.perf(key).Clicks++
		}
	}

	for i := range purchases {
		purchase := &purchases[i]
		a, ok := adids[purchase.AdvertisingID]
		if !ok {
			continue
		}
		for j := range purchase.Items {
			item := &purchase.Items[j]
			key := item.Key().String()

			perf := a.perf(key)
			perf.Purchased++
			perf.Revenue += item.FinalPrice

			b := a.bought(key)
			b.Quantity++
			b.Revenue += item.FinalPrice
			if item.Discounted() {
				b.Discounted++
			}
		}
	}

	report := &RealtimeReport{
		TotalEvents: len(events),
		Adids:       make([]AdidEngagement, 0, len(adids)),
		Products:    make([]ProductActivity, 0, len(products)),
	}

	for _, a := range adids {
		out := a.AdidEngagement
		out.ProductsViewed = a.viewed.values()
		out.ProductsClicked = a.clicked.values()
		out.Performance = make([]ProductEngagement, 0, len(a.perfOrder))
		for _, key := range a.perfOrder {
			out.Performance = append(out.Performance, *a.performance[key])
		}
		out.Purchases = make([]PurchasedProduct, 0, len(a.buyOrder))
		for _, key := range a.buyOrder {
			out.Purchases = append(out.Purchases, *a.purchased[key])
		}
		report.Adids = append(report.Adids, out)
	}

	for _, key := range productOrder {
		p := products[key]
		out := p.ProductActivity
		out.UniqueAdids = len(p.adids.order)
		report.Products = append(report.Products, out)
	}

	// Most recently active first.
	sort.Slice(report.Adids, func(i, j int) bool {
		a, b := report.Adids[i], report.Adids[j]
		if !a.LastActivity.Equal(b.LastActivity) {
			return a.LastActivity.After(b.LastActivity)
		}
		return a.AdvertisingID < b.AdvertisingID
	})
	// Most clicked first; ties keep first-seen order.
	sort.SliceStable(report.Products, func(i, j int) bool {
		return report.Products[i].Clicks > report.Products[j].Clicks
	})

	return report
}
