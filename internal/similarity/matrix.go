// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package similarity

import (
	"errors"
	"sort"

	"github.com/tomtom215/shopsignal/internal/models"
)

// Engagement weights.
const (
	// ClickWeight is added to a cell for every click event.
	ClickWeight = 10.0

	// ViewWeightPerSecond is added per second of a view event's duration.
	ViewWeightPerSecond = 0.1
)

// ErrInsufficientData is returned when the log holds fewer than two
// distinct products.
var ErrInsufficientData = errors.New("similarity: at least 2 products are required")

// Matrix is a dense products x advertising-ids engagement matrix.
//
// Row i belongs to Products[i] and column j to Adids[j]. Products are
// ordered by their rendered key ("<id> - <name>") and Adids lexicographically.
type Matrix struct {
	Products []models.ProductKey
	Adids    []string
	Values   [][]float64
}

// Rows returns the number of products.
func (m *Matrix) Rows() int { return len(m.Products) }

// Cols returns the number of advertising ids.
func (m *Matrix) Cols() int { return len(m.Adids) }

// RowSum returns the total engagement recorded for product row i.
func (m *Matrix) RowSum(i int) float64 {
	var sum float64
	for _, v := range m.Values[i] {
		sum += v
	}
	return sum
}

// eventWeight returns the matrix contribution of a single event.
func eventWeight(e *models.EngagementEvent) float64 {
	switch e.Type {
	case models.EventClick:
		return ClickWeight
	case models.EventView:
		if !e.HasDuration() {
			return 0
		}
		return float64(e.DurationMS()) / 1000.0 * ViewWeightPerSecond
	default:
		return 0
	}
}

// BuildMatrix builds the engagement matrix from events in log order.
//
// Every event registers its product and advertising id, including event
// types that carry no weight, so a product seen only through view_start
// still gets an all-zero row.
func BuildMatrix(events []models.EngagementEvent) (*Matrix, error) {
	keys := make(map[string]models.ProductKey)
	adidSet := make(map[string]struct{})
	for i := range events {
		k := events[i].Key()
		name := k.String()
		if _, ok := keys[name]; !ok {
			keys[name] = k
		}
		adidSet[events[i].AdvertisingID] = struct{}{}
	}

	if len(keys) < 2 {
		return nil, ErrInsufficientData
	}

	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	adids := make([]string, 0, len(adidSet))
	for adid := range adidSet {
		adids = append(adids, adid)
	}
	sort.Strings(adids)

	rowIndex := make(map[string]int, len(names))
	products := make([]models.ProductKey, len(names))
	for i, name := range names {
		rowIndex[name] = i
		products[i] = keys[name]
	}
	colIndex := make(map[string]int, len(adids))
	for j, adid := range adids {
		colIndex[adid] = j
	}

	values := make([][]float64, len(products))
	for i := range values {
		values[i] = make([]float64, len(adids))
	}

	for i := range events {
		w := eventWeight(&events[i])
		if w == 0 {
			continue
		}
		row := rowIndex[events[i].Key().String()]
		col := colIndex[events[i].AdvertisingID]
		values[row][col] += w
	}

	return &Matrix{
		Products: products,
		Adids:    adids,
		Values:   values,
	}, nil
}
