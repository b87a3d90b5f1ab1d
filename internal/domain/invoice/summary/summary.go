// Package summary computes invoice-level totals over extracted line items.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
)

// Stats are the workbook-level totals. Sums are computed in decimal so the
// totals of a raw parse and of its aggregated form compare equal.
type Stats struct {
	ItemCount        int     `json:"item_count"`
	TotalQuantity    float64 `json:"total_quantity"`
	TotalValue       float64 `json:"total_value"`
	TotalNetWeight   float64 `json:"total_net_weight"`
	TotalGrossWeight float64 `json:"total_gross_weight"`
	DistinctSKUCount int     `json:"distinct_sku_count"`
	DistinctHTSCount int     `json:"distinct_hts_count"`
	DistinctOrigins  int     `json:"distinct_origin_count"`
}

// Calculate computes Stats over the given items. Blank HTS and origin values
// do not count toward the distinct tallies.
func Calculate(items []parser.LineItem) Stats {
	var quantity, value, netWeight, grossWeight decimal.Decimal
	skus := make(map[string]struct{}, len(items))
	hts := make(map[string]struct{})
	origins := make(map[string]struct{})

	for _, item := range items {
		quantity = quantity.Add(decimal.NewFromFloat(item.Quantity))
		value = value.Add(decimal.NewFromFloat(item.Value))
		netWeight = netWeight.Add(decimal.NewFromFloat(item.NetWeight))
		grossWeight = grossWeight.Add(decimal.NewFromFloat(item.GrossWeight))

		skus[item.SKU] = struct{}{}
		if item.HTS != "" {
			hts[item.HTS] = struct{}{}
		}
		if item.CountryOfOrigin != "" {
			origins[item.CountryOfOrigin] = struct{}{}
		}
	}

	return Stats{
		ItemCount:        len(items),
		TotalQuantity:    quantity.InexactFloat64(),
		TotalValue:       value.InexactFloat64(),
		TotalNetWeight:   netWeight.InexactFloat64(),
		TotalGrossWeight: grossWeight.InexactFloat64(),
		DistinctSKUCount: len(skus),
		DistinctHTSCount: len(hts),
		DistinctOrigins:  len(origins),
	}
}
