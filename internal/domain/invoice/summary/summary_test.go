package summary_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/aggregator"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/summary"
)

func TestCalculate(t *testing.T) {
	t.Run("totals and distinct counts", func(t *testing.T) {
		items := []parser.LineItem{
			{SKU: "AB-100", HTS: "8302.41.60", CountryOfOrigin: "MX",
				Quantity: 25, Value: 333.97, NetWeight: 10, GrossWeight: 12},
			{SKU: "AB-100", HTS: "8302.41.60", CountryOfOrigin: "MX",
				Quantity: 25, Value: 333.97, NetWeight: 10, GrossWeight: 12},
			{SKU: "CD-200", HTS: "8302.10.90", CountryOfOrigin: "CN",
				Quantity: 4, Value: 10, NetWeight: 4, GrossWeight: 4.2},
		}

		stats := summary.Calculate(items)

		assert.Equal(t, 3, stats.ItemCount)
		assert.Equal(t, 54.0, stats.TotalQuantity)
		assert.Equal(t, 677.94, stats.TotalValue)
		assert.Equal(t, 24.0, stats.TotalNetWeight)
		assert.Equal(t, 28.2, stats.TotalGrossWeight)
		assert.Equal(t, 2, stats.DistinctSKUCount)
		assert.Equal(t, 2, stats.DistinctHTSCount)
		assert.Equal(t, 2, stats.DistinctOrigins)
	})

	t.Run("blank HTS and origin are not counted", func(t *testing.T) {
		items := []parser.LineItem{
			{SKU: "AB-100", Quantity: 1, Value: 1},
			{SKU: "CD-200", HTS: "8302.10.90", CountryOfOrigin: "CN", Quantity: 1, Value: 1},
		}

		stats := summary.Calculate(items)

		assert.Equal(t, 1, stats.DistinctHTSCount)
		assert.Equal(t, 1, stats.DistinctOrigins)
		assert.Equal(t, 2, stats.DistinctSKUCount)
	})

	t.Run("empty input", func(t *testing.T) {
		stats := summary.Calculate(nil)
		assert.Zero(t, stats.ItemCount)
		assert.Zero(t, stats.TotalValue)
		assert.Zero(t, stats.DistinctSKUCount)
	})

	t.Run("totals survive aggregation unchanged", func(t *testing.T) {
		// Repeating decimal-cent values is exactly where float accumulation
		// would diverge between the raw and aggregated paths.
		var items []parser.LineItem
		for i := 0; i < 50; i++ {
			items = append(items, parser.LineItem{
				SKU:             fmt.Sprintf("SKU-%02d", i%7),
				HTS:             "8302.41.60",
				CountryOfOrigin: "MX",
				Quantity:        3.3,
				Value:           10.01,
				NetWeight:       0.7,
				GrossWeight:     0.9,
			})
		}

		raw := summary.Calculate(items)

		merged, _, err := aggregator.Aggregate(items, aggregator.Options{})
		require.NoError(t, err)
		agg := summary.Calculate(merged)

		assert.Equal(t, raw.TotalQuantity, agg.TotalQuantity)
		assert.Equal(t, raw.TotalValue, agg.TotalValue)
		assert.Equal(t, raw.TotalNetWeight, agg.TotalNetWeight)
		assert.Equal(t, raw.TotalGrossWeight, agg.TotalGrossWeight)
		assert.Equal(t, raw.DistinctSKUCount, agg.DistinctSKUCount)
		assert.Equal(t, 7, agg.ItemCount)
	})
}
