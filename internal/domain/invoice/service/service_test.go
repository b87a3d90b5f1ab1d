package service_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/invoicetest"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/service"
)

func TestInvoiceService_Parse(t *testing.T) {
	ctx := context.Background()

	t.Run("raw parse keeps duplicate SKUs", func(t *testing.T) {
		wb := sevenRowWorkbook(t)

		result, err := service.NewInvoiceService(nil).Parse(ctx, wb, service.ParseOptions{})
		require.NoError(t, err)

		assert.Len(t, result.Items, 7)
		assert.False(t, result.Aggregated)
		assert.NotEqual(t, uuid.Nil, result.JobID)
		assert.False(t, result.ParsedAt.IsZero())
	})

	t.Run("aggregated parse collapses a repeated SKU", func(t *testing.T) {
		wb := sevenRowWorkbook(t)

		result, err := service.NewInvoiceService(nil).Parse(ctx, wb, service.ParseOptions{Aggregate: true})
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		assert.True(t, result.Aggregated)

		got := result.Items[0]
		assert.Equal(t, "*233C8U", got.SKU)
		assert.InDelta(t, 175.0, got.Quantity, 1e-9)
		assert.InDelta(t, 2337.79, got.Value, 1e-9)
		assert.InDelta(t, 13.3588, got.UnitPrice, 1e-4)

		assert.Equal(t, 1, result.Summary.ItemCount)
		assert.InDelta(t, 2337.79, result.Summary.TotalValue, 1e-9)
	})

	t.Run("aggregation preserves totals across many SKUs", func(t *testing.T) {
		// 202 rows over 119 distinct SKUs: 83 SKUs appear twice, 36 once.
		var lines []invoicetest.Line
		addLine := func(i int) {
			lines = append(lines, invoicetest.Line{
				SKU:      fmt.Sprintf("PART-%03d", i),
				HTS:      "8302.41.60",
				Origin:   "MEX",
				Unit:     "PZS",
				Quantity: float64(i + 1),
				Value:    float64(i+1) * 2.5,
			})
		}
		for i := 0; i < 119; i++ {
			addLine(i)
		}
		for i := 0; i < 83; i++ {
			addLine(i)
		}
		require.Len(t, lines, 202)

		svc := service.NewInvoiceService(nil)

		raw, err := svc.Parse(ctx, invoicetest.Workbook(t, lines), service.ParseOptions{})
		require.NoError(t, err)
		require.Len(t, raw.Items, 202)

		agg, err := svc.Parse(ctx, invoicetest.Workbook(t, lines), service.ParseOptions{Aggregate: true})
		require.NoError(t, err)
		require.Len(t, agg.Items, 119)

		assert.Equal(t, raw.Summary.TotalQuantity, agg.Summary.TotalQuantity)
		assert.Equal(t, raw.Summary.TotalValue, agg.Summary.TotalValue)
		assert.Equal(t, raw.Summary.DistinctSKUCount, agg.Summary.DistinctSKUCount)
		assert.Equal(t, 119, agg.Summary.ItemCount)
	})

	t.Run("parse errors pass through", func(t *testing.T) {
		wb := invoicetest.Workbook(t, []invoicetest.Line{
			{Description: "sku-less row", Quantity: 1.0, Value: 2.0},
		})

		_, err := service.NewInvoiceService(nil).Parse(ctx, wb, service.ParseOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, parser.ErrAllRowsSkipped)
	})

	t.Run("cancelled context aborts before parsing", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := service.NewInvoiceService(nil).Parse(cancelled, bytes.NewReader(nil), service.ParseOptions{})
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("parses a workbook from disk", func(t *testing.T) {
		wb := sevenRowWorkbook(t)
		path := filepath.Join(t.TempDir(), "invoice.xlsx")
		require.NoError(t, os.WriteFile(path, wb.Bytes(), 0o644))

		result, err := service.NewInvoiceService(nil).ParseFile(ctx, path, service.ParseOptions{})
		require.NoError(t, err)
		assert.Len(t, result.Items, 7)

		_, err = service.NewInvoiceService(nil).ParseFile(ctx, filepath.Join(t.TempDir(), "missing.xlsx"), service.ParseOptions{})
		require.Error(t, err)
	})

	t.Run("metadata flows into the result", func(t *testing.T) {
		layout := parser.DefaultColumnLayout()
		wb := invoicetest.WorkbookFromCells(t, []map[int]any{{
			1: "INV-2024-001", 15: "USD",
			layout.SKU: "AB-100", layout.Quantity: 1.0, layout.Value: 2.0,
		}})

		result, err := service.NewInvoiceService(nil).Parse(ctx, wb, service.ParseOptions{})
		require.NoError(t, err)
		assert.Equal(t, "INV-2024-001", result.Metadata.InvoiceNumber)
		assert.Equal(t, "USD", result.Metadata.Currency)
	})
}

// sevenRowWorkbook repeats one SKU across seven rows; quantities sum to 175
// and values to 2337.79.
func sevenRowWorkbook(t testing.TB) *bytes.Buffer {
	t.Helper()
	rows := []struct {
		qty   float64
		value float64
	}{
		{25, 333.97},
		{25, 333.97},
		{25, 333.97},
		{25, 333.97},
		{25, 333.97},
		{25, 333.97},
		{25, 333.97},
	}
	lines := make([]invoicetest.Line, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, invoicetest.Line{
			SKU:         "*233C8U",
			Description: "Retainer clip",
			HTS:         "8302.41.60",
			Origin:      "MEX",
			Unit:        "PZS",
			Quantity:    r.qty,
			UnitPrice:   13.3588,
			Value:       r.value,
			NetWeight:   2.5,
			GrossWeight: 2.8,
		})
	}
	return invoicetest.Workbook(t, lines)
}
