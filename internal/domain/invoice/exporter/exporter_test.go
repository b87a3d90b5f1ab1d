package exporter_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/exporter"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/summary"
)

var sampleItems = []parser.LineItem{
	{
		LineNumber: 1, SKU: "AB-100", Description: "Widget bracket", HTS: "8302.41.60",
		CountryOfOrigin: "MX", Quantity: 50, QtyUnit: "PCS",
		NetWeight: 20, GrossWeight: 25, UnitPrice: 13.3588, Value: 667.94,
	},
	{
		LineNumber: 2, SKU: "CD-200", Description: "Hinge, stainless", HTS: "8302.10.90",
		CountryOfOrigin: "CN", Quantity: 4, QtyUnit: "KG",
		NetWeight: 4, GrossWeight: 4.2, UnitPrice: 2.5, Value: 10,
	},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exporter.WriteCSV(&buf, sampleItems))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"line_number", "sku", "description", "hts", "country_of_origin",
		"quantity", "qty_unit", "net_weight", "gross_weight", "unit_price", "value",
	}, records[0])

	assert.Equal(t, "AB-100", records[1][1])
	assert.Equal(t, "50", records[1][5])
	assert.Equal(t, "667.94", records[1][10])
	// Embedded comma survives quoting.
	assert.Equal(t, "Hinge, stainless", records[2][2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exporter.WriteCSV(&buf, nil))

	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(out, "line_number,sku,"), "header row expected, got %q", out)
	assert.Equal(t, 1, strings.Count(out, "\n")+1)
}

func TestWriteWorkbook(t *testing.T) {
	meta := parser.Metadata{
		InvoiceNumber: "INV-2024-001",
		Vendor:        "Industrias del Norte SA",
		Currency:      "USD",
		TotalValue:    677.94,
	}
	stats := summary.Calculate(sampleItems)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteWorkbook(&buf, sampleItems, meta, stats))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Line Items", "Metadata", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Line Items")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "SKU", rows[0][1])
	assert.Equal(t, "AB-100", rows[1][1])
	assert.Equal(t, "CD-200", rows[2][1])

	metaRows, err := f.GetRows("Metadata")
	require.NoError(t, err)
	kv := make(map[string]string)
	for _, row := range metaRows {
		if len(row) >= 2 {
			kv[row[0]] = row[1]
		}
	}
	assert.Equal(t, "INV-2024-001", kv["Invoice Number"])
	assert.Equal(t, "USD", kv["Currency"])

	sumRows, err := f.GetRows("Summary")
	require.NoError(t, err)
	kv = make(map[string]string)
	for _, row := range sumRows {
		if len(row) >= 2 {
			kv[row[0]] = row[1]
		}
	}
	assert.Equal(t, "2", kv["Item Count"])
	assert.Equal(t, "2", kv["Distinct SKUs"])
}
