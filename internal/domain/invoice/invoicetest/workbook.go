// Package invoicetest builds in-memory invoice workbooks for tests.
package invoicetest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
)

// Line describes one invoice data row by semantic field. Numeric fields take
// any SetCellValue-compatible value so tests can also write strings into
// numeric cells to exercise skip behavior.
type Line struct {
	SKU         string
	Description string
	HTS         string
	Origin      string
	Unit        string
	Quantity    any
	UnitPrice   any
	Value       any
	NetWeight   any
	GrossWeight any
}

func (l Line) cells() map[int]any {
	layout := parser.DefaultColumnLayout()
	m := make(map[int]any)
	set := func(idx int, v any) {
		if v == nil {
			return
		}
		if s, ok := v.(string); ok && s == "" {
			return
		}
		m[idx] = v
	}
	set(layout.SKU, l.SKU)
	set(layout.Description, l.Description)
	set(layout.HTS, l.HTS)
	set(layout.CountryOfOrigin, l.Origin)
	set(layout.QtyUnit, l.Unit)
	set(layout.Quantity, l.Quantity)
	set(layout.UnitPrice, l.UnitPrice)
	set(layout.Value, l.Value)
	set(layout.NetWeight, l.NetWeight)
	set(layout.GrossWeight, l.GrossWeight)
	return m
}

// Workbook builds an XLSX workbook with one header row followed by the given
// data rows.
func Workbook(t testing.TB, lines []Line) *bytes.Buffer {
	t.Helper()
	rows := make([]map[int]any, len(lines))
	for i, l := range lines {
		rows[i] = l.cells()
	}
	return WorkbookFromCells(t, rows)
}

// WorkbookFromCells builds an XLSX workbook from raw cell maps keyed by
// 0-based column index, one map per data row. An empty map produces a blank
// row. Row 1 is a header row.
func WorkbookFromCells(t testing.TB, rows []map[int]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(sheet, "A1", "Pedimento"))

	for r, cells := range rows {
		for col, v := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}
