package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/summary"
)

var lineItemHeader = []any{
	"Line", "SKU", "Description", "HTS", "Country of Origin",
	"Quantity", "Unit", "Net Weight", "Gross Weight", "Unit Price", "Value",
}

// WriteWorkbook writes a three-sheet XLSX: Line Items, Metadata and Summary.
func WriteWorkbook(w io.Writer, items []parser.LineItem, meta parser.Metadata, stats summary.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	const itemsSheet = "Line Items"
	if err := f.SetSheetName(f.GetSheetName(0), itemsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(itemsSheet, "A1", &lineItemHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, item := range items {
		row := []any{
			item.LineNumber, item.SKU, item.Description, item.HTS, item.CountryOfOrigin,
			item.Quantity, item.QtyUnit, item.NetWeight, item.GrossWeight, item.UnitPrice, item.Value,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := writeKeyValueSheet(f, "Metadata", [][2]any{
		{"Pedimento", meta.Pedimento},
		{"Invoice Number", meta.InvoiceNumber},
		{"COVE", meta.COVE},
		{"Date", meta.Date},
		{"Vendor", meta.Vendor},
		{"Incoterm", meta.Incoterm},
		{"Currency", meta.Currency},
		{"Total Value", meta.TotalValue},
	}); err != nil {
		return err
	}

	if err := writeKeyValueSheet(f, "Summary", [][2]any{
		{"Item Count", stats.ItemCount},
		{"Total Quantity", stats.TotalQuantity},
		{"Total Value", stats.TotalValue},
		{"Total Net Weight", stats.TotalNetWeight},
		{"Total Gross Weight", stats.TotalGrossWeight},
		{"Distinct SKUs", stats.DistinctSKUCount},
		{"Distinct HTS Codes", stats.DistinctHTSCount},
		{"Distinct Origins", stats.DistinctOrigins},
	}); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeKeyValueSheet(f *excelize.File, name string, pairs [][2]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for i, pair := range pairs {
		row := []any{pair[0], pair[1]}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+1, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}
