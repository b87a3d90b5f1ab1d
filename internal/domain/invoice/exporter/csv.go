// Package exporter renders extraction results as downloadable CSV and XLSX
// files.
package exporter

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
)

// WriteCSV writes the line items as CSV with a header row. Column order
// follows the csv struct tags on LineItem; an empty slice still emits the
// header so downstream spreadsheet tooling gets a well-formed file.
func WriteCSV(w io.Writer, items []parser.LineItem) error {
	if items == nil {
		items = []parser.LineItem{}
	}
	if err := gocsv.Marshal(items, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
