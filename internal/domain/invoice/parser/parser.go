// Package parser extracts normalized line items from the fixed-layout
// invoice workbooks produced by the upstream customs system. Column
// positions are a versioned contract (see ColumnLayout), not discovered from
// headers.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Parser reads invoice workbooks using a fixed column layout. It holds no
// per-parse state: concurrent Parse calls over different sources are safe.
type Parser struct {
	layout ColumnLayout
	meta   MetadataLayout
	logger *slog.Logger
}

// New creates a parser for the given layout.
func New(layout ColumnLayout, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		layout: layout,
		meta:   DefaultMetadataLayout(),
		logger: logger,
	}
}

// Parse reads the workbook from r and extracts its line items in source row
// order, assigning line numbers 1..N over the emitted items. Rows with
// defects are skipped and counted; a workbook whose data rows are all
// skipped fails with ErrAllRowsSkipped.
func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoWorksheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrEmptySheet)
	}

	result := &ParseResult{Items: make([]LineItem, 0, len(rows))}

	if len(rows) > p.layout.HeaderRows {
		result.Metadata = p.extractMetadata(rows[p.layout.HeaderRows])
	}

	for i := p.layout.HeaderRows; i < len(rows); i++ {
		result.TotalRows++

		item, warnings := p.extract(rows[i], i+1)
		if item == nil {
			result.SkippedRows++
			continue
		}

		result.Warnings = append(result.Warnings, warnings...)
		item.LineNumber = len(result.Items) + 1
		result.Items = append(result.Items, *item)
		result.ParsedRows++
	}

	if result.TotalRows > 0 && result.ParsedRows == 0 {
		return nil, fmt.Errorf("%w: %d data rows read, none parseable (column layout mismatch against source format?)",
			ErrAllRowsSkipped, result.TotalRows)
	}

	p.logger.Debug("workbook parsed",
		slog.String("sheet", sheet),
		slog.Int("parsed", result.ParsedRows),
		slog.Int("skipped", result.SkippedRows))

	return result, nil
}

// extractMetadata reads the invoice-level header fields from the first data
// row. The source repeats them on every row, so the first is authoritative.
func (p *Parser) extractMetadata(row []string) Metadata {
	getCell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	m := Metadata{
		Pedimento:     getCell(p.meta.Pedimento),
		InvoiceNumber: getCell(p.meta.InvoiceNumber),
		COVE:          getCell(p.meta.COVE),
		Date:          getCell(p.meta.Date),
		Vendor:        getCell(p.meta.Vendor),
		Incoterm:      getCell(p.meta.Incoterm),
		Currency:      getCell(p.meta.Currency),
	}
	if v, ok := cleanNumeric(getCell(p.meta.TotalValue)); ok {
		m.TotalValue = v
	}
	return m
}
