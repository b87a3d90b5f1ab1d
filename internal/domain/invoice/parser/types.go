package parser

import "errors"

// LineItem is one normalized invoice line. The json field names are a fixed
// contract with the web and CLI collaborators; the csv tags drive the CSV
// exporter.
type LineItem struct {
	LineNumber      int     `json:"line_number" csv:"line_number"`
	SKU             string  `json:"sku" csv:"sku"`
	Description     string  `json:"description" csv:"description"`
	HTS             string  `json:"hts" csv:"hts"`
	CountryOfOrigin string  `json:"country_of_origin" csv:"country_of_origin"`
	Quantity        float64 `json:"quantity" csv:"quantity"`
	QtyUnit         string  `json:"qty_unit" csv:"qty_unit"`
	NetWeight       float64 `json:"net_weight" csv:"net_weight"`
	GrossWeight     float64 `json:"gross_weight" csv:"gross_weight"`
	UnitPrice       float64 `json:"unit_price" csv:"unit_price"`
	Value           float64 `json:"value" csv:"value"`
}

// Metadata holds the invoice-level header fields read from the first data
// row. All fields are optional; missing cells stay zero-valued.
type Metadata struct {
	Pedimento     string  `json:"pedimento,omitempty"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	COVE          string  `json:"cove,omitempty"`
	Date          string  `json:"date,omitempty"`
	Vendor        string  `json:"vendor,omitempty"`
	Incoterm      string  `json:"incoterm,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	TotalValue    float64 `json:"total_value,omitempty"`
}

// ParseResult contains the extracted line items and per-parse diagnostics.
type ParseResult struct {
	Items       []LineItem
	Metadata    Metadata
	TotalRows   int // data rows seen
	ParsedRows  int
	SkippedRows int
	Warnings    []string
}

var (
	// ErrInvalidWorkbook means the input could not be opened as an XLSX
	// workbook at all.
	ErrInvalidWorkbook = errors.New("invalid workbook")

	// ErrNoWorksheet means the workbook contains no sheets.
	ErrNoWorksheet = errors.New("workbook has no worksheets")

	// ErrEmptySheet means the first sheet contains no rows at all.
	ErrEmptySheet = errors.New("worksheet is empty")

	// ErrAllRowsSkipped means data rows were present but none produced a
	// line item. This almost always indicates a column layout mismatch
	// against a changed source format, so it is fatal rather than an empty
	// result.
	ErrAllRowsSkipped = errors.New("all rows skipped")
)
