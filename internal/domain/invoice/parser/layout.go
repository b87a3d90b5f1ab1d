package parser

// ColumnLayout maps each extracted field to its 0-based column index in the
// source workbook. The layout is a versioned contract with the upstream
// export format: when the format changes, this struct changes, nothing is
// re-derived at runtime.
type ColumnLayout struct {
	SKU             int
	Description     int
	HTS             int
	CountryOfOrigin int
	Quantity        int
	QtyUnit         int
	NetWeight       int
	GrossWeight     int
	UnitPrice       int
	Value           int

	// HeaderRows is the number of rows before the first data row.
	HeaderRows int
}

// DefaultColumnLayout returns the layout of the current export format.
func DefaultColumnLayout() ColumnLayout {
	return ColumnLayout{
		SKU:             19, // T: part number
		Quantity:        20, // U
		QtyUnit:         21, // V
		Description:     23, // X
		UnitPrice:       25, // Z
		Value:           28, // AC
		NetWeight:       33, // AH
		GrossWeight:     34, // AI
		CountryOfOrigin: 38, // AM
		HTS:             42, // AQ
		HeaderRows:      1,
	}
}

// MetadataLayout maps invoice-level header fields to their 0-based column
// index. The source format repeats these on every row; they are read from
// the first data row only.
type MetadataLayout struct {
	Pedimento     int
	InvoiceNumber int
	COVE          int
	Date          int
	Vendor        int
	Incoterm      int
	Currency      int
	TotalValue    int
}

// DefaultMetadataLayout returns the metadata layout of the current export
// format.
func DefaultMetadataLayout() MetadataLayout {
	return MetadataLayout{
		Pedimento:     0,  // A
		InvoiceNumber: 1,  // B
		COVE:          2,  // C
		Date:          3,  // D
		Vendor:        7,  // H
		Incoterm:      14, // O
		Currency:      15, // P
		TotalValue:    16, // Q
	}
}
