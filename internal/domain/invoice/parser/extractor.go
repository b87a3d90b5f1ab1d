package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/codes"
)

// extract builds a LineItem from one raw row. A nil item means the row was
// skipped: entirely blank, blank SKU, or a required numeric cell that could
// not be parsed. Skips are never errors; warnings carry non-fatal data
// quality findings for the row.
func (p *Parser) extract(row []string, rowNum int) (*LineItem, []string) {
	if isBlankRow(row) {
		return nil, nil
	}

	getCell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	sku := getCell(p.layout.SKU)
	if sku == "" {
		return nil, nil
	}

	// Quantity and value are required: blank or unparseable skips the row.
	quantity, ok := cleanNumeric(getCell(p.layout.Quantity))
	if !ok {
		return nil, nil
	}
	value, ok := cleanNumeric(getCell(p.layout.Value))
	if !ok {
		return nil, nil
	}

	// Weights and unit price default to zero when blank, but garbage in a
	// non-blank cell still skips the row.
	netWeight, ok := optionalNumeric(getCell(p.layout.NetWeight))
	if !ok {
		return nil, nil
	}
	grossWeight, ok := optionalNumeric(getCell(p.layout.GrossWeight))
	if !ok {
		return nil, nil
	}
	unitPrice, ok := optionalNumeric(getCell(p.layout.UnitPrice))
	if !ok {
		return nil, nil
	}

	origin := codes.Country(getCell(p.layout.CountryOfOrigin))
	unit := codes.Unit(getCell(p.layout.QtyUnit))

	item := &LineItem{
		SKU:             sku,
		Description:     getCell(p.layout.Description),
		HTS:             getCell(p.layout.HTS),
		CountryOfOrigin: origin.Code,
		Quantity:        quantity,
		QtyUnit:         unit.Code,
		NetWeight:       netWeight,
		GrossWeight:     grossWeight,
		UnitPrice:       unitPrice,
		Value:           value,
	}

	return item, p.validate(item, origin, unit, rowNum)
}

// validate collects non-fatal data quality findings for an extracted item.
func (p *Parser) validate(item *LineItem, origin, unit codes.Conversion, rowNum int) []string {
	var warnings []string

	if origin.Code != "" && !origin.Known {
		warnings = append(warnings, fmt.Sprintf("row %d: unmapped origin code %q", rowNum, origin.Code))
	}
	if unit.Code != "" && !unit.Known {
		warnings = append(warnings, fmt.Sprintf("row %d: unmapped unit code %q", rowNum, unit.Code))
	}
	if item.HTS == "" {
		warnings = append(warnings, fmt.Sprintf("row %d: missing HTS code", rowNum))
	}
	if item.CountryOfOrigin == "" {
		warnings = append(warnings, fmt.Sprintf("row %d: missing country of origin", rowNum))
	}
	if item.Quantity <= 0 {
		warnings = append(warnings, fmt.Sprintf("row %d: non-positive quantity %g", rowNum, item.Quantity))
	}
	if item.Value < 0 {
		warnings = append(warnings, fmt.Sprintf("row %d: negative value %g", rowNum, item.Value))
	}

	return warnings
}

// cleanNumeric strips currency symbols, spaces, thousands separators and any
// other decoration, then parses the remainder as a float. ok is false for
// blank input or when nothing parseable remains.
func cleanNumeric(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// optionalNumeric treats a blank cell as zero; non-blank cells must parse.
func optionalNumeric(raw string) (float64, bool) {
	if raw == "" {
		return 0, true
	}
	return cleanNumeric(raw)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
