// Package aggregator merges invoice line items that share a SKU into one
// summed record per SKU.
package aggregator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
)

// Strictness controls how descriptive-field disagreements inside a SKU group
// are handled.
type Strictness int

const (
	// TakeFirst silently keeps the first occurrence's descriptive fields.
	TakeFirst Strictness = iota
	// Warn keeps the first occurrence but reports each disagreement.
	Warn
	// Fail aborts aggregation on the first disagreement.
	Fail
)

func (s Strictness) String() string {
	switch s {
	case TakeFirst:
		return "first"
	case Warn:
		return "warn"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("strictness(%d)", int(s))
	}
}

// ParseStrictness maps a config string to a Strictness level.
func ParseStrictness(s string) (Strictness, error) {
	switch s {
	case "", "first":
		return TakeFirst, nil
	case "warn":
		return Warn, nil
	case "fail":
		return Fail, nil
	default:
		return TakeFirst, fmt.Errorf("unknown strictness %q (want first, warn or fail)", s)
	}
}

// Options configures an aggregation pass.
type Options struct {
	Strictness Strictness
}

// Mismatch reports a SKU group whose members disagree on a descriptive field.
type Mismatch struct {
	SKU   string `json:"sku"`
	Field string `json:"field"`
	Kept  string `json:"kept"`
	Seen  string `json:"seen"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("sku %s: %s mismatch: kept %q, also saw %q", m.SKU, m.Field, m.Kept, m.Seen)
}

// group accumulates one SKU's rows with exact decimal sums. Float summation
// drifts across the hundreds of rows some workbooks repeat a SKU over.
type group struct {
	item        parser.LineItem
	quantity    decimal.Decimal
	value       decimal.Decimal
	netWeight   decimal.Decimal
	grossWeight decimal.Decimal
}

// Aggregate merges items sharing a SKU. Groups keep first-seen order and the
// first occurrence's descriptive fields. Quantity, value and weights are
// summed; unit price is recomputed as value/quantity (zero when the summed
// quantity is zero). Line numbers are reassigned 1..N over the result.
//
// Under TakeFirst and Warn the returned error is always nil; under Fail the
// first descriptive mismatch aborts with an error wrapping the Mismatch
// detail. The input slice is not modified.
func Aggregate(items []parser.LineItem, opts Options) ([]parser.LineItem, []Mismatch, error) {
	groups := make(map[string]*group, len(items))
	order := make([]string, 0, len(items))
	var mismatches []Mismatch

	for _, item := range items {
		g, seen := groups[item.SKU]
		if !seen {
			groups[item.SKU] = &group{
				item:        item,
				quantity:    decimal.NewFromFloat(item.Quantity),
				value:       decimal.NewFromFloat(item.Value),
				netWeight:   decimal.NewFromFloat(item.NetWeight),
				grossWeight: decimal.NewFromFloat(item.GrossWeight),
			}
			order = append(order, item.SKU)
			continue
		}

		g.quantity = g.quantity.Add(decimal.NewFromFloat(item.Quantity))
		g.value = g.value.Add(decimal.NewFromFloat(item.Value))
		g.netWeight = g.netWeight.Add(decimal.NewFromFloat(item.NetWeight))
		g.grossWeight = g.grossWeight.Add(decimal.NewFromFloat(item.GrossWeight))

		if opts.Strictness == TakeFirst {
			continue
		}
		for _, m := range describeMismatches(g.item, item) {
			if opts.Strictness == Fail {
				return nil, nil, fmt.Errorf("aggregate: %s", m)
			}
			mismatches = append(mismatches, m)
		}
	}

	merged := make([]parser.LineItem, 0, len(order))
	for i, sku := range order {
		g := groups[sku]
		item := g.item
		item.LineNumber = i + 1
		item.Quantity = g.quantity.InexactFloat64()
		item.Value = g.value.InexactFloat64()
		item.NetWeight = g.netWeight.InexactFloat64()
		item.GrossWeight = g.grossWeight.InexactFloat64()
		if g.quantity.IsZero() {
			item.UnitPrice = 0
		} else {
			item.UnitPrice = g.value.Div(g.quantity).InexactFloat64()
		}
		merged = append(merged, item)
	}

	return merged, mismatches, nil
}

// describeMismatches compares the descriptive fields of two rows in the same
// SKU group.
func describeMismatches(kept, seen parser.LineItem) []Mismatch {
	fields := []struct {
		name       string
		kept, seen string
	}{
		{"description", kept.Description, seen.Description},
		{"hts", kept.HTS, seen.HTS},
		{"country_of_origin", kept.CountryOfOrigin, seen.CountryOfOrigin},
		{"qty_unit", kept.QtyUnit, seen.QtyUnit},
	}

	var out []Mismatch
	for _, f := range fields {
		if f.kept != f.seen {
			out = append(out, Mismatch{SKU: kept.SKU, Field: f.name, Kept: f.kept, Seen: f.seen})
		}
	}
	return out
}
