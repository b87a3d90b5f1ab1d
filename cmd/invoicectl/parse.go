package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/aggregator"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/exporter"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/service"
)

func newParseCmd() *cobra.Command {
	var aggregate bool
	var strictness string
	var out string

	c := &cobra.Command{
		Use:   "parse <workbook.xlsx>",
		Short: "Parse an invoice workbook and print the result as JSON",
		Long: `Parse extracts the line items from a fixed-layout invoice workbook,
normalizes country and unit codes, and prints the result as JSON on stdout.

With --aggregate, rows sharing a SKU are merged into one summed record and
the unit price is recomputed from the summed value and quantity.

With --out, the line items are also written to a CSV or XLSX file, chosen
by the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := aggregator.ParseStrictness(strictness)
			if err != nil {
				return err
			}

			svc := service.NewInvoiceService(nil).WithStrictness(level)
			result, err := svc.ParseFile(cmd.Context(), args[0], service.ParseOptions{Aggregate: aggregate})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}

			if out != "" {
				if err := writeExport(out, result); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "wrote %s\n", out)
			}

			fmt.Fprintf(os.Stderr, "%d items (%d rows parsed, %d skipped), total value %.2f\n",
				len(result.Items), result.ParsedRows, result.SkippedRows, result.Summary.TotalValue)
			return nil
		},
	}

	c.Flags().BoolVarP(&aggregate, "aggregate", "a", false, "merge line items sharing a SKU")
	c.Flags().StringVar(&strictness, "strictness", "first", "aggregation mismatch handling: first, warn or fail")
	c.Flags().StringVarP(&out, "out", "o", "", "also write line items to a .csv or .xlsx file")
	return c
}

func writeExport(path string, result *service.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return exporter.WriteCSV(f, result.Items)
	case ".xlsx":
		return exporter.WriteWorkbook(f, result.Items, result.Metadata, result.Summary)
	default:
		return fmt.Errorf("unsupported output extension %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
