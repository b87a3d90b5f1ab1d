// Package service orchestrates the invoice pipeline: parse, optional SKU
// aggregation, summary statistics.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/aggregator"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/summary"
)

// ParseOptions selects per-request pipeline behavior.
type ParseOptions struct {
	// Aggregate merges line items sharing a SKU into one summed record.
	Aggregate bool
}

// Result is the pipeline output envelope returned to HTTP and CLI callers.
type Result struct {
	JobID       uuid.UUID         `json:"job_id"`
	Items       []parser.LineItem `json:"items"`
	Metadata    parser.Metadata   `json:"metadata"`
	Summary     summary.Stats     `json:"summary"`
	TotalRows   int               `json:"total_rows"`
	ParsedRows  int               `json:"parsed_rows"`
	SkippedRows int               `json:"skipped_rows"`
	Warnings    []string          `json:"warnings,omitempty"`
	Aggregated  bool              `json:"aggregated"`
	ParsedAt    time.Time         `json:"parsed_at"`
}

// InvoiceService runs the extraction pipeline.
type InvoiceService struct {
	parser     *parser.Parser
	strictness aggregator.Strictness
	logger     *slog.Logger
}

// NewInvoiceService creates the pipeline with the default column layout.
func NewInvoiceService(logger *slog.Logger) *InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceService{
		parser: parser.New(parser.DefaultColumnLayout(), logger),
		logger: logger,
	}
}

// WithStrictness sets how descriptive-field disagreements are handled during
// aggregation.
func (s *InvoiceService) WithStrictness(strictness aggregator.Strictness) *InvoiceService {
	s.strictness = strictness
	return s
}

// WithParser overrides the workbook parser, mainly for non-default layouts.
func (s *InvoiceService) WithParser(p *parser.Parser) *InvoiceService {
	s.parser = p
	return s
}

// Parse runs the pipeline over the workbook read from r.
func (s *InvoiceService) Parse(ctx context.Context, r io.Reader, opts ParseOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{
		JobID:       uuid.New(),
		Items:       parsed.Items,
		Metadata:    parsed.Metadata,
		TotalRows:   parsed.TotalRows,
		ParsedRows:  parsed.ParsedRows,
		SkippedRows: parsed.SkippedRows,
		Warnings:    parsed.Warnings,
		ParsedAt:    time.Now().UTC(),
	}

	if opts.Aggregate {
		merged, mismatches, err := aggregator.Aggregate(parsed.Items, aggregator.Options{Strictness: s.strictness})
		if err != nil {
			return nil, err
		}
		result.Items = merged
		result.Aggregated = true
		for _, m := range mismatches {
			result.Warnings = append(result.Warnings, m.String())
		}
	}

	result.Summary = summary.Calculate(result.Items)

	s.logger.InfoContext(ctx, "invoice parsed",
		slog.String("job_id", result.JobID.String()),
		slog.Int("items", len(result.Items)),
		slog.Int("skipped", result.SkippedRows),
		slog.Bool("aggregated", result.Aggregated))

	return result, nil
}

// ParseFile runs the pipeline over a workbook on disk.
func (s *InvoiceService) ParseFile(ctx context.Context, path string, opts ParseOptions) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.Parse(ctx, f, opts)
}
