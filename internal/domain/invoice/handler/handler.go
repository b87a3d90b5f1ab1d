// Package handler exposes the invoice pipeline over HTTP.
package handler

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/exporter"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/parser"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/service"
)

//go:embed upload.html
var uploadPage []byte

// Handler serves the invoice extraction endpoints.
type Handler struct {
	svc            *service.InvoiceService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewHandler wires the pipeline service to HTTP. maxUploadBytes caps the
// multipart request body; zero means 32 MiB.
func NewHandler(svc *service.InvoiceService, logger *slog.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	return &Handler{svc: svc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Routes returns the invoice sub-router, meant to be mounted under
// /api/v1/invoice.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/parse", h.Parse)
	r.Post("/export", h.Export)
	return r
}

// UploadPage serves the drag-and-drop upload form.
func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(uploadPage)
}

// Parse accepts a multipart upload under the "file" field and returns the
// extraction result as JSON. The optional "aggregate" field switches on SKU
// aggregation.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.runPipeline(r)
	if err != nil {
		h.renderError(w, r, err)
		parsesTotal.WithLabelValues("error").Inc()
		return
	}

	parsesTotal.WithLabelValues("ok").Inc()
	parseDuration.Observe(time.Since(start).Seconds())
	parsedItems.Add(float64(len(result.Items)))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// Export runs the pipeline and streams the result back as a CSV or XLSX
// attachment, selected by the "format" form field.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.runPipeline(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = "csv"
	}
	filename := fmt.Sprintf("invoice-%s.%s", result.JobID, format)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		err = exporter.WriteCSV(w, result.Items)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		err = exporter.WriteWorkbook(w, result.Items, result.Metadata, result.Summary)
	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorBody{Error: fmt.Sprintf("unsupported export format %q (want csv or xlsx)", format)})
		return
	}
	if err != nil {
		// Headers are already out; all we can do is log.
		h.logger.Error("export write failed", slog.String("format", format), slog.Any("error", err))
		return
	}
	exportsTotal.WithLabelValues(format).Inc()
}

// runPipeline reads the uploaded workbook from the request and runs the
// extraction service over it.
func (h *Handler) runPipeline(r *http.Request) (*service.Result, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, badRequestError{fmt.Errorf("missing or unreadable \"file\" upload field: %w", err)}
	}
	defer file.Close()

	aggregate, _ := strconv.ParseBool(r.FormValue("aggregate"))

	h.logger.Info("workbook upload",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
		slog.Bool("aggregate", aggregate))

	return h.svc.Parse(r.Context(), file, service.ParseOptions{Aggregate: aggregate})
}

type errorBody struct {
	Error string `json:"error"`
}

// badRequestError marks request-shape failures apart from pipeline failures.
type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var badReq badRequestError
	var status int
	switch {
	case errors.As(err, &badReq),
		errors.Is(err, parser.ErrInvalidWorkbook),
		errors.Is(err, parser.ErrNoWorksheet),
		errors.Is(err, parser.ErrEmptySheet):
		status = http.StatusBadRequest
	case errors.Is(err, parser.ErrAllRowsSkipped):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("parse request failed", slog.Any("error", err))
	} else {
		h.logger.Warn("parse request rejected", slog.Int("status", status), slog.Any("error", err))
	}

	render.Status(r, status)
	render.JSON(w, r, errorBody{Error: err.Error()})
}
