package main

import (
	"log/slog"

	"github.com/avelarde/invoice-extract/internal/domain/invoice/aggregator"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/handler"
	"github.com/avelarde/invoice-extract/internal/domain/invoice/service"
	"github.com/avelarde/invoice-extract/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	// Services
	InvoiceService *service.InvoiceService

	// Handlers
	InvoiceHandler *handler.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	strictness, err := aggregator.ParseStrictness(cfg.Parser.Strictness)
	if err != nil {
		return nil, err
	}

	deps.InvoiceService = service.NewInvoiceService(logger).
		WithStrictness(strictness)

	deps.InvoiceHandler = handler.NewHandler(deps.InvoiceService, logger, cfg.Server.MaxUploadBytes)

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}
