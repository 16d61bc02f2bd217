package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/uniform-stock/internal/application/inventory"
	"github.com/jhoicas/uniform-stock/internal/application/ports"
	"github.com/jhoicas/uniform-stock/internal/application/report"
	"github.com/jhoicas/uniform-stock/internal/domain/invoice"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/metrics"
)

// RouterDeps are the router's dependencies.
type RouterDeps struct {
	Inventory *inventory.UseCase
	Reports   *report.UseCase
	OCR       ports.OCRService
	Extractor *invoice.Extractor
	Metrics   *metrics.Metrics
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Inventory: entries, exits, barcode lookup
	inv := api.Group("/inventory")
	entryHandler := NewEntryHandler(deps.Inventory, deps.OCR, deps.Extractor, deps.Metrics)
	exitHandler := NewExitHandler(deps.Inventory, deps.Metrics)
	inv.Post("/entries", entryHandler.Register)
	inv.Post("/exits", exitHandler.Register)
	inv.Get("/products/:code", exitHandler.Lookup)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Inventory)
	api.Get("/dashboard", dashboardHandler.Get)

	// Reports
	reportHandler := NewReportHandler(deps.Reports, deps.Metrics)
	api.Get("/reports", reportHandler.Generate)
}
