package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bikeshare/dashboard/internal/metrics"
	"github.com/bikeshare/dashboard/internal/render"
	"github.com/bikeshare/dashboard/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, reportSvc *service.ReportService, renderer *render.Renderer, rec *metrics.Recorder) {
	handler := NewHandler(reportSvc, renderer)

	// Dashboard page
	app.Get("/", handler.Index)

	// Health check
	app.Get("/health", handler.HealthCheck)

	if reg := rec.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/range", handler.GetRange)
		api.Get("/report", handler.GetReport)
		api.Get("/charts/:chart", handler.GetChart)
		api.Get("/records", handler.GetRecords)

		api.Post("/dataset/reload", handler.ReloadDataset)
	}
}
