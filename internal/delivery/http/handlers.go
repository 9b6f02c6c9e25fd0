package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/render"
	"github.com/bikeshare/dashboard/internal/repository/flatfile"
	"github.com/bikeshare/dashboard/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	reportSvc *service.ReportService
	renderer  *render.Renderer
}

// NewHandler creates a new handler
func NewHandler(reportSvc *service.ReportService, renderer *render.Renderer) *Handler {
	return &Handler{
		reportSvc: reportSvc,
		renderer:  renderer,
	}
}

// HealthCheck returns service and data source health
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	source := "ok"
	if err := h.reportSvc.Health(ctx); err != nil {
		source = err.Error()
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "bike-rental-dashboard",
		"version": "1.0.0",
		"source": fiber.Map{
			"name":   h.reportSvc.SourceName(),
			"status": source,
		},
	})
}

// GetRange returns the dataset bounds, the default filter interval
func (h *Handler) GetRange(c *fiber.Ctx) error {
	bounds, err := h.reportSvc.Bounds(c.Context())
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"start": bounds.Start.Format(domain.DateLayout),
			"end":   bounds.End.Format(domain.DateLayout),
		},
	})
}

// GetReport returns all five aggregates for the requested range
func (h *Handler) GetReport(c *fiber.Ctx) error {
	req, err := h.parseReportRequest(c)
	if err != nil {
		return toFiberError(err)
	}

	report, err := h.reportSvc.BuildReport(c.Context(), req)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    report,
	})
}

// GetChart renders one chart as PNG; an empty range yields 204
func (h *Handler) GetChart(c *fiber.Ctx) error {
	kind, err := domain.ParseChartKind(c.Params("chart"))
	if err != nil {
		return toFiberError(err)
	}
	req, err := h.parseReportRequest(c)
	if err != nil {
		return toFiberError(err)
	}

	report, err := h.reportSvc.BuildReport(c.Context(), req)
	if err != nil {
		return toFiberError(err)
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, kind, report); err != nil {
		if errors.Is(err, domain.ErrNoChartData) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		slog.ErrorContext(c.Context(), "chart render failed",
			slog.String("chart", string(kind)),
			slog.String("range", report.Range.String()),
			slog.String("error", err.Error()))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render chart")
	}

	c.Type("png")
	return c.Send(buf.Bytes())
}

// GetRecords exports the filtered view as JSON, CSV or XLSX
func (h *Handler) GetRecords(c *fiber.Ctx) error {
	req, err := h.parseReportRequest(c)
	if err != nil {
		return toFiberError(err)
	}

	records, rng, ds, err := h.reportSvc.Records(c.Context(), req)
	if err != nil {
		return toFiberError(err)
	}

	filename := fmt.Sprintf("day_%s_%s", rng.Start.Format(domain.DateLayout), rng.End.Format(domain.DateLayout))
	switch c.Query("format", "json") {
	case "json":
		return c.JSON(fiber.Map{
			"success": true,
			"data":    records,
			"count":   len(records),
			"range":   rng,
		})
	case "csv":
		c.Attachment(filename + ".csv")
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return flatfile.WriteCSV(c, records, ds.ExtraColumns)
	case "xlsx":
		var buf bytes.Buffer
		if err := flatfile.WriteXLSX(&buf, records, ds.ExtraColumns); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to export records")
		}
		c.Attachment(filename + ".xlsx")
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be json, csv or xlsx")
	}
}

// ReloadDataset drops the cached dataset and loads it again
func (h *Handler) ReloadDataset(c *fiber.Ctx) error {
	ds, err := h.reportSvc.Reload(c.Context())
	if err != nil {
		return toFiberError(err)
	}

	bounds, _ := ds.Bounds()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"source": ds.Source,
			"rows":   ds.Len(),
			"start":  bounds.Start.Format(domain.DateLayout),
			"end":    bounds.End.Format(domain.DateLayout),
		},
	})
}

// parseReportRequest reads start, end and variant from the query string
func (h *Handler) parseReportRequest(c *fiber.Ctx) (domain.ReportRequest, error) {
	var req domain.ReportRequest

	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{
		{"start", &req.Start},
		{"end", &req.End},
	} {
		raw := c.Query(bound.name)
		if raw == "" {
			continue
		}
		t, err := domain.ParseDate(raw)
		if err != nil {
			return req, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDateRange, bound.name, err)
		}
		*bound.dst = &t
	}

	variant, err := domain.ParseVariant(c.Query("variant"), h.reportSvc.DefaultVariant())
	if err != nil {
		return req, err
	}
	req.Variant = variant
	return req, nil
}

// toFiberError maps domain errors onto HTTP statuses
func toFiberError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrUnknownVariant):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownChart):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSourceNotFound),
		errors.Is(err, domain.ErrEmptyDataset),
		errors.Is(err, domain.ErrMalformedSource):
		return fiber.NewError(fiber.StatusServiceUnavailable, sourceMessage(err))
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
}

func sourceMessage(err error) string {
	if errors.Is(err, domain.ErrSourceNotFound) {
		return fmt.Sprintf("Data file not found, make sure it exists in the right folder (%v)", err)
	}
	return fmt.Sprintf("Dataset unavailable: %v", err)
}

// ErrorHandler renders fiber errors as the JSON error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
