package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/bikeshare/dashboard/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var chartTitles = map[domain.ChartKind]string{
	domain.ChartTrend:       "Bike usage trend",
	domain.ChartSeasons:     "Effect of season on rentals",
	domain.ChartWeekdays:    "Average rentals by weekday",
	domain.ChartWindspeed:   "Windspeed and rentals",
	domain.ChartCorrelation: "Weather factors and rentals",
}

type chartLink struct {
	Title string
	URL   string
}

type pageData struct {
	Title      string
	Error      string
	RangeError string
	Start      string
	End        string
	Min        string
	Max        string
	Variant    domain.Variant
	Variants   []domain.Variant
	Days       int
	CSVURL     string
	Charts     []chartLink
}

// Index renders the dashboard page: date-range form, validation messages and chart images
func (h *Handler) Index(c *fiber.Ctx) error {
	data := pageData{
		Title:    "Bike Rental Trends",
		Variant:  h.reportSvc.DefaultVariant(),
		Variants: []domain.Variant{domain.VariantDaily, domain.VariantMonthly},
	}

	bounds, err := h.reportSvc.Bounds(c.Context())
	if err != nil {
		data.Error = sourceMessage(err)
		return h.page(c, fiber.StatusServiceUnavailable, data)
	}
	data.Min = bounds.Start.Format(domain.DateLayout)
	data.Max = bounds.End.Format(domain.DateLayout)
	data.Start, data.End = data.Min, data.Max

	status := fiber.StatusOK
	req, err := h.parseReportRequest(c)
	if err == nil {
		if req.Start != nil {
			data.Start = req.Start.Format(domain.DateLayout)
		}
		if req.End != nil {
			data.End = req.End.Format(domain.DateLayout)
		}
		data.Variant = req.Variant

		var report domain.Report
		report, err = h.reportSvc.BuildReport(c.Context(), req)
		if err == nil {
			data.Days = report.Days
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrUnknownVariant):
		data.RangeError = err.Error()
		status = fiber.StatusBadRequest
	default:
		data.Error = sourceMessage(err)
		return h.page(c, fiber.StatusServiceUnavailable, data)
	}

	if data.RangeError == "" && data.Days > 0 {
		q := url.Values{}
		q.Set("start", data.Start)
		q.Set("end", data.End)
		q.Set("variant", string(data.Variant))
		query := q.Encode()
		data.CSVURL = "/api/v1/records?" + query + "&format=csv"
		for _, kind := range domain.ChartKinds {
			data.Charts = append(data.Charts, chartLink{
				Title: chartTitles[kind],
				URL:   "/api/v1/charts/" + string(kind) + "?" + query,
			})
		}
	}

	return h.page(c, status, data)
}

func (h *Handler) page(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
