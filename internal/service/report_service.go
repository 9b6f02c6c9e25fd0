package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/metrics"
)

// ReportService filters the cached dataset and builds the dashboard aggregates
type ReportService struct {
	cache          *DatasetCache
	metrics        *metrics.Recorder
	defaultVariant domain.Variant
}

// NewReportService creates a new report service
func NewReportService(cache *DatasetCache, rec *metrics.Recorder, defaultVariant domain.Variant) *ReportService {
	if defaultVariant == "" {
		defaultVariant = domain.VariantDaily
	}
	return &ReportService{
		cache:          cache,
		metrics:        rec,
		defaultVariant: defaultVariant,
	}
}

// DefaultVariant returns the variant used when a request names none
func (s *ReportService) DefaultVariant() domain.Variant {
	return s.defaultVariant
}

// Dataset returns the cached dataset
func (s *ReportService) Dataset(ctx context.Context) (*domain.Dataset, error) {
	ds, err := s.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: load dataset: %w", err)
	}
	return ds, nil
}

// Bounds returns the default interval: the dataset's first and last dates
func (s *ReportService) Bounds(ctx context.Context) (domain.DateRange, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.DateRange{}, err
	}
	bounds, ok := ds.Bounds()
	if !ok {
		return domain.DateRange{}, fmt.Errorf("report: %w", domain.ErrEmptyDataset)
	}
	return bounds, nil
}

// Records returns the filtered view for req along with the resolved range
func (s *ReportService) Records(ctx context.Context, req domain.ReportRequest) ([]domain.DailyRentalRecord, domain.DateRange, *domain.Dataset, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, domain.DateRange{}, nil, err
	}
	bounds, ok := ds.Bounds()
	if !ok {
		return nil, domain.DateRange{}, nil, fmt.Errorf("report: %w", domain.ErrEmptyDataset)
	}

	rng, err := ResolveRange(bounds, req.Start, req.End)
	if err != nil {
		return nil, domain.DateRange{}, nil, err
	}
	records, err := Filter(ds, rng)
	if err != nil {
		return nil, domain.DateRange{}, nil, err
	}
	return records, rng, ds, nil
}

// BuildReport filters the dataset to the requested range and computes every aggregate
func (s *ReportService) BuildReport(ctx context.Context, req domain.ReportRequest) (domain.Report, error) {
	variant := req.Variant
	if variant == "" {
		variant = s.defaultVariant
	}

	records, rng, _, err := s.Records(ctx, req)
	s.metrics.ReportBuilt(string(variant), err)
	if err != nil {
		return domain.Report{}, err
	}

	report := Aggregate(records, rng, variant)
	slog.DebugContext(ctx, "report built",
		slog.String("range", rng.String()),
		slog.String("variant", string(variant)),
		slog.Int("days", report.Days))
	return report, nil
}

// Reload drops the cached dataset and loads it again
func (s *ReportService) Reload(ctx context.Context) (*domain.Dataset, error) {
	ds, err := s.cache.Reload(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: reload dataset: %w", err)
	}
	return ds, nil
}

// Health checks the underlying source
func (s *ReportService) Health(ctx context.Context) error {
	return s.cache.Source().Health(ctx)
}

// SourceName describes where the dataset comes from
func (s *ReportService) SourceName() string {
	return s.cache.Source().Describe()
}

// Aggregate computes the five independent aggregates of a filtered view.
// An empty view yields a report with zero days and empty aggregates.
func Aggregate(records []domain.DailyRentalRecord, rng domain.DateRange, variant domain.Variant) domain.Report {
	report := domain.Report{
		Range:       rng,
		Variant:     variant,
		Days:        len(records),
		GeneratedAt: time.Now(),
	}
	if len(records) == 0 {
		return report
	}

	report.Seasons = SeasonTotals(records)
	report.Weekdays = WeekdayAverages(records)
	report.Correlation = WeatherCorrelation(records)

	switch variant {
	case domain.VariantMonthly:
		report.Trend = MonthlyTrend(records)
		report.Windspeed = domain.WindspeedCorrelation{Bins: WindspeedBins(records, WindspeedBinCount)}
	default:
		report.Trend = DailyTrend(records)
		report.Windspeed = WindspeedScatter(records)
	}
	return report
}
