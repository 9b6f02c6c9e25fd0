package service

import (
	"time"

	"github.com/bikeshare/dashboard/internal/domain"
)

// ResolveRange fills missing bounds from the dataset bounds and validates the result
func ResolveRange(bounds domain.DateRange, start, end *time.Time) (domain.DateRange, error) {
	r := bounds
	if start != nil {
		r.Start = *start
	}
	if end != nil {
		r.End = *end
	}
	return domain.NewDateRange(r.Start, r.End)
}

// Filter returns the records of ds whose date lies within r, both ends inclusive
func Filter(ds *domain.Dataset, r domain.DateRange) ([]domain.DailyRentalRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return ds.Between(r), nil
}
