package domain

import "errors"

var (
	// ErrSourceNotFound is returned when the dataset file does not exist
	ErrSourceNotFound = errors.New("dataset source not found")

	// ErrEmptyDataset is returned when a source holds no records
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrMalformedSource is returned when a source is missing columns or has unparsable values
	ErrMalformedSource = errors.New("malformed dataset source")

	// ErrInvalidDateRange is returned when start is after end or a bound cannot be parsed
	ErrInvalidDateRange = errors.New("invalid date range")

	ErrUnknownVariant = errors.New("unknown report variant")
	ErrUnknownChart   = errors.New("unknown chart")

	// ErrNoChartData is returned when an aggregate has nothing to draw
	ErrNoChartData = errors.New("no chart data")
)
