package memory

import (
	"context"
	"sync/atomic"

	"github.com/bikeshare/dashboard/internal/domain"
)

// Repository implements domain.RentalSource over records held in memory.
// It backs tests and demo mode.
type Repository struct {
	records []domain.DailyRentalRecord
	extras  []string
	err     error
	loads   atomic.Int64
}

// NewRepository creates an in-memory source
func NewRepository(records []domain.DailyRentalRecord, extras ...string) *Repository {
	return &Repository{records: records, extras: extras}
}

// NewFailingRepository creates a source whose loads fail with err
func NewFailingRepository(err error) *Repository {
	return &Repository{err: err}
}

// Load returns a dataset over the held records
func (r *Repository) Load(ctx context.Context) (*domain.Dataset, error) {
	r.loads.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	if len(r.records) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	return domain.NewDataset(r.records, r.Describe(), r.extras), nil
}

// Loads returns how many times Load was called
func (r *Repository) Loads() int64 {
	return r.loads.Load()
}

// Describe names the source
func (r *Repository) Describe() string {
	return "memory"
}

// Health returns the configured failure, nil otherwise
func (r *Repository) Health(ctx context.Context) error {
	return r.err
}
