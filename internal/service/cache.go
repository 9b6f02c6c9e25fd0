package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/metrics"
)

const datasetKey = "dataset"

// DatasetCache loads the dataset once per process and serves it to every request.
// Concurrent first requests share one load; failed loads are not cached.
type DatasetCache struct {
	source  RentalSource
	metrics *metrics.Recorder
	group   singleflight.Group

	mu         sync.RWMutex
	dataset    *domain.Dataset
	generation uint64
}

// NewDatasetCache creates a cache over source
func NewDatasetCache(source RentalSource, rec *metrics.Recorder) *DatasetCache {
	return &DatasetCache{source: source, metrics: rec}
}

// Source returns the underlying source
func (c *DatasetCache) Source() RentalSource {
	return c.source
}

// Get returns the cached dataset, loading it on first use
func (c *DatasetCache) Get(ctx context.Context) (*domain.Dataset, error) {
	c.mu.RLock()
	ds, gen := c.dataset, c.generation
	c.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	v, err, _ := c.group.Do(datasetKey, func() (interface{}, error) {
		c.mu.RLock()
		cached := c.dataset
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		// the load outlives a single caller's cancellation
		ds, err := c.source.Load(context.WithoutCancel(ctx))
		c.metrics.DatasetLoaded(ds.Len(), err)
		if err != nil {
			slog.ErrorContext(ctx, "dataset load failed",
				slog.String("source", c.source.Describe()),
				slog.String("error", err.Error()))
			return nil, err
		}

		c.mu.Lock()
		if c.generation == gen {
			c.dataset = ds
		}
		c.mu.Unlock()

		bounds, _ := ds.Bounds()
		slog.InfoContext(ctx, "dataset loaded",
			slog.String("source", ds.Source),
			slog.Int("rows", ds.Len()),
			slog.String("range", bounds.String()))
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Dataset), nil
}

// Invalidate drops the cached dataset; the next Get reloads
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	c.dataset = nil
	c.generation++
	c.mu.Unlock()
	c.group.Forget(datasetKey)
}

// Reload invalidates the cache and loads again
func (c *DatasetCache) Reload(ctx context.Context) (*domain.Dataset, error) {
	c.Invalidate()
	return c.Get(ctx)
}
