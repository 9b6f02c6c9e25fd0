package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/repository/memory"
)

func ptr(t time.Time) *time.Time { return &t }

func TestResolveRange(t *testing.T) {
	bounds := domain.DateRange{Start: day("2011-01-01"), End: day("2012-12-31")}

	r, err := ResolveRange(bounds, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, bounds, r)

	r, err = ResolveRange(bounds, ptr(day("2011-03-01")), nil)
	require.NoError(t, err)
	assert.Equal(t, day("2011-03-01"), r.Start)
	assert.Equal(t, bounds.End, r.End)

	// bounds outside the data are accepted
	r, err = ResolveRange(bounds, ptr(day("2010-01-01")), ptr(day("2014-01-01")))
	require.NoError(t, err)
	assert.Equal(t, day("2010-01-01"), r.Start)

	_, err = ResolveRange(bounds, ptr(day("2011-05-01")), ptr(day("2011-04-30")))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = ResolveRange(bounds, nil, ptr(day("2010-06-01")))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestFilterScenario(t *testing.T) {
	ds := domain.NewDataset(fixture(), "test", nil)

	records, err := Filter(ds, domain.DateRange{Start: day("2011-01-01"), End: day("2011-01-02")})
	require.NoError(t, err)
	require.Len(t, records, 2)

	spring := SeasonTotals(records)[0]
	assert.Equal(t, domain.Spring, spring.Season)
	assert.Equal(t, 30, spring.Registered)
	assert.Equal(t, 5, spring.Casual)

	_, err = Filter(ds, domain.DateRange{Start: day("2011-01-02"), End: day("2011-01-01")})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	records, err = Filter(ds, domain.DateRange{Start: day("2011-02-01"), End: day("2011-03-01")})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFilterProperties(t *testing.T) {
	ds := domain.NewDataset(memory.SampleRecords(day("2011-01-01"), 400, 9), "test", nil)

	ranges := []domain.DateRange{
		{Start: day("2011-01-01"), End: day("2011-01-01")},
		{Start: day("2011-02-10"), End: day("2011-07-04")},
		{Start: day("2010-06-01"), End: day("2011-03-01")},
		{Start: day("2011-12-01"), End: day("2013-01-01")},
	}

	for _, r := range ranges {
		t.Run(r.String(), func(t *testing.T) {
			got, err := Filter(ds, r)
			require.NoError(t, err)

			want := 0
			for _, rec := range ds.Records {
				if r.Contains(rec.Date) {
					want++
				}
			}
			assert.Len(t, got, want)
			for _, rec := range got {
				assert.True(t, r.Contains(rec.Date), rec.Date.Format(domain.DateLayout))
			}

			again, err := Filter(domain.NewDataset(got, "view", nil), r)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}
