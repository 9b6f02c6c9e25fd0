package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/repository/memory"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixture mirrors a three-row day.csv: two January days and one June day
func fixture() []domain.DailyRentalRecord {
	return []domain.DailyRentalRecord{
		{Date: day("2011-01-01"), Season: domain.Spring, Weekday: 6, Registered: 10, Casual: 5, Total: 15,
			Weather: domain.WeatherFactors{Temp: 0.34, FeelsLike: 0.36, Humidity: 0.81, Windspeed: 0.16}},
		{Date: day("2011-01-02"), Season: domain.Spring, Weekday: 0, Registered: 20, Casual: 0, Total: 20,
			Weather: domain.WeatherFactors{Temp: 0.36, FeelsLike: 0.35, Humidity: 0.70, Windspeed: 0.25}},
		{Date: day("2011-06-01"), Season: domain.Summer, Weekday: 3, Registered: 5, Casual: 5, Total: 10,
			Weather: domain.WeatherFactors{Temp: 0.60, FeelsLike: 0.58, Humidity: 0.50, Windspeed: 0.20}},
	}
}

func TestDailyTrend(t *testing.T) {
	points := DailyTrend(fixture())
	require.Len(t, points, 3)
	assert.Equal(t, domain.TrendPoint{Date: day("2011-01-02"), Registered: 20, Casual: 0}, points[1])
	assert.Empty(t, DailyTrend(nil))
}

func TestMonthlyTrend(t *testing.T) {
	points := MonthlyTrend(fixture())
	require.Len(t, points, 2)
	assert.Equal(t, domain.TrendPoint{Date: day("2011-01-01"), Registered: 30, Casual: 5}, points[0])
	assert.Equal(t, domain.TrendPoint{Date: day("2011-06-01"), Registered: 5, Casual: 5}, points[1])
}

func TestSeasonTotals(t *testing.T) {
	totals := SeasonTotals(fixture())
	require.Len(t, totals, 4)

	assert.Equal(t, domain.SeasonTotal{Season: domain.Spring, Registered: 30, Casual: 5, Days: 2}, totals[0])
	assert.Equal(t, domain.SeasonTotal{Season: domain.Summer, Registered: 5, Casual: 5, Days: 1}, totals[1])
	assert.Equal(t, domain.SeasonTotal{Season: domain.Fall}, totals[2])
	assert.Equal(t, domain.SeasonTotal{Season: domain.Winter}, totals[3])
}

func TestSeasonTotalsConserveCounts(t *testing.T) {
	records := memory.SampleRecords(day("2011-01-01"), 731, 3)
	records = append(records, domain.DailyRentalRecord{Date: day("2013-01-02"), Registered: 7, Casual: 1, Total: 8})

	var wantReg, wantCas int
	for _, r := range records {
		if r.Season == domain.SeasonUnknown {
			continue
		}
		wantReg += r.Registered
		wantCas += r.Casual
	}

	var gotReg, gotCas, days int
	for _, s := range SeasonTotals(records) {
		gotReg += s.Registered
		gotCas += s.Casual
		days += s.Days
	}
	assert.Equal(t, wantReg, gotReg)
	assert.Equal(t, wantCas, gotCas)
	assert.Equal(t, len(records)-1, days)
}

func TestWeekdayAverages(t *testing.T) {
	records := append(fixture(), domain.DailyRentalRecord{Date: day("2011-01-08"), Weekday: 6, Total: 25})

	avgs := WeekdayAverages(records)
	require.Len(t, avgs, 3)

	assert.Equal(t, 0, avgs[0].Weekday)
	assert.Equal(t, "Sun", avgs[0].Label)
	assert.Equal(t, 20.0, avgs[0].Mean)

	assert.Equal(t, 3, avgs[1].Weekday)
	assert.Equal(t, "Wed", avgs[1].Label)

	assert.Equal(t, 6, avgs[2].Weekday)
	assert.Equal(t, "Sat", avgs[2].Label)
	assert.Equal(t, 20.0, avgs[2].Mean)
	assert.Equal(t, 2, avgs[2].Days)

	assert.Empty(t, WeekdayAverages(nil))
}

func windRecords(winds []float64, counts []int) []domain.DailyRentalRecord {
	records := make([]domain.DailyRentalRecord, len(winds))
	for i := range winds {
		records[i] = domain.DailyRentalRecord{
			Date:    day("2011-01-01").AddDate(0, 0, i),
			Weather: domain.WeatherFactors{Windspeed: winds[i]},
			Total:   counts[i],
		}
	}
	return records
}

func TestWindspeedScatter(t *testing.T) {
	wc := WindspeedScatter(windRecords([]float64{0, 1, 2}, []int{1, 3, 5}))

	require.Len(t, wc.Points, 3)
	assert.Equal(t, domain.WindspeedPoint{Windspeed: 2, Count: 5}, wc.Points[2])
	require.NotNil(t, wc.Regression)
	assert.InDelta(t, 1.0, wc.Regression.Intercept, 1e-9)
	assert.InDelta(t, 2.0, wc.Regression.Slope, 1e-9)
	assert.InDelta(t, 7.0, wc.Regression.At(3), 1e-9)
	assert.Empty(t, wc.Bins)
}

func TestWindspeedScatterWithoutFit(t *testing.T) {
	assert.Nil(t, WindspeedScatter(windRecords([]float64{0.2}, []int{10})).Regression)
	assert.Nil(t, WindspeedScatter(windRecords([]float64{0.2, 0.2}, []int{10, 30})).Regression)
}

func TestWindspeedBins(t *testing.T) {
	bins := WindspeedBins(windRecords(
		[]float64{0, 1, 2, 3, 4, 5},
		[]int{10, 20, 30, 40, 50, 60},
	), 5)
	require.Len(t, bins, 5)

	wantMeans := []float64{15, 30, 40, 50, 60}
	wantDays := []int{2, 1, 1, 1, 1}
	for i, b := range bins {
		assert.InDelta(t, float64(i), b.Lower, 1e-9)
		assert.InDelta(t, float64(i+1), b.Upper, 1e-9)
		assert.Equal(t, wantDays[i], b.Days, "bin %d", i)
		assert.InDelta(t, wantMeans[i], b.MeanCount, 1e-9, "bin %d", i)
	}
}

func TestWindspeedBinsEmptyAndConstant(t *testing.T) {
	bins := WindspeedBins(windRecords([]float64{0, 0.1, 1.0}, []int{10, 20, 30}), 5)
	require.Len(t, bins, 5)
	assert.Equal(t, 2, bins[0].Days)
	for _, b := range bins[1:4] {
		assert.Equal(t, 0, b.Days)
		assert.Zero(t, b.MeanCount)
	}
	assert.Equal(t, 1, bins[4].Days)

	bins = WindspeedBins(windRecords([]float64{0.2, 0.2, 0.2}, []int{1, 2, 3}), 5)
	require.Len(t, bins, 5)
	var days, filled int
	for _, b := range bins {
		assert.Less(t, b.Lower, b.Upper)
		days += b.Days
		if b.Days > 0 {
			filled++
			assert.InDelta(t, 2.0, b.MeanCount, 1e-9)
		}
	}
	assert.Equal(t, 3, days)
	assert.Equal(t, 1, filled)

	assert.Nil(t, WindspeedBins(nil, 5))
}

func TestWeatherCorrelation(t *testing.T) {
	var records []domain.DailyRentalRecord
	for i := 1; i <= 5; i++ {
		x := float64(i) / 10
		records = append(records, domain.DailyRentalRecord{
			Date:    day("2011-01-01").AddDate(0, 0, i),
			Weather: domain.WeatherFactors{Temp: x, FeelsLike: 2 * x, Humidity: 1 - x, Windspeed: x * x},
			Total:   i * 100,
		})
	}

	m := WeatherCorrelation(records)
	require.Equal(t, domain.WeatherVariables, m.Variables)
	require.Len(t, m.Values, 5)

	for i := range m.Values {
		assert.InDelta(t, 1.0, float64(m.At(i, i)), 1e-9)
		for j := range m.Values[i] {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.True(t, m.At(i, j) >= -1-1e-9 && m.At(i, j) <= 1+1e-9)
		}
	}
	assert.InDelta(t, 1.0, float64(m.At(0, 1)), 1e-9)
	assert.InDelta(t, -1.0, float64(m.At(0, 2)), 1e-9)
	assert.InDelta(t, 1.0, float64(m.At(0, 4)), 1e-9)
	assert.Greater(t, float64(m.At(3, 4)), 0.9)
}

func TestWeatherCorrelationUndefined(t *testing.T) {
	single := WeatherCorrelation(fixture()[:1])
	for i := range single.Values {
		for j := range single.Values[i] {
			assert.True(t, math.IsNaN(float64(single.At(i, j))))
		}
	}

	records := fixture()
	for i := range records {
		records[i].Weather.Humidity = 0.5
	}
	m := WeatherCorrelation(records)
	for j := range m.Values {
		assert.False(t, m.At(2, j).Defined(), "hum vs %s", m.Variables[j])
	}
	assert.True(t, m.At(0, 4).Defined())
}

func TestAggregateVariants(t *testing.T) {
	rng := domain.DateRange{Start: day("2011-01-01"), End: day("2011-06-01")}

	daily := Aggregate(fixture(), rng, domain.VariantDaily)
	assert.Equal(t, 3, daily.Days)
	assert.Len(t, daily.Trend, 3)
	assert.Len(t, daily.Windspeed.Points, 3)
	assert.Empty(t, daily.Windspeed.Bins)

	monthly := Aggregate(fixture(), rng, domain.VariantMonthly)
	assert.Len(t, monthly.Trend, 2)
	assert.Len(t, monthly.Windspeed.Bins, WindspeedBinCount)
	assert.Empty(t, monthly.Windspeed.Points)

	assert.Equal(t, daily.Seasons, monthly.Seasons)
	assert.Equal(t, daily.Weekdays, monthly.Weekdays)

	empty := Aggregate(nil, rng, domain.VariantDaily)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Trend)
	assert.Empty(t, empty.Seasons)
}
