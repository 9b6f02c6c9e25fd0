package service

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/bikeshare/dashboard/internal/domain"
)

// WindspeedBinCount is the number of equal-width bins of the monthly variant
const WindspeedBinCount = 5

// DailyTrend returns one point per record, in date order
func DailyTrend(records []domain.DailyRentalRecord) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(records))
	for _, r := range records {
		points = append(points, domain.TrendPoint{
			Date:       r.Date,
			Registered: r.Registered,
			Casual:     r.Casual,
		})
	}
	return points
}

// MonthlyTrend sums registered and casual per calendar month.
// Points are dated on the first of the month.
func MonthlyTrend(records []domain.DailyRentalRecord) []domain.TrendPoint {
	var points []domain.TrendPoint
	for _, r := range records {
		month := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		if n := len(points); n == 0 || !points[n-1].Date.Equal(month) {
			points = append(points, domain.TrendPoint{Date: month})
		}
		p := &points[len(points)-1]
		p.Registered += r.Registered
		p.Casual += r.Casual
	}
	return points
}

// SeasonTotals sums registered and casual per season, ordered Spring to Winter.
// Every season is present; records of unknown season are left out.
func SeasonTotals(records []domain.DailyRentalRecord) []domain.SeasonTotal {
	totals := make([]domain.SeasonTotal, len(domain.Seasons))
	index := make(map[domain.Season]int, len(domain.Seasons))
	for i, s := range domain.Seasons {
		totals[i].Season = s
		index[s] = i
	}

	for _, r := range records {
		i, ok := index[r.Season]
		if !ok {
			continue
		}
		totals[i].Registered += r.Registered
		totals[i].Casual += r.Casual
		totals[i].Days++
	}
	return totals
}

// WeekdayAverages returns the mean total count of each weekday present, 0 to 6
func WeekdayAverages(records []domain.DailyRentalRecord) []domain.WeekdayAverage {
	var byDay [7][]float64
	for _, r := range records {
		if r.Weekday < 0 || r.Weekday > 6 {
			continue
		}
		byDay[r.Weekday] = append(byDay[r.Weekday], float64(r.Total))
	}

	var out []domain.WeekdayAverage
	for day, counts := range byDay {
		mean, err := stats.Mean(counts)
		if err != nil {
			continue
		}
		out = append(out, domain.WeekdayAverage{
			Weekday: day,
			Label:   time.Weekday(day).String()[:3],
			Mean:    mean,
			Days:    len(counts),
		})
	}
	return out
}

// WindspeedScatter returns raw windspeed/count points with a least-squares line.
// The line is omitted when fewer than two distinct windspeeds exist.
func WindspeedScatter(records []domain.DailyRentalRecord) domain.WindspeedCorrelation {
	var (
		wc     domain.WindspeedCorrelation
		xs, ys = columns(records)
	)
	for _, r := range records {
		wc.Points = append(wc.Points, domain.WindspeedPoint{
			Windspeed: r.Weather.Windspeed,
			Count:     r.Total,
		})
	}

	if len(xs) >= 2 && !constant(xs) {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		wc.Regression = &domain.RegressionLine{Intercept: alpha, Slope: beta}
	}
	return wc
}

// WindspeedBins splits the windspeed range into n equal-width bins and averages
// the total count per bin. Bins are right-closed; the first also holds the minimum.
func WindspeedBins(records []domain.DailyRentalRecord, n int) []domain.WindspeedBin {
	if len(records) == 0 || n < 1 {
		return nil
	}
	xs, ys := columns(records)

	lo, _ := stats.Min(xs)
	hi, _ := stats.Max(xs)
	if lo == hi {
		// a constant column still gets a non-empty range, 0.1% each side
		a := 0.001
		if lo != 0 {
			a *= math.Abs(lo)
		}
		lo, hi = lo-a, hi+a
	}
	width := (hi - lo) / float64(n)

	bins := make([]domain.WindspeedBin, n)
	members := make([][]float64, n)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[n-1].Upper = hi

	for i, x := range xs {
		idx := int(math.Ceil((x-lo)/width)) - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		members[idx] = append(members[idx], ys[i])
	}

	for i := range bins {
		bins[i].Days = len(members[i])
		if mean, err := stats.Mean(members[i]); err == nil {
			bins[i].MeanCount = mean
		}
	}
	return bins
}

// WeatherCorrelation computes pairwise Pearson coefficients of temp, atemp, hum,
// windspeed and cnt. Coefficients involving a constant column, or computed over
// fewer than two rows, are NaN.
func WeatherCorrelation(records []domain.DailyRentalRecord) domain.CorrelationMatrix {
	k := len(domain.WeatherVariables)
	cols := make([][]float64, k)
	for _, r := range records {
		for i, v := range r.Vector() {
			cols[i] = append(cols[i], v)
		}
	}

	m := domain.CorrelationMatrix{
		Variables: append([]string(nil), domain.WeatherVariables...),
		Values:    make([][]domain.Coefficient, k),
	}
	for i := range m.Values {
		m.Values[i] = make([]domain.Coefficient, k)
	}

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			c := math.NaN()
			if len(records) >= 2 && !constant(cols[i]) && !constant(cols[j]) {
				if i == j {
					c = 1
				} else {
					c = stat.Correlation(cols[i], cols[j], nil)
				}
			}
			m.Values[i][j] = domain.Coefficient(c)
			m.Values[j][i] = domain.Coefficient(c)
		}
	}
	return m
}

// columns extracts windspeed and total count
func columns(records []domain.DailyRentalRecord) (xs, ys []float64) {
	xs = make([]float64, len(records))
	ys = make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.Weather.Windspeed
		ys[i] = float64(r.Total)
	}
	return xs, ys
}

func constant(vs []float64) bool {
	if len(vs) < 2 {
		return true
	}
	for _, v := range vs[1:] {
		if v != vs[0] {
			return false
		}
	}
	return true
}
