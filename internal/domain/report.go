package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Variant selects one of the two report configurations
type Variant string

const (
	// VariantDaily plots per-day trend and a raw windspeed scatter with regression
	VariantDaily Variant = "daily"
	// VariantMonthly plots per-month trend and binned windspeed means
	VariantMonthly Variant = "monthly"
)

// ParseVariant validates a variant name; empty yields fallback
func ParseVariant(s string, fallback Variant) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return fallback, nil
	case VariantDaily, VariantMonthly:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// ChartKind names one of the five dashboard charts
type ChartKind string

const (
	ChartTrend       ChartKind = "trend"
	ChartSeasons     ChartKind = "seasons"
	ChartWeekdays    ChartKind = "weekdays"
	ChartWindspeed   ChartKind = "windspeed"
	ChartCorrelation ChartKind = "correlation"
)

// ChartKinds lists the charts in page order
var ChartKinds = []ChartKind{ChartTrend, ChartSeasons, ChartWeekdays, ChartWindspeed, ChartCorrelation}

// ParseChartKind validates a chart name
func ParseChartKind(s string) (ChartKind, error) {
	for _, k := range ChartKinds {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
}

// TrendPoint is one x-position of the usage trend
type TrendPoint struct {
	Date       time.Time `json:"date"`
	Registered int       `json:"registered"`
	Casual     int       `json:"casual"`
}

// SeasonTotal sums rentals of one season
type SeasonTotal struct {
	Season     Season `json:"season"`
	Registered int    `json:"registered"`
	Casual     int    `json:"casual"`
	Days       int    `json:"days"`
}

// WeekdayAverage is the mean total count of one weekday
type WeekdayAverage struct {
	Weekday int     `json:"weekday"`
	Label   string  `json:"label"`
	Mean    float64 `json:"mean"`
	Days    int     `json:"days"`
}

// WindspeedPoint is one scatter point
type WindspeedPoint struct {
	Windspeed float64 `json:"windspeed"`
	Count     int     `json:"cnt"`
}

// RegressionLine is a least-squares fit count = Intercept + Slope*windspeed
type RegressionLine struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// At evaluates the line
func (l RegressionLine) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// WindspeedBin is one equal-width windspeed interval (Lower, Upper]
type WindspeedBin struct {
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Days      int     `json:"days"`
	MeanCount float64 `json:"mean_cnt"`
}

// Label renders the bin interval
func (b WindspeedBin) Label() string {
	return fmt.Sprintf("(%.3f, %.3f]", b.Lower, b.Upper)
}

// WindspeedCorrelation carries either the scatter or the binned view
type WindspeedCorrelation struct {
	Points     []WindspeedPoint `json:"points,omitempty"`
	Regression *RegressionLine  `json:"regression,omitempty"`
	Bins       []WindspeedBin   `json:"bins,omitempty"`
}

// Coefficient is a correlation value; NaN encodes as JSON null
type Coefficient float64

// Defined reports whether the coefficient is a number
func (c Coefficient) Defined() bool {
	return !math.IsNaN(float64(c))
}

// MarshalJSON implements json.Marshaler
func (c Coefficient) MarshalJSON() ([]byte, error) {
	if !c.Defined() || math.IsInf(float64(c), 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(c), 'f', -1, 64)), nil
}

// CorrelationMatrix is a symmetric matrix of pairwise Pearson coefficients
type CorrelationMatrix struct {
	Variables []string        `json:"variables"`
	Values    [][]Coefficient `json:"values"`
}

// At returns the coefficient of variables i and j
func (m CorrelationMatrix) At(i, j int) Coefficient {
	return m.Values[i][j]
}

// Report holds the five aggregates of one filtered view
type Report struct {
	Range       DateRange            `json:"range"`
	Variant     Variant              `json:"variant"`
	Days        int                  `json:"days"`
	Trend       []TrendPoint         `json:"trend"`
	Seasons     []SeasonTotal        `json:"seasons"`
	Weekdays    []WeekdayAverage     `json:"weekdays"`
	Windspeed   WindspeedCorrelation `json:"windspeed"`
	Correlation CorrelationMatrix    `json:"correlation"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// Empty reports whether the filtered view had no rows
func (r Report) Empty() bool {
	return r.Days == 0
}

// ReportRequest carries the user's filter parameters.
// Nil bounds default to the dataset bounds.
type ReportRequest struct {
	Start   *time.Time
	End     *time.Time
	Variant Variant
}
