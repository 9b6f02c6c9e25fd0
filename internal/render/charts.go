package render

import (
	"fmt"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/metrics"
)

var (
	colorRegistered = drawing.Color{R: 65, G: 105, B: 225, A: 255}
	colorCasual     = drawing.Color{R: 255, G: 140, B: 0, A: 255}
	colorPoints     = drawing.Color{R: 70, G: 130, B: 180, A: 140}
	colorFit        = drawing.Color{R: 220, G: 20, B: 60, A: 255}
)

// Renderer draws the dashboard charts as PNG
type Renderer struct {
	width   int
	height  int
	metrics *metrics.Recorder
}

// NewRenderer creates a renderer producing images of the given size
func NewRenderer(width, height int, rec *metrics.Recorder) *Renderer {
	return &Renderer{width: width, height: height, metrics: rec}
}

// Render writes the PNG of one chart of the report.
// It returns domain.ErrNoChartData when the aggregate is empty.
func (r *Renderer) Render(w io.Writer, kind domain.ChartKind, report domain.Report) error {
	defer r.metrics.ChartRendered(string(kind), time.Now())

	if report.Empty() {
		return domain.ErrNoChartData
	}

	var err error
	switch kind {
	case domain.ChartTrend:
		err = r.trend(w, report.Trend, report.Variant)
	case domain.ChartSeasons:
		err = r.seasons(w, report.Seasons)
	case domain.ChartWeekdays:
		err = r.weekdays(w, report.Weekdays)
	case domain.ChartWindspeed:
		if len(report.Windspeed.Bins) > 0 {
			err = r.windspeedBins(w, report.Windspeed.Bins)
		} else {
			err = r.windspeedScatter(w, report.Windspeed)
		}
	case domain.ChartCorrelation:
		err = r.correlation(w, report.Correlation)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownChart, kind)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	return nil
}

func (r *Renderer) trend(w io.Writer, points []domain.TrendPoint, variant domain.Variant) error {
	if len(points) == 0 {
		return domain.ErrNoChartData
	}

	times := make([]time.Time, 0, len(points)+1)
	registered := make([]float64, 0, len(points)+1)
	casual := make([]float64, 0, len(points)+1)
	maxY := 0.0
	for _, p := range points {
		times = append(times, p.Date)
		registered = append(registered, float64(p.Registered))
		casual = append(casual, float64(p.Casual))
		maxY = math.Max(maxY, math.Max(float64(p.Registered), float64(p.Casual)))
	}
	// a time axis needs two distinct x values
	if len(times) == 1 {
		times = append(times, times[0].AddDate(0, 0, 1))
		registered = append(registered, registered[0])
		casual = append(casual, casual[0])
	}

	layout := "Jan 2006"
	if variant == domain.VariantDaily && len(points) <= 62 {
		layout = "2006-01-02"
	}

	ch := chart.Chart{
		Title:      "Bike usage trend",
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat(layout),
		},
		YAxis: chart.YAxis{
			Name:  "Users",
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(maxY)},
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Registered", XValues: times, YValues: registered, Style: lineStyle(colorRegistered)},
			chart.TimeSeries{Name: "Casual", XValues: times, YValues: casual, Style: lineStyle(colorCasual)},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func (r *Renderer) seasons(w io.Writer, totals []domain.SeasonTotal) error {
	var bars []chart.StackedBar
	for _, t := range totals {
		if t.Registered+t.Casual == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name: t.Season.String(),
			Values: []chart.Value{
				{Label: "Registered", Value: float64(t.Registered), Style: fillStyle(colorRegistered)},
				{Label: "Casual", Value: float64(t.Casual), Style: fillStyle(colorCasual)},
			},
		})
	}
	if len(bars) == 0 {
		return domain.ErrNoChartData
	}

	sbc := chart.StackedBarChart{
		Title:      "Registered and casual rentals by season",
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarSpacing: 60,
		Bars:       bars,
	}
	return sbc.Render(chart.PNG, w)
}

func (r *Renderer) weekdays(w io.Writer, averages []domain.WeekdayAverage) error {
	if len(averages) == 0 {
		return domain.ErrNoChartData
	}

	bars := make([]chart.Value, 0, len(averages))
	maxY := 0.0
	for _, a := range averages {
		bars = append(bars, chart.Value{Label: a.Label, Value: a.Mean, Style: fillStyle(colorRegistered)})
		maxY = math.Max(maxY, a.Mean)
	}
	return r.bars(w, "Average rentals by weekday", bars, maxY)
}

func (r *Renderer) windspeedBins(w io.Writer, bins []domain.WindspeedBin) error {
	bars := make([]chart.Value, 0, len(bins))
	maxY := 0.0
	for _, b := range bins {
		bars = append(bars, chart.Value{Label: b.Label(), Value: b.MeanCount, Style: fillStyle(colorRegistered)})
		maxY = math.Max(maxY, b.MeanCount)
	}
	return r.bars(w, "Average rentals by windspeed bin", bars, maxY)
}

func (r *Renderer) bars(w io.Writer, title string, bars []chart.Value, maxY float64) error {
	bc := chart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   60,
		BarSpacing: 30,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(maxY)},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

func (r *Renderer) windspeedScatter(w io.Writer, wc domain.WindspeedCorrelation) error {
	if len(wc.Points) == 0 {
		return domain.ErrNoChartData
	}

	xs := make([]float64, len(wc.Points))
	ys := make([]float64, len(wc.Points))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := 0.0, 0.0
	for i, p := range wc.Points {
		xs[i], ys[i] = p.Windspeed, float64(p.Count)
		minX, maxX = math.Min(minX, p.Windspeed), math.Max(maxX, p.Windspeed)
		maxY = math.Max(maxY, ys[i])
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Days",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: drawing.ColorTransparent,
				DotWidth:    3,
				DotColor:    colorPoints,
			},
		},
	}
	if wc.Regression != nil {
		y0, y1 := wc.Regression.At(minX), wc.Regression.At(maxX)
		minY = math.Min(minY, math.Min(y0, y1))
		maxY = math.Max(maxY, math.Max(y0, y1))
		series = append(series, chart.ContinuousSeries{
			Name:    "Linear fit",
			XValues: []float64{minX, maxX},
			YValues: []float64{y0, y1},
			Style:   lineStyle(colorFit),
		})
	}
	if minX == maxX {
		minX, maxX = minX-0.01, maxX+0.01
	}

	ch := chart.Chart{
		Title:      "Windspeed vs rentals",
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Windspeed",
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name:  "Rentals",
			Range: &chart.ContinuousRange{Min: minY, Max: headroom(maxY)},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func lineStyle(c drawing.Color) chart.Style {
	return chart.Style{StrokeColor: c, StrokeWidth: 2}
}

func fillStyle(c drawing.Color) chart.Style {
	return chart.Style{FillColor: c, StrokeColor: c}
}

// headroom leaves 10% above the largest value and never returns an empty range
func headroom(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}
