package flatfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bikeshare/dashboard/internal/domain"
)

// Source column names
const (
	ColDate       = "dteday"
	ColSeason     = "season"
	ColWeekday    = "weekday"
	ColTemp       = "temp"
	ColFeelsLike  = "atemp"
	ColHumidity   = "hum"
	ColWindspeed  = "windspeed"
	ColCasual     = "casual"
	ColRegistered = "registered"
	ColTotal      = "cnt"
)

// RequiredColumns are the columns every dataset must carry, in export order
var RequiredColumns = []string{
	ColDate, ColSeason, ColWeekday,
	ColTemp, ColFeelsLike, ColHumidity, ColWindspeed,
	ColCasual, ColRegistered, ColTotal,
}

type header map[string]int

func parseHeader(row []string) (header, []string, error) {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: missing columns %s", domain.ErrMalformedSource, strings.Join(missing, ", "))
	}

	required := make(map[string]bool, len(RequiredColumns))
	for _, col := range RequiredColumns {
		required[col] = true
	}
	var extras []string
	for _, name := range row {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && !required[name] {
			extras = append(extras, name)
		}
	}
	return h, extras, nil
}

// parseRows converts a header row plus data rows into records.
// Blank lines are skipped; line numbers in errors are 1-based.
func parseRows(rows [][]string) ([]domain.DailyRentalRecord, []string, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: no header row", domain.ErrMalformedSource)
	}
	h, extras, err := parseHeader(rows[0])
	if err != nil {
		return nil, nil, err
	}

	records := make([]domain.DailyRentalRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec, err := h.record(row, extras)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedSource, i+2, err)
		}
		records = append(records, rec)
	}
	return records, extras, nil
}

func (h header) record(row []string, extras []string) (domain.DailyRentalRecord, error) {
	var (
		rec domain.DailyRentalRecord
		err error
	)
	p := fieldParser{h: h, row: row}

	if rec.Date, err = domain.ParseDate(p.get(ColDate)); err != nil {
		return rec, fmt.Errorf("%s: %v", ColDate, err)
	}
	rec.Season = domain.SeasonFromCode(p.int(ColSeason))
	rec.Weekday = p.int(ColWeekday)
	rec.Weather = domain.WeatherFactors{
		Temp:      p.float(ColTemp),
		FeelsLike: p.float(ColFeelsLike),
		Humidity:  p.float(ColHumidity),
		Windspeed: p.float(ColWindspeed),
	}
	rec.Casual = p.int(ColCasual)
	rec.Registered = p.int(ColRegistered)
	rec.Total = p.int(ColTotal)
	if p.err != nil {
		return rec, p.err
	}

	if len(extras) > 0 {
		rec.Extras = make(map[string]string, len(extras))
		for _, col := range extras {
			rec.Extras[col] = p.get(col)
		}
	}
	return rec, nil
}

// fieldParser keeps the first conversion error so callers check once
type fieldParser struct {
	h   header
	row []string
	err error
}

func (p *fieldParser) get(col string) string {
	i, ok := p.h[col]
	if !ok || i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *fieldParser) float(col string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.get(col), 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %q is not a number", col, p.get(col))
		return 0
	}
	return v
}

func (p *fieldParser) int(col string) int {
	if p.err != nil {
		return 0
	}
	s := p.get(col)
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(v)
	}
	// spreadsheets may store integers as 985.0
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		p.err = fmt.Errorf("%s: %q is not an integer", col, s)
		return 0
	}
	return int(f)
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
