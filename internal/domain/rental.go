package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Season is the calendar season of a record, decoded from the 1-4 source code
type Season int

const (
	SeasonUnknown Season = iota
	Spring
	Summer
	Fall
	Winter
)

// Seasons lists the known seasons in chart order
var Seasons = []Season{Spring, Summer, Fall, Winter}

var seasonNames = map[Season]string{
	Spring: "Spring",
	Summer: "Summer",
	Fall:   "Fall",
	Winter: "Winter",
}

// SeasonFromCode maps the stored integer code to a season.
// Codes outside 1-4 yield SeasonUnknown.
func SeasonFromCode(code int) Season {
	if code < int(Spring) || code > int(Winter) {
		return SeasonUnknown
	}
	return Season(code)
}

// ParseSeason accepts a season name (any case) and returns the season
func ParseSeason(name string) (Season, error) {
	for s, n := range seasonNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return SeasonUnknown, fmt.Errorf("unknown season %q", name)
}

// Code returns the stored integer code, 0 for unknown
func (s Season) Code() int {
	if _, ok := seasonNames[s]; !ok {
		return 0
	}
	return int(s)
}

func (s Season) String() string {
	if n, ok := seasonNames[s]; ok {
		return n
	}
	return "Unknown"
}

// MarshalText encodes the season by name
func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DailyRentalRecord is one row of the daily rental dataset
type DailyRentalRecord struct {
	Date       time.Time      `json:"date"`
	Season     Season         `json:"season"`
	Weekday    int            `json:"weekday"`
	Weather    WeatherFactors `json:"weather"`
	Registered int            `json:"registered"`
	Casual     int            `json:"casual"`
	Total      int            `json:"cnt"`

	// Extras keeps the remaining source columns verbatim, keyed by column name
	Extras map[string]string `json:"extras,omitempty"`
}

// Consistent reports whether Total equals Registered + Casual
func (r DailyRentalRecord) Consistent() bool {
	return r.Total == r.Registered+r.Casual
}

// Day truncates t to midnight UTC of its calendar date
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Dataset is the immutable, date-sorted record set of one load
type Dataset struct {
	Records      []DailyRentalRecord
	ExtraColumns []string
	Source       string
	LoadedAt     time.Time
}

// NewDataset copies records, normalizes their dates and sorts them by date
func NewDataset(records []DailyRentalRecord, source string, extraColumns []string) *Dataset {
	rs := make([]DailyRentalRecord, len(records))
	copy(rs, records)
	for i := range rs {
		rs[i].Date = Day(rs[i].Date)
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Date.Before(rs[j].Date)
	})

	return &Dataset{
		Records:      rs,
		ExtraColumns: append([]string(nil), extraColumns...),
		Source:       source,
		LoadedAt:     time.Now(),
	}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether the dataset has no records
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Bounds returns the earliest and latest dates, false when empty
func (d *Dataset) Bounds() (DateRange, bool) {
	if d.Empty() {
		return DateRange{}, false
	}
	return DateRange{
		Start: d.Records[0].Date,
		End:   d.Records[len(d.Records)-1].Date,
	}, true
}

// Between returns the records with r.Start <= date <= r.End.
// The result shares the dataset's backing array and cannot grow into it.
func (d *Dataset) Between(r DateRange) []DailyRentalRecord {
	if d.Empty() {
		return nil
	}
	start, end := Day(r.Start), Day(r.End)
	lo := sort.Search(len(d.Records), func(i int) bool {
		return !d.Records[i].Date.Before(start)
	})
	hi := sort.Search(len(d.Records), func(i int) bool {
		return d.Records[i].Date.After(end)
	})
	if lo >= hi {
		return nil
	}
	return d.Records[lo:hi:hi]
}
