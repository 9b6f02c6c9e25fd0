package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of dates in queries and exports
const DateLayout = "2006-01-02"

// DateRange is an inclusive interval of calendar dates
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a validated range from two dates
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate enforces start <= end
func (r DateRange) Validate() error {
	if Day(r.Start).After(Day(r.End)) {
		return fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidDateRange, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether t falls within the range, both ends inclusive
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

var dateLayouts = []string{DateLayout, "2006/01/02", "1/2/2006", time.RFC3339}

// ParseDate parses a calendar date in any of the accepted layouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
