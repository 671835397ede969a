// Package period computes calendar-month date ranges.
//
// A Period is the half-open range [Start, End) covering one calendar month in
// a given location. End is always the first instant of the following month,
// so consecutive periods tile the timeline without gaps or overlap.
package period

import (
	"time"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
)

// KeyLayout formats a Period as "2006-01".
const KeyLayout = "2006-01"

// Period is a half-open calendar-month range.
type Period struct {
	Start time.Time
	End   time.Time
}

// ForMonth returns the period covering month (1-based) of year in loc.
// A nil loc means UTC.
func ForMonth(year, month int, loc *time.Location) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, apperr.InvalidArgument("month %d out of range 1..12", month)
	}
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)

	endYear, endMonth := year, month+1
	if endMonth > 12 {
		endYear, endMonth = year+1, 1
	}
	end := time.Date(endYear, time.Month(endMonth), 1, 0, 0, 0, 0, loc)

	return Period{Start: start, End: end}, nil
}

// Containing returns the period that contains t, as observed in loc.
func Containing(t time.Time, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	p, _ := ForMonth(local.Year(), int(local.Month()), loc)
	return p
}

// LastN returns the n most recent periods ending with the one containing now,
// oldest first.
func LastN(n int, now time.Time, loc *time.Location) ([]Period, error) {
	if n < 1 {
		return nil, apperr.InvalidArgument("period count must be positive, got %d", n)
	}

	periods := make([]Period, n)
	p := Containing(now, loc)
	for i := n - 1; i >= 0; i-- {
		periods[i] = p
		p = p.Previous()
	}
	return periods, nil
}

// Parse reads a "2006-01" key into the period it names.
func Parse(key string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(KeyLayout, key, loc)
	if err != nil {
		return Period{}, apperr.InvalidArgument("month %q must look like YYYY-MM", key)
	}
	return ForMonth(t.Year(), int(t.Month()), loc)
}

// Previous returns the calendar month before p.
func (p Period) Previous() Period {
	year, month := p.Start.Year(), int(p.Start.Month())-1
	if month < 1 {
		year, month = year-1, 12
	}
	prev, _ := ForMonth(year, month, p.Start.Location())
	return prev
}

// Next returns the calendar month after p.
func (p Period) Next() Period {
	return Containing(p.End, p.End.Location())
}

// Contains reports whether t falls inside [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Year returns the calendar year of the period.
func (p Period) Year() int {
	return p.Start.Year()
}

// Month returns the 1-based calendar month of the period.
func (p Period) Month() int {
	return int(p.Start.Month())
}

// Key formats the period as "2006-01".
func (p Period) Key() string {
	return p.Start.Format(KeyLayout)
}

func (p Period) String() string {
	return p.Key()
}
