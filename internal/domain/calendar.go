package domain

import "time"

// HolidayRange is a named, inclusive-both-ends span of non-working days
// (spec.md §4.1). A single-day holiday has Start == End.
type HolidayRange struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the holiday range, compared at
// day granularity.
func (h HolidayRange) Contains(d time.Time) bool {
	day := truncateToDay(d)
	return !day.Before(truncateToDay(h.Start)) && !day.After(truncateToDay(h.End))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Calendar is the data shape of a working-day pattern: which weekdays are
// worked, how many hours per working day, and named holidays. Date
// arithmetic over a Calendar lives in package calendar, not here, so that
// domain stays free of scheduling algorithms (spec.md §3).
type Calendar struct {
	ID              string
	WorkingWeekdays [7]bool // indexed by time.Weekday: Sunday=0 ... Saturday=6
	HoursPerDay     float64
	Holidays        []HolidayRange
}

// DefaultWorkWeek returns a Monday-Friday, 8-hour calendar with no holidays.
func DefaultWorkWeek(id string) *Calendar {
	return &Calendar{
		ID: id,
		WorkingWeekdays: [7]bool{
			time.Sunday:    false,
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
			time.Saturday:  false,
		},
		HoursPerDay: 8,
	}
}
