// Package calendar implements all date arithmetic for utf8proj (spec.md §4.1).
// Every date computation elsewhere in the engine routes through this package
// so that working-day semantics stay in exactly one place.
package calendar

import (
	"time"

	"github.com/alanbld/utf8proj/internal/domain"
)

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWorkingDay reports whether date is a working day on cal: its weekday is
// marked working AND it does not fall within any holiday range. A holiday
// on an already-non-working weekday is idempotent (spec.md §4.1).
func IsWorkingDay(date time.Time, cal *domain.Calendar) bool {
	d := truncate(date)
	if !cal.WorkingWeekdays[d.Weekday()] {
		return false
	}
	for _, h := range cal.Holidays {
		if h.Contains(d) {
			return false
		}
	}
	return true
}

// NextWorkingDay returns date itself if it is working, else the first
// working day strictly after it.
func NextWorkingDay(date time.Time, cal *domain.Calendar) time.Time {
	d := truncate(date)
	for !IsWorkingDay(d, cal) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PreviousWorkingDay returns date itself if it is working, else the first
// working day strictly before it.
func PreviousWorkingDay(date time.Time, cal *domain.Calendar) time.Time {
	d := truncate(date)
	for !IsWorkingDay(d, cal) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddWorkingDays moves n working days forward (n >= 0) or back (n < 0),
// starting from the next working day on/after date. n == 0 therefore
// returns NextWorkingDay(date) unchanged (spec.md §4.1 edge case).
func AddWorkingDays(date time.Time, n int, cal *domain.Calendar) time.Time {
	d := NextWorkingDay(date, cal)
	if n == 0 {
		return d
	}
	step := 1
	remaining := n
	if n < 0 {
		step = -1
		remaining = -n
	}
	for remaining > 0 {
		d = d.AddDate(0, 0, step)
		d = truncate(d)
		if step > 0 {
			d = NextWorkingDay(d, cal)
		} else {
			d = PreviousWorkingDay(d, cal)
		}
		remaining--
	}
	return d
}

// WorkingDayCount counts working days in the half-open interval [d1, d2).
// A negative count is returned if d2 precedes d1.
func WorkingDayCount(d1, d2 time.Time, cal *domain.Calendar) int {
	a, b := truncate(d1), truncate(d2)
	if b.Before(a) {
		return -WorkingDayCount(b, a, cal)
	}
	count := 0
	for d := a; d.Before(b); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, cal) {
			count++
		}
	}
	return count
}

// Interval is a closed calendar-day span [Start, End] used by OverlapDays.
type Interval struct {
	Start time.Time
	End   time.Time
}

// OverlapDays counts working days common to both intervals (inclusive on
// both ends), under cal.
func OverlapDays(a, b Interval, cal *domain.Calendar) int {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if end.Before(start) {
		return 0
	}
	return WorkingDayCount(start, end.AddDate(0, 0, 1), cal)
}
