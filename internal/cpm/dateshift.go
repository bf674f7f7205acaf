package cpm

import (
	"time"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/domain"
)

// shiftForward moves date by n working days (work regime) or n calendar
// days (event regime). n may be negative; for work regime this routes
// through calendar.AddWorkingDays, whose n==0 case snaps to the next
// working day (spec.md §4.1).
func shiftForward(date time.Time, n int, regime domain.Regime, cal *domain.Calendar) time.Time {
	if regime == domain.RegimeEvent {
		return date.AddDate(0, 0, n)
	}
	return calendar.AddWorkingDays(date, n, cal)
}

// SpanFinish exposes spanFinish for internal/leveling.
func SpanFinish(start time.Time, dur int, regime domain.Regime, cal *domain.Calendar) time.Time {
	return spanFinish(start, dur, regime, cal)
}

// ShiftForward exposes shiftForward for internal/leveling.
func ShiftForward(date time.Time, n int, regime domain.Regime, cal *domain.Calendar) time.Time {
	return shiftForward(date, n, regime, cal)
}

// spanFinish computes the inclusive last day of a span of dur days (work or
// calendar, per regime) beginning at start. A zero-or-negative duration
// collapses to start itself, snapped into the regime's calendar.
func spanFinish(start time.Time, dur int, regime domain.Regime, cal *domain.Calendar) time.Time {
	if dur <= 0 {
		if regime == domain.RegimeEvent {
			return start
		}
		return calendar.NextWorkingDay(start, cal)
	}
	return shiftForward(start, dur-1, regime, cal)
}

// spanStart is spanFinish's inverse: the start date whose dur-day span
// finishes on finish.
func spanStart(finish time.Time, dur int, regime domain.Regime, cal *domain.Calendar) time.Time {
	if dur <= 0 {
		if regime == domain.RegimeEvent {
			return finish
		}
		return calendar.PreviousWorkingDay(finish, cal)
	}
	return shiftForward(finish, -(dur - 1), regime, cal)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
