package calendar

import (
	"testing"
	"time"

	"github.com/alanbld/utf8proj/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDay_WeekendExcluded(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	assert.True(t, IsWorkingDay(date(2026, 1, 5), cal), "Monday should be working")
	assert.False(t, IsWorkingDay(date(2026, 1, 3), cal), "Saturday should not be working")
	assert.False(t, IsWorkingDay(date(2026, 1, 4), cal), "Sunday should not be working")
}

func TestIsWorkingDay_HolidayIdempotentOnWeekend(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	cal.Holidays = append(cal.Holidays, domain.HolidayRange{
		Name: "weekend holiday", Start: date(2026, 1, 3), End: date(2026, 1, 4),
	})
	assert.False(t, IsWorkingDay(date(2026, 1, 3), cal))
}

func TestNextWorkingDay_ReturnsSameDayIfWorking(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	require.Equal(t, date(2026, 1, 5), NextWorkingDay(date(2026, 1, 5), cal))
}

func TestNextWorkingDay_SkipsWeekend(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	assert.Equal(t, date(2026, 1, 5), NextWorkingDay(date(2026, 1, 3), cal))
}

func TestAddWorkingDays_ZeroReturnsNextWorkingDay(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	assert.Equal(t, date(2026, 1, 5), AddWorkingDays(date(2026, 1, 3), 0, cal))
}

func TestAddWorkingDays_Forward(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	// Mon 2026-01-05 + 5 working days = next Mon 2026-01-12
	got := AddWorkingDays(date(2026, 1, 5), 5, cal)
	assert.Equal(t, date(2026, 1, 12), got)
}

func TestAddWorkingDays_Backward(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	got := AddWorkingDays(date(2026, 1, 12), -5, cal)
	assert.Equal(t, date(2026, 1, 5), got)
}

func TestWorkingDayCount_HalfOpen(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	// Mon 1/5 .. Mon 1/12 half-open excludes the 12th: 5 working days (Mon-Fri).
	assert.Equal(t, 5, WorkingDayCount(date(2026, 1, 5), date(2026, 1, 12), cal))
}

func TestOverlapDays(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	a := Interval{Start: date(2026, 1, 5), End: date(2026, 1, 9)}
	b := Interval{Start: date(2026, 1, 7), End: date(2026, 1, 14)}
	assert.Equal(t, 3, OverlapDays(a, b, cal)) // Wed, Thu, Fri
}

func TestHolidayRange_InclusiveBothEnds(t *testing.T) {
	cal := domain.DefaultWorkWeek("default")
	cal.Holidays = []domain.HolidayRange{{Name: "break", Start: date(2026, 1, 5), End: date(2026, 1, 7)}}
	assert.False(t, IsWorkingDay(date(2026, 1, 5), cal))
	assert.False(t, IsWorkingDay(date(2026, 1, 6), cal))
	assert.False(t, IsWorkingDay(date(2026, 1, 7), cal))
	assert.True(t, IsWorkingDay(date(2026, 1, 8), cal))
}
