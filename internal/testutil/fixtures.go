// Package testutil provides functional-option fixture builders for
// internal/domain types. Only this package's own tests use them; the other
// packages' test suites build their domain literals directly.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alanbld/utf8proj/internal/domain"
)

// Project options.
type ProjectOption func(*domain.Project)

func WithProjectEndDate(d time.Time) ProjectOption {
	return func(p *domain.Project) { p.EndDate = &d }
}

func WithStatusDate(d time.Time) ProjectOption {
	return func(p *domain.Project) { p.StatusDate = &d }
}

func WithDefaultCalendarID(id string) ProjectOption {
	return func(p *domain.Project) { p.DefaultCalendarID = id }
}

func WithResources(resources ...*domain.Resource) ProjectOption {
	return func(p *domain.Project) { p.Resources = append(p.Resources, resources...) }
}

func WithCalendars(calendars ...*domain.Calendar) ProjectOption {
	return func(p *domain.Project) { p.Calendars = append(p.Calendars, calendars...) }
}

// NewTestProject builds a *domain.Project starting on start with a default
// Mon-Fri calendar named "default", carrying tasks and any options applied
// after.
func NewTestProject(start time.Time, tasks []*domain.Task, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:                uuid.New().String(),
		Name:              "test project",
		StartDate:         start,
		DefaultCalendarID: "default",
		Tasks:             tasks,
		Calendars:         []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options.
type TaskOption func(*domain.Task)

func WithEffort(e int) TaskOption {
	return func(t *domain.Task) { t.Effort = &e }
}

func WithPercentComplete(pc float64) TaskOption {
	return func(t *domain.Task) { t.PercentComplete = pc }
}

func WithActualStart(d time.Time) TaskOption {
	return func(t *domain.Task) { t.ActualStart = &d }
}

func WithActualFinish(d time.Time) TaskOption {
	return func(t *domain.Task) { t.ActualFinish = &d }
}

func WithRemaining(n int) TaskOption {
	return func(t *domain.Task) { t.Remaining = &n }
}

func WithRegime(r domain.Regime) TaskOption {
	return func(t *domain.Task) { t.Regime = r }
}

func WithPriority(p int) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithConstraint(kind domain.ConstraintKind, date time.Time) TaskOption {
	return func(t *domain.Task) { t.Constraint = &domain.Constraint{Kind: kind, Date: date} }
}

func WithDependencies(deps ...domain.Dependency) TaskOption {
	return func(t *domain.Task) { t.Dependencies = append(t.Dependencies, deps...) }
}

func WithAssignments(assignments ...domain.ResourceAssignment) TaskOption {
	return func(t *domain.Task) { t.Assignments = append(t.Assignments, assignments...) }
}

func WithChildren(children ...*domain.Task) TaskOption {
	return func(t *domain.Task) { t.Children = append(t.Children, children...) }
}

// NewTestTask builds a leaf *domain.Task with the given duration.
func NewTestTask(id string, duration int, opts ...TaskOption) *domain.Task {
	t := &domain.Task{ID: id, Duration: &duration}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestContainer builds a container *domain.Task with no duration of its
// own, deriving its dates from children.
func NewTestContainer(id string, children []*domain.Task, opts ...TaskOption) *domain.Task {
	t := &domain.Task{ID: id, Children: children}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resource options.
type ResourceOption func(*domain.Resource)

func WithResourceCalendar(id string) ResourceOption {
	return func(r *domain.Resource) { r.CalendarID = &id }
}

func WithUnitCost(cost float64) ResourceOption {
	return func(r *domain.Resource) { r.UnitCost = &cost }
}

// NewTestResource builds a *domain.Resource with the given capacity.
func NewTestResource(id string, capacity float64, opts ...ResourceOption) *domain.Resource {
	r := &domain.Resource{ID: id, Capacity: capacity}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Calendar options.
type CalendarOption func(*domain.Calendar)

func WithHolidays(ranges ...domain.HolidayRange) CalendarOption {
	return func(c *domain.Calendar) { c.Holidays = append(c.Holidays, ranges...) }
}

// WithSingleDayHoliday is a convenience wrapper for the common case of a
// one-day holiday.
func WithSingleDayHoliday(name string, day time.Time) CalendarOption {
	return WithHolidays(domain.HolidayRange{Name: name, Start: day, End: day})
}

// NewTestCalendar builds a Mon-Fri calendar with id, plus any holidays
// supplied via WithHolidays.
func NewTestCalendar(id string, opts ...CalendarOption) *domain.Calendar {
	c := domain.DefaultWorkWeek(id)
	for _, opt := range opts {
		opt(c)
	}
	return c
}
