package domain

import "time"

// Project is the envelope supplied by the external parser: a tree of tasks,
// a set of resources, and a set of calendars, plus scheduling-relevant dates.
//
// Invariant: StartDate <= every computed early-start. If EndDate is set it
// participates in the backward pass (spec.md §3).
type Project struct {
	ID                string
	Name              string
	StartDate         time.Time
	EndDate           *time.Time
	StatusDate        *time.Time
	Currency          string
	DefaultCalendarID string

	Tasks     []*Task
	Resources []*Resource
	Calendars []*Calendar
}

// ResourceByID returns the resource with the given id, or nil.
func (p *Project) ResourceByID(id string) *Resource {
	for _, r := range p.Resources {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// CalendarByID returns the calendar with the given id, or nil.
func (p *Project) CalendarByID(id string) *Calendar {
	for _, c := range p.Calendars {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// EffectiveCalendarID resolves a task's calendar override against the
// project default; a project with no default falls back to its first
// calendar.
func (p *Project) EffectiveCalendarID(t *Task) string {
	override := ""
	if t.CalendarID != nil {
		override = *t.CalendarID
	}
	fallback := ""
	if len(p.Calendars) > 0 {
		fallback = p.Calendars[0].ID
	}
	return CoalesceStr(override, p.DefaultCalendarID, fallback)
}
