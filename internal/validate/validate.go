// Package validate rejects structurally invalid projects before scheduling
// begins (spec.md §4.2). It enforces the task invariants T1, T3, T5, T6,
// checks that every resource/calendar reference resolves, and that every
// constraint carries a date. Dependency lags are not checked. Scheduling must not start if
// Validate's bag carries any Error-severity diagnostic.
package validate

import (
	"sort"

	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
)

// Validate runs every structural check in a fixed order and returns the
// accumulated diagnostics in check order; within a check, tasks appear in
// tree order and resources by id. The bag is not sorted further here;
// Bag.Sorted gives the canonical order. Checks do not short-circuit on the first
// failure — every applicable check runs against every task so the caller
// sees the complete picture in one pass.
func Validate(project *domain.Project) *diagnostic.Bag {
	bag := diagnostic.NewBag()

	calendarIDs := make(map[string]bool, len(project.Calendars))
	for _, c := range project.Calendars {
		calendarIDs[c.ID] = true
	}
	resourceIDs := make(map[string]bool, len(project.Resources))
	for _, r := range project.Resources {
		resourceIDs[r.ID] = true
	}

	checkDuplicateSiblingIDs(bag, project.Tasks)
	checkWorkSpecs(bag, project.Tasks)
	checkActualOrder(bag, project.Tasks)
	checkRemainingBound(bag, project.Tasks)
	checkConstraints(bag, project.Tasks)
	checkCalendarReferences(bag, project.Tasks, project.DefaultCalendarID, calendarIDs)
	checkResourceReferences(bag, project.Tasks, resourceIDs)
	checkResourceCapacities(bag, project.Resources)

	return bag
}

func checkDuplicateSiblingIDs(bag *diagnostic.Bag, roots []*domain.Task) {
	var walk func(siblings []*domain.Task, parentFQID string)
	walk = func(siblings []*domain.Task, parentFQID string) {
		seen := make(map[string]bool, len(siblings))
		for _, t := range siblings {
			fqid := t.ID
			if parentFQID != "" {
				fqid = parentFQID + "." + t.ID
			}
			if seen[t.ID] {
				bag.Add(diagnostic.Diagnostic{
					Code: diagnostic.CodeDuplicateSiblingID, Severity: diagnostic.Error,
					Phase: diagnostic.PhaseValidate, TaskID: fqid,
					Message: "duplicate sibling id " + t.ID,
				})
			}
			seen[t.ID] = true
			walk(t.Children, fqid)
		}
	}
	walk(roots, "")
}

// checkWorkSpecs enforces T1 (container has no honored work spec) and T5
// (a leaf declares exactly one of duration/effort).
func checkWorkSpecs(bag *diagnostic.Bag, roots []*domain.Task) {
	for _, ref := range domain.AllTasks(roots) {
		t := ref.Task
		hasDuration := t.Duration != nil
		hasEffort := t.Effort != nil

		if t.Role() == domain.RoleContainer {
			if hasDuration || hasEffort {
				bag.Add(diagnostic.Diagnostic{
					Code: diagnostic.CodeContainerHasWorkSpec, Severity: diagnostic.Warning,
					Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
					Message: "container carries a duration/effort attribute; children define it instead",
				})
			}
			continue
		}

		switch {
		case !hasDuration && !hasEffort:
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeMissingWorkSpec, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
				Message: "leaf declares neither duration nor effort",
			})
		case hasDuration && hasEffort:
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeAmbiguousWorkSpec, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
				Message: "leaf declares both duration and effort",
			})
		}
	}
}

// checkActualOrder enforces T3: actual_start <= actual_finish when both
// are present.
func checkActualOrder(bag *diagnostic.Bag, roots []*domain.Task) {
	for _, ref := range domain.AllTasks(roots) {
		t := ref.Task
		if t.ActualStart != nil && t.ActualFinish != nil && t.ActualStart.After(*t.ActualFinish) {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeActualOrderInverted, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
				Message: "actual_start is after actual_finish",
			})
		}
	}
}

// checkRemainingBound enforces T6: remaining <= original duration. Only
// applicable to duration-driven leaves; effort-driven remaining is bounded
// by the solver after effort-to-duration conversion.
func checkRemainingBound(bag *diagnostic.Bag, roots []*domain.Task) {
	for _, ref := range domain.AllTasks(roots) {
		t := ref.Task
		if t.Remaining != nil && t.Duration != nil && *t.Remaining > *t.Duration {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeRemainingExceedsDuration, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
				Message: "remaining exceeds original duration",
				Details: map[string]any{"remaining": *t.Remaining, "duration": *t.Duration},
			})
		}
	}
}

// checkConstraints enforces that at most one constraint is declared per
// task — domain.Task already only has room for one Constraint field, so
// this guards against a future multi-constraint representation and checks
// the constraint date itself is not the zero value.
func checkConstraints(bag *diagnostic.Bag, roots []*domain.Task) {
	for _, ref := range domain.AllTasks(roots) {
		c := ref.Task.Constraint
		if c == nil {
			continue
		}
		if c.Date.IsZero() {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeConflictingConstraints, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
				Message: "constraint is missing a date",
			})
		}
	}
}

func checkCalendarReferences(bag *diagnostic.Bag, roots []*domain.Task, defaultCalendarID string, calendarIDs map[string]bool) {
	if defaultCalendarID != "" && !calendarIDs[defaultCalendarID] {
		bag.Add(diagnostic.Diagnostic{
			Code: diagnostic.CodeUnknownCalendar, Severity: diagnostic.Error,
			Phase: diagnostic.PhaseValidate,
			Message: "project default_calendar_id " + defaultCalendarID + " does not exist",
		})
	}
	for _, ref := range domain.AllTasks(roots) {
		if ref.Task.CalendarID != nil && !calendarIDs[*ref.Task.CalendarID] {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeUnknownCalendar, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
				Message: "calendar_id " + *ref.Task.CalendarID + " does not exist",
			})
		}
	}
}

func checkResourceReferences(bag *diagnostic.Bag, roots []*domain.Task, resourceIDs map[string]bool) {
	for _, ref := range domain.AllTasks(roots) {
		for _, a := range ref.Task.Assignments {
			if !resourceIDs[a.ResourceID] {
				bag.Add(diagnostic.Diagnostic{
					Code: diagnostic.CodeUnknownResource, Severity: diagnostic.Error,
					Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
					Message: "assignment references unknown resource " + a.ResourceID,
				})
				continue
			}
			if a.Units <= 0 {
				bag.Add(diagnostic.Diagnostic{
					Code: diagnostic.CodeInvalidResourceCapacity, Severity: diagnostic.Error,
					Phase: diagnostic.PhaseValidate, TaskID: ref.FQID,
					Message: "assignment units must be positive",
				})
			}
		}
	}
}

func checkResourceCapacities(bag *diagnostic.Bag, resources []*domain.Resource) {
	sorted := make([]*domain.Resource, len(resources))
	copy(sorted, resources)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, r := range sorted {
		if r.Capacity <= 0 {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeInvalidResourceCapacity, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseValidate,
				Message: "resource " + r.ID + " has non-positive capacity",
			})
		}
	}
}
