package leveling

import (
	"sort"
	"time"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/domain"
)

// DetectConflicts finds every (day, resource) pair whose assigned units
// exceed capacity, enumerated in the deterministic order spec.md §4.5 step 3
// requires: sorted by (day, resource-id, fully-qualified task id).
func DetectConflicts(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, tasks map[string]*cpm.ScheduledTask) []Conflict {
	type dayResourceKey struct {
		day        time.Time
		resourceID string
	}
	load := make(map[dayResourceKey]map[string]float64)

	for _, ref := range graph.Leaves {
		sched := tasks[ref.FQID]
		if sched == nil || len(ref.Task.Assignments) == 0 {
			continue
		}
		cal := calendars.Get(project.EffectiveCalendarID(ref.Task))
		for _, day := range activeWorkingDays(sched, ref.Task.EffectiveRegime(), cal) {
			for _, a := range ref.Task.Assignments {
				key := dayResourceKey{day: day, resourceID: a.ResourceID}
				if load[key] == nil {
					load[key] = make(map[string]float64)
				}
				load[key][ref.FQID] += a.Units
			}
		}
	}

	var conflicts []Conflict
	for key, byTask := range load {
		resource := project.ResourceByID(key.resourceID)
		if resource == nil {
			continue
		}
		total := 0.0
		for _, u := range byTask {
			total += u
		}
		if !domain.UnitsGreater(total, resource.Capacity) {
			continue
		}
		var fqids []string
		for fqid := range byTask {
			fqids = append(fqids, fqid)
		}
		sort.Strings(fqids)
		conflicts = append(conflicts, Conflict{Day: key.day, ResourceID: key.resourceID, TaskFQIDs: fqids})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if !a.Day.Equal(b.Day) {
			return a.Day.Before(b.Day)
		}
		if a.ResourceID != b.ResourceID {
			return a.ResourceID < b.ResourceID
		}
		return a.TaskFQIDs[0] < b.TaskFQIDs[0]
	})
	return conflicts
}

// activeWorkingDays lists every working day a task occupies, inclusive of
// its early-start and early-finish (event-regime tasks report every
// calendar day in the span since they still participate in the project
// calendar even though their own duration arithmetic ignores it).
func activeWorkingDays(sched *cpm.ScheduledTask, regime domain.Regime, cal *domain.Calendar) []time.Time {
	var days []time.Time
	for d := sched.EarlyStart; !d.After(sched.EarlyFinish); d = d.AddDate(0, 0, 1) {
		if regime == domain.RegimeEvent || calendar.IsWorkingDay(d, cal) {
			days = append(days, d)
		}
	}
	return days
}
