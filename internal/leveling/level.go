package leveling

import (
	"time"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
)

// Level applies the Critical-Path-Priority heuristic in place on tasks:
// it detects conflicts, delays the least-deserving victim of each, and
// re-propagates the delay to affected successors until no conflicts remain
// or the iteration cap is hit (spec.md §4.5).
func Level(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, tasks map[string]*cpm.ScheduledTask, opts Options) *diagnostic.Bag {
	bag := diagnostic.NewBag()

	initialConflicts := DetectConflicts(project, graph, calendars, tasks)
	if len(initialConflicts) == 0 {
		return bag
	}

	cap := len(graph.Leaves) * len(initialConflicts)
	if cap == 0 {
		cap = len(graph.Leaves)
	}

	iterations := 0
	for {
		conflicts := DetectConflicts(project, graph, calendars, tasks)
		if len(conflicts) == 0 {
			break
		}
		if iterations >= cap {
			bag.Addf(diagnostic.CodeApproximateLeveling, diagnostic.Warning, diagnostic.PhaseLeveling, "",
				"leveling reached its iteration cap; returning the partial result")
			break
		}
		iterations++

		conflict := conflicts[0]
		resolveOneConflict(project, graph, calendars, tasks, conflict, opts, bag)
	}

	return bag
}

func resolveOneConflict(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, tasks map[string]*cpm.ScheduledTask, conflict Conflict, opts Options, bag *diagnostic.Bag) {
	ranked := rankForDelay(conflict.TaskFQIDs, graph, tasks)

	for i := len(ranked) - 1; i >= 0; i-- {
		victimFQID := ranked[i]
		t := graph.ByFQID[victimFQID]
		if t.IsAnchored() {
			continue
		}
		sched := tasks[victimFQID]
		cal := calendars.Get(project.EffectiveCalendarID(t))
		regime := t.EffectiveRegime()
		effDur := cpm.EffectiveDuration(t)

		newStart := cpm.ShiftForward(sched.EarlyStart, 1, regime, cal)
		newFinish := cpm.SpanFinish(newStart, effDur, regime, cal)
		shiftDays := int(newStart.Sub(sched.EarlyStart).Hours() / 24)

		if withinDelayFactor(shiftDays, effDur, opts) && !violatesConstraint(t.Constraint, newStart, newFinish) {
			conflictingTask := ""
			for _, fqid := range ranked {
				if fqid != victimFQID {
					conflictingTask = fqid
					break
				}
			}
			applyDelay(graph, tasks, calendars, project, victimFQID, sched.EarlyStart, newStart, newFinish)
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeLevelingDelayApplied, Severity: diagnostic.Hint,
				Phase: diagnostic.PhaseLeveling, TaskID: victimFQID,
				Message: "delayed to clear a resource conflict",
				Details: map[string]any{
					"task_id": victimFQID, "shift_days": shiftDays,
					"original_start": sched.EarlyStart, "new_start": newStart,
					"reason": "resource_conflict", "conflicting_task": conflictingTask,
					"resource": conflict.ResourceID,
				},
			})
			return
		}
	}

	bag.Add(diagnostic.Diagnostic{
		Code: diagnostic.CodeLevelingCannotResolve, Severity: diagnostic.Warning,
		Phase: diagnostic.PhaseLeveling,
		Message: "no candidate could be delayed without violating an inviolable constraint",
		Details: map[string]any{"day": conflict.Day, "resource": conflict.ResourceID, "tasks": conflict.TaskFQIDs},
	})
}

func withinDelayFactor(shiftDays, effDur int, opts Options) bool {
	if effDur <= 0 {
		return true
	}
	return float64(shiftDays) <= opts.maxDelayFactor()*float64(effDur)
}

func violatesConstraint(c *domain.Constraint, newStart, newFinish time.Time) bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case domain.MustStartOn:
		return !newStart.Equal(c.Date)
	case domain.MustFinishOn:
		return !newFinish.Equal(c.Date)
	case domain.StartNoLaterThan:
		return newStart.After(c.Date)
	case domain.FinishNoLaterThan:
		return newFinish.After(c.Date)
	default:
		return false
	}
}

// applyDelay shifts the victim's dates and re-propagates the change forward
// through every transitive successor in topological order (spec.md §4.5
// step 5).
func applyDelay(graph *depgraph.Graph, tasks map[string]*cpm.ScheduledTask, calendars *calendar.Registry, project *domain.Project, victimFQID string, originalStart, newStart, newFinish time.Time) {
	sched := tasks[victimFQID]
	sched.EarlyStart = newStart
	sched.EarlyFinish = newFinish
	sched.ForecastStart = newStart
	sched.ForecastFinish = newFinish
	sched.Leveling = &cpm.LevelingReason{
		ShiftDays: int(newStart.Sub(originalStart).Hours() / 24), OriginalStart: originalStart, Reason: "resource_conflict",
	}

	startIdx := indexOf(graph.Order, victimFQID)
	if startIdx < 0 {
		return
	}
	for i := startIdx + 1; i < len(graph.Order); i++ {
		fqid := graph.Order[i]
		t := graph.ByFQID[fqid]
		if t.ActualStart != nil {
			continue
		}
		cur := tasks[fqid]
		cal := calendars.Get(project.EffectiveCalendarID(t))
		regime := t.EffectiveRegime()
		effDur := cpm.EffectiveDuration(t)

		bound := cpm.DependencyLowerBound(graph.Predecessors(fqid), tasks, effDur, regime, cal)
		if !bound.After(cur.EarlyStart) {
			continue
		}
		cur.EarlyStart = calendar.NextWorkingDay(bound, cal)
		if regime == domain.RegimeEvent {
			cur.EarlyStart = bound
		}
		cur.EarlyFinish = cpm.SpanFinish(cur.EarlyStart, effDur, regime, cal)
		cur.ForecastStart = cur.EarlyStart
		cur.ForecastFinish = cur.EarlyFinish
	}
}

func indexOf(order []string, fqid string) int {
	for i, v := range order {
		if v == fqid {
			return i
		}
	}
	return -1
}
