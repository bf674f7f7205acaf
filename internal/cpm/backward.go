package cpm

import (
	"time"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/domain"
)

// Backward runs the backward pass in reverse topological order, filling in
// LateStart/LateFinish on the tasks Forward already produced (spec.md
// §4.4). target is the project's backward-pass anchor: project.EndDate if
// set, else the max early-finish across sink leaves.
func Backward(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, tasks map[string]*ScheduledTask, target time.Time) {
	for i := len(graph.Order) - 1; i >= 0; i-- {
		fqid := graph.Order[i]
		t := graph.ByFQID[fqid]
		sched := tasks[fqid]
		cal := calendars.Get(project.EffectiveCalendarID(t))
		regime := t.EffectiveRegime()
		effDur := EffectiveDuration(t)

		successors := graph.Successors(fqid)
		var lateFinish time.Time
		if len(successors) == 0 {
			lateFinish = target
		} else {
			first := true
			for _, e := range successors {
				succ := tasks[e.SuccessorFQID]
				if succ == nil {
					continue
				}
				var candidate time.Time
				switch e.Kind {
				case domain.FinishToStart:
					candidate = shiftForward(succ.LateStart, -e.Lag, regime, cal).AddDate(0, 0, -1)
					if regime == domain.RegimeWork {
						candidate = calendar.PreviousWorkingDay(candidate, cal)
					}
				case domain.StartToStart:
					startBound := shiftForward(succ.LateStart, -e.Lag, regime, cal)
					candidate = spanFinish(startBound, effDur, regime, cal)
				case domain.FinishToFinish:
					candidate = shiftForward(succ.LateFinish, -e.Lag, regime, cal)
				case domain.StartToFinish:
					startBound := shiftForward(succ.LateFinish, -e.Lag, regime, cal)
					candidate = spanFinish(startBound, effDur, regime, cal)
				}
				if first || candidate.Before(lateFinish) {
					lateFinish = candidate
					first = false
				}
			}
			if first {
				lateFinish = target
			}
		}
		if lateFinish.After(target) {
			lateFinish = target
		}

		if t.Constraint != nil {
			lateFinish = applyFinishConstraint(lateFinish, t.Constraint, effDur, regime, cal)
		}

		lateStart := spanStart(lateFinish, effDur, regime, cal)

		sched.LateStart = lateStart
		sched.LateFinish = lateFinish
	}
}

// applyFinishConstraint mirrors applyStartConstraint for the backward pass:
// fixed-date constraints pin the late finish exactly.
func applyFinishConstraint(lateFinish time.Time, c *domain.Constraint, effDur int, regime domain.Regime, cal *domain.Calendar) time.Time {
	switch c.Kind {
	case domain.MustFinishOn:
		return c.Date
	case domain.MustStartOn:
		return spanFinish(c.Date, effDur, regime, cal)
	case domain.FinishNoLaterThan:
		return earlierOf(lateFinish, c.Date)
	case domain.StartNoLaterThan:
		return earlierOf(lateFinish, spanFinish(c.Date, effDur, regime, cal))
	default:
		return lateFinish
	}
}

// ProjectTarget resolves the backward pass anchor: project.EndDate if set,
// else the latest early-finish among leaves with no successors.
func ProjectTarget(project *domain.Project, graph *depgraph.Graph, tasks map[string]*ScheduledTask) time.Time {
	if project.EndDate != nil {
		return *project.EndDate
	}
	var target time.Time
	first := true
	for _, ref := range graph.Leaves {
		if len(graph.Successors(ref.FQID)) > 0 {
			continue
		}
		sched := tasks[ref.FQID]
		if sched == nil {
			continue
		}
		if first || sched.EarlyFinish.After(target) {
			target = sched.EarlyFinish
			first = false
		}
	}
	return target
}
