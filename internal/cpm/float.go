package cpm

import (
	"time"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/domain"
)

// ComputeFloat fills TotalFloat, FreeFloat, and IsCritical on every task in
// tasks (spec.md §4.4). total_float is in working days for work-regime
// tasks and calendar days for event-regime tasks (Open Question (b)).
func ComputeFloat(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, tasks map[string]*ScheduledTask) {
	for _, fqid := range graph.Order {
		t := graph.ByFQID[fqid]
		sched := tasks[fqid]
		cal := calendars.Get(project.EffectiveCalendarID(t))
		regime := t.EffectiveRegime()

		sched.TotalFloat = dayGap(sched.EarlyStart, sched.LateStart, regime, cal)
		sched.IsCritical = sched.TotalFloat == 0
		sched.FreeFloat = computeFreeFloat(graph, tasks, fqid, sched, regime, cal)
	}
}

// dayGap is the signed distance from earlier to later, in working days
// (work regime) or calendar days (event regime).
func dayGap(earlier, later time.Time, regime domain.Regime, cal *domain.Calendar) int {
	if regime == domain.RegimeEvent {
		return int(later.Sub(earlier).Hours() / 24)
	}
	return calendar.WorkingDayCount(earlier, later, cal)
}

// computeFreeFloat is the smallest slack before any successor's start would
// have to move: the minimum, over successor edges, of the gap between this
// task's finish and the room the edge leaves before the successor's own
// early-start. A task with no successors has free float equal to total
// float.
func computeFreeFloat(graph *depgraph.Graph, tasks map[string]*ScheduledTask, fqid string, sched *ScheduledTask, regime domain.Regime, cal *domain.Calendar) int {
	successors := graph.Successors(fqid)
	if len(successors) == 0 {
		return sched.TotalFloat
	}

	min := -1
	for _, e := range successors {
		succ := tasks[e.SuccessorFQID]
		if succ == nil {
			continue
		}
		var slack int
		switch e.Kind {
		case domain.FinishToStart:
			slack = dayGap(sched.EarlyFinish.AddDate(0, 0, 1), succ.EarlyStart, regime, cal) - e.Lag
		case domain.StartToStart:
			slack = dayGap(sched.EarlyStart, succ.EarlyStart, regime, cal) - e.Lag
		case domain.FinishToFinish:
			slack = dayGap(sched.EarlyFinish, succ.EarlyFinish, regime, cal) - e.Lag
		case domain.StartToFinish:
			slack = dayGap(sched.EarlyStart, succ.EarlyFinish, regime, cal) - e.Lag
		}
		if slack < 0 {
			slack = 0
		}
		if min == -1 || slack < min {
			min = slack
		}
	}
	if min == -1 {
		return sched.TotalFloat
	}
	return min
}
