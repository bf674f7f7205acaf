package cpm

import (
	"time"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
)

// Options carries the scheduling-call-level knobs that affect the forward
// pass (spec.md §6).
type Options struct {
	// AsOf overrides project.StatusDate; resolution order is AsOf >
	// project.StatusDate > no status date at all.
	AsOf *time.Time
}

func (o Options) statusDate(project *domain.Project) *time.Time {
	if o.AsOf != nil {
		return o.AsOf
	}
	return project.StatusDate
}

// Forward runs the progress-aware forward pass over graph's leaves in
// topological order, producing early dates for every leaf (spec.md §4.4).
// Containers are not populated here; see container.go.
func Forward(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, opts Options) (map[string]*ScheduledTask, *diagnostic.Bag) {
	bag := diagnostic.NewBag()
	out := make(map[string]*ScheduledTask, len(graph.Leaves))
	statusDate := opts.statusDate(project)

	for _, fqid := range graph.Order {
		t := graph.ByFQID[fqid]
		cal := calendars.Get(project.EffectiveCalendarID(t))
		regime := t.EffectiveRegime()
		effDur := EffectiveDuration(t)

		var earlyStart time.Time
		inProgress := t.ActualStart != nil && t.ActualFinish == nil

		if t.ActualStart != nil {
			earlyStart = *t.ActualStart
		} else {
			bound := dependencyLowerBound(graph.Predecessors(fqid), out, effDur, regime, cal)
			if t.Constraint != nil {
				bound = applyStartConstraint(bound, t.Constraint, effDur, regime, cal, bag, fqid)
			}
			clamp := project.StartDate
			if statusDate != nil && statusDate.After(clamp) {
				clamp = *statusDate
			}
			earlyStart = laterOf(bound, clamp)
			if regime == domain.RegimeWork {
				earlyStart = calendar.NextWorkingDay(earlyStart, cal)
			}
		}

		var earlyFinish time.Time
		if t.ActualFinish != nil {
			earlyFinish = *t.ActualFinish
		} else {
			basePoint := earlyStart
			if inProgress && statusDate != nil && statusDate.After(basePoint) {
				basePoint = *statusDate
			}
			earlyFinish = spanFinish(basePoint, effDur, regime, cal)
		}

		if t.ActualStart != nil && bag != nil {
			checkHistoricalDependencyViolation(bag, graph.Predecessors(fqid), out, earlyStart, effDur, regime, cal, fqid)
		}

		out[fqid] = &ScheduledTask{
			FQID:            fqid,
			EarlyStart:      earlyStart,
			EarlyFinish:     earlyFinish,
			ForecastStart:   earlyStart,
			ForecastFinish:  earlyFinish,
			PercentComplete: t.PercentComplete,
			ActualStart:     t.ActualStart,
			ActualFinish:    t.ActualFinish,
		}
	}

	return out, bag
}

// DependencyLowerBound exposes dependencyLowerBound for internal/leveling's
// targeted re-propagation after a delay is applied.
func DependencyLowerBound(preds []domain.Edge, scheduled map[string]*ScheduledTask, effDur int, regime domain.Regime, cal *domain.Calendar) time.Time {
	return dependencyLowerBound(preds, scheduled, effDur, regime, cal)
}

// dependencyLowerBound is the max over predecessor edges of the date that
// edge's kind demands (spec.md §4.4 step 1). An FS edge anchors on the
// calendar day after the predecessor's inclusive finish, since that finish
// day was itself spent working; the other kinds anchor directly on the
// predecessor's start or finish.
func dependencyLowerBound(preds []domain.Edge, scheduled map[string]*ScheduledTask, effDur int, regime domain.Regime, cal *domain.Calendar) time.Time {
	var bound time.Time
	first := true
	for _, e := range preds {
		p := scheduled[e.PredecessorFQID]
		if p == nil {
			continue
		}
		var candidate time.Time
		switch e.Kind {
		case domain.FinishToStart:
			anchor := p.EarlyFinish.AddDate(0, 0, 1)
			candidate = shiftForward(anchor, e.Lag, regime, cal)
		case domain.StartToStart:
			candidate = shiftForward(p.EarlyStart, e.Lag, regime, cal)
		case domain.FinishToFinish:
			finishBound := shiftForward(p.EarlyFinish, e.Lag, regime, cal)
			candidate = spanStart(finishBound, effDur, regime, cal)
		case domain.StartToFinish:
			finishBound := shiftForward(p.EarlyStart, e.Lag, regime, cal)
			candidate = spanStart(finishBound, effDur, regime, cal)
		}
		if first || candidate.After(bound) {
			bound = candidate
			first = false
		}
	}
	return bound
}

// applyStartConstraint narrows bound per the task's single constraint
// (spec.md §4.4 step 2). must_start_on/must_finish_on fix an exact date;
// a fixed date inconsistent with the dependency lower bound is an E-class
// conflict. The *_no_earlier_than / *_no_later_than forms intersect the
// window; a later-than violation is left for the caller to observe in the
// computed dates rather than aborting, matching the house style of
// reporting rather than silently rewriting (spec.md §4.4 conflict policy).
func applyStartConstraint(bound time.Time, c *domain.Constraint, effDur int, regime domain.Regime, cal *domain.Calendar, bag *diagnostic.Bag, fqid string) time.Time {
	switch c.Kind {
	case domain.MustStartOn:
		start := c.Date
		if regime == domain.RegimeWork && !calendar.IsWorkingDay(start, cal) {
			snapped := calendar.NextWorkingDay(start, cal)
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeConstraintOnNonWorkingDay, Severity: diagnostic.Hint,
				Phase: diagnostic.PhaseForward, TaskID: fqid,
				Message: "must_start_on falls on a non-working day; snapped forward",
				Details: map[string]any{"original": c.Date, "snapped": snapped},
			})
			start = snapped
		}
		if start.Before(bound) {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeConflictingConstraints, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseForward, TaskID: fqid,
				Message: "must_start_on is inconsistent with dependency predecessors",
			})
		}
		return start
	case domain.MustFinishOn:
		start := spanStart(c.Date, effDur, regime, cal)
		if start.Before(bound) {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeConflictingConstraints, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseForward, TaskID: fqid,
				Message: "must_finish_on is inconsistent with dependency predecessors",
			})
		}
		return start
	case domain.StartNoEarlierThan:
		return laterOf(bound, c.Date)
	case domain.FinishNoEarlierThan:
		return laterOf(bound, spanStart(c.Date, effDur, regime, cal))
	case domain.StartNoLaterThan, domain.FinishNoLaterThan:
		return bound
	default:
		return bound
	}
}

// checkHistoricalDependencyViolation emits P005 when an actual_start
// predates what the dependency graph would otherwise require — reality
// wins, but the engine flags the discrepancy (spec.md §4.4 conflict policy).
func checkHistoricalDependencyViolation(bag *diagnostic.Bag, preds []domain.Edge, scheduled map[string]*ScheduledTask, actualStart time.Time, effDur int, regime domain.Regime, cal *domain.Calendar, fqid string) {
	if len(preds) == 0 {
		return
	}
	bound := dependencyLowerBound(preds, scheduled, effDur, regime, cal)
	if bound.After(actualStart) {
		bag.Add(diagnostic.Diagnostic{
			Code: diagnostic.CodeDependencyHistoricallyViolated, Severity: diagnostic.Warning,
			Phase: diagnostic.PhaseForward, TaskID: fqid,
			Message: "actual_start predates what its dependencies would require; keeping the actual date",
			Details: map[string]any{"actual_start": actualStart, "dependency_lower_bound": bound},
		})
	}
}
