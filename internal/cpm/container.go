package cpm

import (
	"time"

	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
)

// DeriveContainers fills in every container's ScheduledTask by aggregating
// its children, bottom-up (spec.md §4.4 container derivation). Leaves must
// already be present in tasks.
func DeriveContainers(roots []*domain.Task, tasks map[string]*ScheduledTask) *diagnostic.Bag {
	bag := diagnostic.NewBag()

	var derive func(t *domain.Task, fqid string) *ScheduledTask
	derive = func(t *domain.Task, fqid string) *ScheduledTask {
		if t.Role() == domain.RoleLeaf {
			return tasks[fqid]
		}

		childScheds := make([]*ScheduledTask, 0, len(t.Children))
		childWeights := make([]int, 0, len(t.Children))
		for _, c := range t.Children {
			childFQID := fqid + "." + c.ID
			cs := derive(c, childFQID)
			childScheds = append(childScheds, cs)
			childWeights = append(childWeights, OriginalDuration(c))
		}

		sched := &ScheduledTask{FQID: fqid}
		for i, cs := range childScheds {
			if i == 0 || cs.EarlyStart.Before(sched.EarlyStart) {
				sched.EarlyStart = cs.EarlyStart
			}
			if i == 0 || cs.EarlyFinish.After(sched.EarlyFinish) {
				sched.EarlyFinish = cs.EarlyFinish
			}
			if i == 0 || cs.ForecastStart.Before(sched.ForecastStart) {
				sched.ForecastStart = cs.ForecastStart
			}
			if i == 0 || cs.ForecastFinish.After(sched.ForecastFinish) {
				sched.ForecastFinish = cs.ForecastFinish
			}
			if i == 0 || cs.LateStart.Before(sched.LateStart) {
				sched.LateStart = cs.LateStart
			}
			if i == 0 || cs.LateFinish.After(sched.LateFinish) {
				sched.LateFinish = cs.LateFinish
			}
			if i == 0 || cs.TotalFloat < sched.TotalFloat {
				sched.TotalFloat = cs.TotalFloat
			}
			if cs.IsCritical {
				sched.IsCritical = true
			}
		}

		derivedPercent, weightSum := weightedPercent(childScheds, childWeights)
		if t.PercentComplete > 0 {
			sched.PercentComplete = t.PercentComplete
			if weightSum > 0 {
				checkProgressDeviation(bag, fqid, t.PercentComplete, derivedPercent)
			}
		} else {
			sched.PercentComplete = derivedPercent
		}

		sched.ActualStart = minActualStart(childScheds)
		sched.ActualFinish = allActualFinish(childScheds)

		tasks[fqid] = sched
		return sched
	}

	for _, r := range roots {
		derive(r, r.ID)
	}
	return bag
}

func weightedPercent(children []*ScheduledTask, weights []int) (float64, int) {
	weightSum := 0
	progressSum := 0.0
	for i, w := range weights {
		weightSum += w
		progressSum += float64(w) * children[i].PercentComplete
	}
	if weightSum == 0 {
		return 0, 0
	}
	return roundToInt(progressSum / float64(weightSum)), weightSum
}

func roundToInt(v float64) float64 {
	return float64(int(v + 0.5))
}

// checkProgressDeviation implements T4: a user-set container percent is
// compared against the duration-weighted derivation; deviation over 20
// points warns, over 10 informs.
func checkProgressDeviation(bag *diagnostic.Bag, fqid string, userValue, derived float64) {
	deviation := userValue - derived
	if deviation < 0 {
		deviation = -deviation
	}
	switch {
	case deviation > 20:
		bag.Add(diagnostic.Diagnostic{
			Code: diagnostic.CodeContainerProgressDeviationHigh, Severity: diagnostic.Warning,
			Phase: diagnostic.PhaseForward, TaskID: fqid,
			Message: "container percent_complete deviates from the duration-weighted derivation by more than 20 points",
			Details: map[string]any{"declared": userValue, "derived": derived},
		})
	case deviation > 10:
		bag.Add(diagnostic.Diagnostic{
			Code: diagnostic.CodeContainerProgressDeviationLow, Severity: diagnostic.Hint,
			Phase: diagnostic.PhaseForward, TaskID: fqid,
			Message: "container percent_complete deviates from the duration-weighted derivation by more than 10 points",
			Details: map[string]any{"declared": userValue, "derived": derived},
		})
	}
}

// minActualStart is the earliest actual_start among children that have one,
// or nil if none do.
func minActualStart(children []*ScheduledTask) *time.Time {
	var min *time.Time
	for _, c := range children {
		if c.ActualStart == nil {
			continue
		}
		if min == nil || c.ActualStart.Before(*min) {
			t := *c.ActualStart
			min = &t
		}
	}
	return min
}

// allActualFinish is the latest actual_finish among children, but only if
// every leaf descendant has one; otherwise the container's actual_finish is
// undefined (spec.md §4.4).
func allActualFinish(children []*ScheduledTask) *time.Time {
	var max *time.Time
	for _, c := range children {
		if c.ActualFinish == nil {
			return nil
		}
		if max == nil || c.ActualFinish.After(*max) {
			t := *c.ActualFinish
			max = &t
		}
	}
	return max
}
