package baseline

import (
	"fmt"
	"sort"
	"time"

	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/diagnostic"
)

// Compare loads baseline name and computes per-leaf variance against
// result's current leaf early-dates (spec.md §4.6). Returns a nil bundle
// with a B004 diagnostic if the baseline doesn't exist.
func (s *Store) Compare(name string, result *cpm.Result) (*ComparisonBundle, *diagnostic.Bag, error) {
	bag := diagnostic.NewBag()
	b, err := s.Show(name)
	if err != nil {
		return nil, bag, err
	}
	if b == nil {
		bag.Add(diagnostic.Diagnostic{
			Code: diagnostic.CodeBaselineNotFound, Severity: diagnostic.Error,
			Phase: diagnostic.PhaseBaseline, Message: fmt.Sprintf("baseline %q not found", name),
		})
		return nil, bag, nil
	}

	ids := make(map[string]bool)
	for id := range b.Snapshots {
		ids[id] = true
	}
	// Derived containers are every proper dot-prefix of a task's fqid; only
	// leaves are compared.
	containers := make(map[string]bool)
	for id := range result.Tasks {
		for i := range id {
			if id[i] == '.' {
				containers[id[:i]] = true
			}
		}
	}
	for id := range result.Tasks {
		if !containers[id] {
			ids[id] = true
		}
	}

	var variances []TaskVariance
	counts := make(map[VarianceStatus]int)
	for id := range ids {
		baseSnap, inBase := b.Snapshots[id]
		cur, inCur := result.Tasks[id]

		var v TaskVariance
		v.FQID = id
		switch {
		case inBase && inCur:
			startDays := calendarDayDiff(cur.EarlyStart, baseSnap.EarlyStart)
			finishDays := calendarDayDiff(cur.EarlyFinish, baseSnap.EarlyFinish)
			v.StartVarianceDays = &startDays
			v.FinishVarianceDays = &finishDays
			switch {
			case finishDays == 0:
				v.Status = OnSchedule
			case finishDays < 0:
				v.Status = Ahead
			default:
				v.Status = Delayed
			}
		case inBase && !inCur:
			v.Status = Removed
		case !inBase && inCur:
			v.Status = Added
		}
		variances = append(variances, v)
		counts[v.Status]++
	}

	sort.Slice(variances, func(i, j int) bool { return variances[i].FQID < variances[j].FQID })

	bundle := &ComparisonBundle{
		BaselineName:  b.Name,
		BaselineSaved: b.Saved,
		Variances:     variances,
		Summary: ComparisonSummary{
			Counts:              counts,
			ProjectVarianceDays: calendarDayDiff(result.ProjectFinish, b.ProjectFinish),
		},
	}
	return bundle, bag, nil
}

// calendarDayDiff returns the signed calendar-day difference current -
// baseline, rounded to the nearest day (spec.md §4.6: variance is "signed
// difference in working days" expressed as a calendar-day delta between the
// two output dates).
func calendarDayDiff(current, baseline time.Time) int {
	return int(current.Sub(baseline).Round(24 * time.Hour).Hours() / 24)
}
