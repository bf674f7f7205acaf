// Package classify provides pure, read-only partitioning of tasks over a
// computed schedule (spec.md §4.7). Classifiers never mutate the project or
// schedule they're given.
package classify

import (
	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/domain"
)

// Label is a classifier's human-facing bucket name.
type Label string

const (
	Backlog Label = "Backlog"
	Ready   Label = "Ready"
	Doing   Label = "Doing"
	Review  Label = "Review"
	Done    Label = "Done"
	Invalid Label = "Invalid"
)

// Classification is one task's bucket assignment: the label plus a stable
// order index buckets sort by.
type Classification struct {
	Label Label
	Order int
}

// Classifier maps one leaf task and its computed schedule to a
// Classification. Implementations must be pure: no mutation of t or sched.
type Classifier func(t *domain.Task, sched *cpm.ScheduledTask) Classification

// StatusClassifier is the built-in classifier spec.md §4.7 defines, based
// purely on percent_complete.
func StatusClassifier(t *domain.Task, sched *cpm.ScheduledTask) Classification {
	pc := t.PercentComplete
	switch {
	case pc == 0:
		return Classification{Label: Backlog, Order: 0}
	case pc > 0 && pc <= 25:
		return Classification{Label: Ready, Order: 1}
	case pc > 25 && pc <= 75:
		return Classification{Label: Doing, Order: 2}
	case pc > 75 && pc < 100:
		return Classification{Label: Review, Order: 3}
	case pc == 100:
		return Classification{Label: Done, Order: 4}
	default:
		return Classification{Label: Invalid, Order: 5}
	}
}
