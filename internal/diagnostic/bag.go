package diagnostic

import "sort"

// Bag accumulates diagnostics across the phases of a single scheduling call.
// No deduplication is performed (spec.md §4.8): the same code may appear
// twice if two distinct situations triggered it.
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends d to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Addf is a convenience constructor-and-add for the common case of a
// message with no structured details.
func (b *Bag) Addf(code string, sev Severity, phase Phase, taskID, message string) {
	b.Add(Diagnostic{Code: code, Severity: sev, Phase: phase, TaskID: taskID, Message: message})
}

// Merge appends every diagnostic from other into b.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// HasErrors reports whether any Error-severity diagnostic is present.
// Scheduling must not begin — or must abort — when this is true
// (spec.md §4.2).
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns the raw, unsorted diagnostic list.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// Len reports how many diagnostics the bag holds.
func (b *Bag) Len() int {
	return len(b.items)
}

// CountBySeverity returns how many diagnostics of each severity are present.
func (b *Bag) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, d := range b.items {
		counts[d.Severity]++
	}
	return counts
}

// phaseOrder assigns a deterministic rank to each phase so that sorting by
// phase name doesn't accidentally depend on string ordering matching
// pipeline ordering.
var phaseOrder = map[Phase]int{
	PhaseValidate: 0,
	PhaseDepGraph: 1,
	PhaseForward:  2,
	PhaseBackward: 3,
	PhaseLeveling: 4,
	PhaseBaseline: 5,
}

// Sorted returns every diagnostic ordered by (phase, severity descending,
// task id, code), the canonical order spec.md §4.8 requires.
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		a, c := out[i], out[j]

		pa, pc := phaseOrder[a.Phase], phaseOrder[c.Phase]
		if pa != pc {
			return pa < pc
		}
		if a.Severity != c.Severity {
			return a.Severity > c.Severity // descending: Error first
		}
		if a.TaskID != c.TaskID {
			return a.TaskID < c.TaskID
		}
		return a.Code < c.Code
	})
	return out
}
