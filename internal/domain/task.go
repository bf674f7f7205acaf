package domain

import "time"

// Task is a node in the work-breakdown structure. A node with at least one
// child is a container; a node with none is a leaf and carries work
// (spec.md §3, invariant T1). Role is never stored — it is derived from
// tree shape so the ownership graph can never itself encode a lie about its
// own leaves.
type Task struct {
	ID       string
	Title    string
	Children []*Task

	// Work specification (leaves only): exactly one of Duration or Effort
	// is set (invariant T5). Duration is a working-day span in the work
	// regime or a calendar-day span in the event regime. Effort is
	// person-days, converted to a duration via assigned resource units.
	Duration *int
	Effort   *int

	Dependencies []Dependency
	Assignments  []ResourceAssignment
	Constraint   *Constraint

	PercentComplete float64
	ActualStart     *time.Time
	ActualFinish    *time.Time
	Remaining       *int // overrides the linear remaining-duration model (invariant T6)

	CalendarID *string
	Priority   int
	Regime     Regime
}

// Role reports whether t is a leaf or a container.
func (t *Task) Role() TaskRole {
	if len(t.Children) > 0 {
		return RoleContainer
	}
	return RoleLeaf
}

// EffectiveRegime resolves the task's regime, defaulting to the work
// regime when unset.
func (t *Task) EffectiveRegime() Regime {
	if t.Regime == "" {
		return RegimeWork
	}
	return t.Regime
}

// EffectivePriority resolves the task's leveling priority, defaulting to
// 500 (spec.md §3).
func (t *Task) EffectivePriority() int {
	if t.Priority == 0 {
		return 500
	}
	return t.Priority
}

// IsMilestone reports whether t is a leaf with zero duration.
func (t *Task) IsMilestone() bool {
	return t.Role() == RoleLeaf && t.Duration != nil && *t.Duration == 0
}

// IsAnchored reports whether t is pinned in place for leveling purposes:
// it has actually started, or progress has begun (spec.md §4.5 step 4a).
func (t *Task) IsAnchored() bool {
	return t.ActualStart != nil || t.PercentComplete > 0
}

// WalkFunc is called once per node during a Walk, with the node's
// fully-qualified id and its ancestor chain (root-first, t excluded).
type WalkFunc func(fqid string, t *Task, ancestors []*Task)

// Walk performs a deterministic depth-first, declaration-order traversal of
// roots, invoking fn for every node (leaves and containers alike) with its
// dot-joined fully-qualified id (spec.md §3).
func Walk(roots []*Task, fn WalkFunc) {
	var walk func(t *Task, prefix string, ancestors []*Task)
	walk = func(t *Task, prefix string, ancestors []*Task) {
		fqid := t.ID
		if prefix != "" {
			fqid = prefix + "." + t.ID
		}
		fn(fqid, t, ancestors)
		childAncestors := append(append([]*Task{}, ancestors...), t)
		for _, c := range t.Children {
			walk(c, fqid, childAncestors)
		}
	}
	for _, r := range roots {
		walk(r, "", nil)
	}
}

// Leaves returns every leaf task under roots together with its
// fully-qualified id, in declaration order.
func Leaves(roots []*Task) []TaskRef {
	var out []TaskRef
	Walk(roots, func(fqid string, t *Task, ancestors []*Task) {
		if t.Role() == RoleLeaf {
			out = append(out, TaskRef{FQID: fqid, Task: t, Ancestors: ancestors})
		}
	})
	return out
}

// TaskRef pairs a task with its resolved fully-qualified id and ancestor
// chain, as produced by Walk/Leaves.
type TaskRef struct {
	FQID      string
	Task      *Task
	Ancestors []*Task
}

// AllTasks returns every node (leaves and containers) under roots with its
// fully-qualified id, in declaration order.
func AllTasks(roots []*Task) []TaskRef {
	var out []TaskRef
	Walk(roots, func(fqid string, t *Task, ancestors []*Task) {
		out = append(out, TaskRef{FQID: fqid, Task: t, Ancestors: ancestors})
	})
	return out
}
