package domain

import "time"

// Constraint pins or bounds a task's start/finish date. A task may carry at
// most one (spec.md §3).
type Constraint struct {
	Kind ConstraintKind
	Date time.Time
}
