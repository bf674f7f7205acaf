package domain

// Regime selects how a task's duration arithmetic treats non-working days.
type Regime string

const (
	RegimeWork  Regime = "work"
	RegimeEvent Regime = "event"
)

// DependencyKind is the relation a dependency edge expresses between a
// predecessor and a successor.
type DependencyKind string

const (
	FinishToStart DependencyKind = "FS"
	StartToStart  DependencyKind = "SS"
	FinishToFinish DependencyKind = "FF"
	StartToFinish DependencyKind = "SF"
)

// ConstraintKind enumerates the mutually-exclusive date constraints a task
// may carry.
type ConstraintKind string

const (
	MustStartOn         ConstraintKind = "must_start_on"
	MustFinishOn        ConstraintKind = "must_finish_on"
	StartNoEarlierThan  ConstraintKind = "start_no_earlier_than"
	StartNoLaterThan    ConstraintKind = "start_no_later_than"
	FinishNoEarlierThan ConstraintKind = "finish_no_earlier_than"
	FinishNoLaterThan   ConstraintKind = "finish_no_later_than"
)

// TaskRole distinguishes leaves (which carry work) from containers (which
// aggregate their children). Role is derived from tree shape, never stored.
type TaskRole string

const (
	RoleLeaf      TaskRole = "leaf"
	RoleContainer TaskRole = "container"
)

// LevelingMode selects how the engine reacts to resource over-allocation.
type LevelingMode string

const (
	LevelingWarn LevelingMode = "warn"
	LevelingAuto LevelingMode = "auto"
	LevelingError LevelingMode = "error"
)
