// Package cpm implements the progress-aware CPM forward/backward pass, float
// and critical-path computation, and container-date derivation (spec.md
// §4.4). It operates over the leaf DAG built by internal/depgraph and the
// calendars resolved by internal/calendar.
package cpm

import "time"

// SatisfiedDependency records the realized lag of one incoming dependency
// edge once the successor's early-start has been fixed, for
// ScheduledTask.Dependencies (spec.md §3).
type SatisfiedDependency struct {
	PredecessorFQID string
	Kind            string
	Lag             int
	RealizedLagDays int
}

// LevelingReason explains a delay applied by internal/leveling, carried on
// the scheduled task it affected (spec.md §4.5).
type LevelingReason struct {
	ShiftDays       int
	OriginalStart   time.Time
	Reason          string
	ConflictingTask string
	Resource        string
}

// ScheduledTask is the per-task engine output (spec.md §3).
type ScheduledTask struct {
	FQID string

	EarlyStart time.Time
	EarlyFinish time.Time
	LateStart  time.Time
	LateFinish time.Time

	TotalFloat int
	FreeFloat  int
	IsCritical bool

	// ForecastStart/ForecastFinish track EarlyStart/EarlyFinish at the moment
	// the forward pass (and any leveling delay) last touched this task — the
	// progress-aware forward pass already folds actuals and the remaining-
	// duration override into EarlyStart/EarlyFinish, so the forecast is that
	// same window (spec.md §3, S1).
	ForecastStart  time.Time
	ForecastFinish time.Time

	PercentComplete float64
	ActualStart     *time.Time
	ActualFinish    *time.Time

	Dependencies []SatisfiedDependency
	Leveling     *LevelingReason
}

// Result is the full output of a Schedule call: every task (leaves and
// derived containers), the critical path, and project-level dates.
type Result struct {
	Tasks         map[string]*ScheduledTask
	CriticalPath  []string
	ProjectStart  time.Time
	ProjectFinish time.Time
}
