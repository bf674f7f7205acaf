package engine

import (
	"time"

	"github.com/alanbld/utf8proj/internal/baseline"
	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/google/uuid"
)

// ScheduleBundle is the output of Schedule/Level (spec.md §6 "schedule
// bundle"). RunID correlates this run's log lines; it is never an input to
// scheduling, so it has no bearing on determinism (spec.md §8 property 8).
type ScheduleBundle struct {
	RunID         uuid.UUID
	Tasks         map[string]*cpm.ScheduledTask
	CriticalPath  []string
	ProjectStart  time.Time
	ProjectFinish time.Time
	Diagnostics   []diagnostic.Diagnostic
}

// ComparisonBundle is the output of Compare (spec.md §6 "comparison
// bundle"), re-exported here so callers only need to import internal/engine.
type ComparisonBundle = baseline.ComparisonBundle
