// Package baseline implements the immutable snapshot store of spec.md §4.6:
// save/list/show/remove against a side-file colocated with the project, and
// variance computation between a baseline and a current schedule.
package baseline

import "time"

// Snapshot is the frozen early-start/early-finish pair for one leaf task,
// recorded at save time.
type Snapshot struct {
	EarlyStart  time.Time
	EarlyFinish time.Time
}

// Metadata is the lineage information carried alongside a baseline's
// snapshots. It is never used as scheduling input, only for display and
// lineage tracking.
type Metadata struct {
	Name        string
	Saved       time.Time
	Description *string
	Parent      *string
}

// Baseline is one immutable named snapshot: metadata plus a sorted-by-id map
// of leaf snapshots and the project finish date at save time.
type Baseline struct {
	Metadata
	Snapshots     map[string]Snapshot
	ProjectFinish time.Time
}

// Summary is the metadata-only view List returns.
type Summary = Metadata

// VarianceStatus classifies one leaf's relationship to a baseline.
type VarianceStatus string

const (
	OnSchedule VarianceStatus = "OnSchedule"
	Ahead      VarianceStatus = "Ahead"
	Delayed    VarianceStatus = "Delayed"
	Added      VarianceStatus = "Added"
	Removed    VarianceStatus = "Removed"
)

// TaskVariance is one leaf's comparison record. StartVarianceDays and
// FinishVarianceDays are nil for Added/Removed, which have no baseline-
// relative variance defined (spec.md §4.6).
type TaskVariance struct {
	FQID               string
	Status             VarianceStatus
	StartVarianceDays  *int
	FinishVarianceDays *int
}

// ComparisonSummary aggregates counts per status plus the project-level
// finish variance.
type ComparisonSummary struct {
	Counts              map[VarianceStatus]int
	ProjectVarianceDays int
}

// ComparisonBundle is the full output of Compare.
type ComparisonBundle struct {
	BaselineName  string
	BaselineSaved time.Time
	Variances     []TaskVariance
	Summary       ComparisonSummary
}
