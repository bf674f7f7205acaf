package diagnostic

// Stable diagnostic codes (spec.md §4.8). The prefix identifies the domain:
// E errors, W warnings, H hints, I info, L leveling, C calendar, P progress,
// R regimes, B baseline.
const (
	// Structural errors (validator, depgraph) — abort scheduling.
	CodeDuplicateSiblingID  = "E001"
	CodeMissingWorkSpec     = "E002" // neither duration nor effort on a leaf
	CodeAmbiguousWorkSpec   = "E003" // both duration and effort on a leaf
	CodeUnresolvedReference = "E004"
	CodeCyclicDependency    = "E005"
	CodeConflictingConstraints = "E006" // more than one constraint, or constraint contradicts dependencies
	CodeUnknownResource     = "E007"
	CodeUnknownCalendar     = "E008"
	CodeMalformedCalendar   = "E009"
	CodeInvalidLag          = "E010"
	CodeActualOrderInverted = "E011" // actual_start > actual_finish (T3)
	CodeRemainingExceedsDuration = "E012" // remaining > original_duration (T6)
	CodeInvalidResourceCapacity  = "E013" // resource capacity <= 0
	CodeInternalError       = "E999"

	// Warnings.
	CodeContainerHasWorkSpec  = "W001" // T1
	CodeMissingActualFinish   = "W002" // not emitted; T2 is reported as P006
	CodeContainerProgressDeviationHigh = "W003" // T4, >20%
	CodeResourceOverAllocated = "W004"
	CodeApproximateLeveling  = "W005"

	// Hints.
	CodeContainerProgressDeviationLow = "H001" // T4, >10%
	CodeBaselineSemanticDrift         = "H002"

	// Info.
	CodeVerboseNote = "I001"

	// Leveling (L-series).
	CodeLevelingDelayApplied = "L001"
	CodeLevelingOriginalDuration = "L002"
	CodeLevelingNewDuration      = "L003"
	CodeLevelingResourcePeak     = "L004"
	CodeLevelingCannotResolve    = "L005"

	// Calendar oddities.
	CodeConstraintOnNonWorkingDay = "C012"

	// Progress.
	CodeDependencyHistoricallyViolated = "P005"
	CodeActualFinishMissingDespiteDone = "P006"

	// Regime collisions.
	CodeCrossRegimeDependency = "R001" // T8

	// Baseline.
	CodeBaselineSaved            = "B001"
	CodeBaselineContainerExcluded = "B002"
	CodeBaselineNameExists       = "B003"
	CodeBaselineNotFound         = "B004"
	CodeBaselineSemanticsChanged = "B009"
)
