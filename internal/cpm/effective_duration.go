package cpm

import "github.com/alanbld/utf8proj/internal/domain"

// OriginalDuration resolves a leaf's undiminished work span: its declared
// duration, or its effort converted via the sum of assigned resource units
// (spec.md §4.4, Open Question (a) decided in favor of sum-of-units).
func OriginalDuration(t *domain.Task) int {
	if t.Duration != nil {
		return *t.Duration
	}
	if t.Effort == nil {
		return 0
	}
	sumUnits := 0.0
	for _, a := range t.Assignments {
		sumUnits += a.Units
	}
	if sumUnits <= 0 {
		sumUnits = 1
	}
	return domain.RoundUp(float64(*t.Effort) / sumUnits)
}

// EffectiveDuration is the work remaining to schedule for t (spec.md §4.4):
// zero once actual_finish is recorded, the explicit remaining override if
// present, else the linear progress model applied to OriginalDuration.
func EffectiveDuration(t *domain.Task) int {
	if t.ActualFinish != nil {
		return 0
	}
	if t.Remaining != nil {
		return *t.Remaining
	}
	original := OriginalDuration(t)
	if t.PercentComplete <= 0 {
		return original
	}
	return domain.RoundUp(float64(original) * (1 - t.PercentComplete/100))
}
