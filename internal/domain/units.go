package domain

import "math"

// unitsEpsilon absorbs floating-point accumulation error when comparing
// assigned resource units against capacity. No rational/decimal library
// appears anywhere in the retrieved example pack, so capacities are plain
// float64 with an epsilon-tolerant comparison (see DESIGN.md).
const unitsEpsilon = 1e-9

// UnitsLessOrEqual reports whether a <= b, within unitsEpsilon.
func UnitsLessOrEqual(a, b float64) bool {
	return a <= b+unitsEpsilon
}

// UnitsGreater reports whether a > b, within unitsEpsilon (the negation of
// UnitsLessOrEqual, spelled out for readability at call sites).
func UnitsGreater(a, b float64) bool {
	return a > b+unitsEpsilon
}

// RoundUp rounds a positive float up to the nearest integer, used for the
// effective-duration linear model (spec.md §4.4).
func RoundUp(v float64) int {
	return int(math.Ceil(v - 1e-9))
}
