// Package leveling implements the Critical-Path-Priority resource-leveling
// heuristic (spec.md §4.5): it detects capacity over-allocation on the CPM
// schedule and produces a deterministic, minimally-invasive delay plan.
package leveling

import (
	"time"

	"github.com/alanbld/utf8proj/internal/domain"
)

// Conflict is one resource over-allocated on one working day.
type Conflict struct {
	Day        time.Time
	ResourceID string
	TaskFQIDs  []string // active tasks that day, sorted by fully-qualified id
}

// Options carries the leveling-specific knobs from spec.md §6.
type Options struct {
	Mode           domain.LevelingMode
	MaxDelayFactor float64 // 0 means unbounded
}

func (o Options) maxDelayFactor() float64 {
	if o.MaxDelayFactor <= 0 {
		return 1e9
	}
	return o.MaxDelayFactor
}
