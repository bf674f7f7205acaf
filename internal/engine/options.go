package engine

import (
	"time"

	"github.com/alanbld/utf8proj/internal/domain"
)

// ScheduleOptions carries the scheduling-run options spec.md §6 defines.
// ShowNowLine and ShowToday are rendering-only passthrough fields the
// engine never reads; they exist so a caller can round-trip them into a
// bundle for a downstream renderer (out of scope here).
type ScheduleOptions struct {
	AsOf           *time.Time
	Leveling       domain.LevelingMode
	MaxDelayFactor float64
	ShowNowLine    bool
	ShowToday      bool
}
