// Package engineconfig resolves environment-variable-driven defaults for
// the engine's scheduling options, the same way cmd/kairos/main.go reads
// its KAIROS_* environment variables before wiring its services.
package engineconfig

import (
	"os"
	"strconv"
	"strings"

	"github.com/alanbld/utf8proj/internal/domain"
)

const (
	envLeveling       = "UTF8PROJ_LEVELING"
	envMaxDelayFactor = "UTF8PROJ_MAX_DELAY_FACTOR"
)

// LevelingDefault reads UTF8PROJ_LEVELING, falling back to "warn" (the
// spec.md §6 default) for an unset or unrecognized value.
func LevelingDefault() domain.LevelingMode {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envLeveling))) {
	case "auto":
		return domain.LevelingAuto
	case "error":
		return domain.LevelingError
	default:
		return domain.LevelingWarn
	}
}

// MaxDelayFactorDefault reads UTF8PROJ_MAX_DELAY_FACTOR. ok is false if the
// variable is unset or not a positive number.
func MaxDelayFactorDefault() (f float64, ok bool) {
	raw := strings.TrimSpace(os.Getenv(envMaxDelayFactor))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
