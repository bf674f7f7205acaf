// Command utf8proj is a one-shot, non-interactive CLI over the scheduling
// engine: it loads a project from a JSON file, runs an engine operation, and
// prints the result. It carries none of the surface-syntax parsing,
// rendering, or interactive-shell concerns spec.md §1 places out of scope.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/engine"
)

func main() {
	os.Exit(run())
}

func run() int {
	eng := buildEngine()
	root := newRootCmd(eng)
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return 0
}

// buildEngine wires an *engine.Engine from the environment, the same
// env-var-as-default convention cmd/kairos/main.go uses for KAIROS_DB and
// KAIROS_LOG_USECASES.
func buildEngine() *engine.Engine {
	baselineDir := os.Getenv("UTF8PROJ_BASELINE_DIR")
	if baselineDir == "" {
		baselineDir = "."
	}

	var observer engine.Observer = engine.NoopObserver{}
	if envEnabled("UTF8PROJ_LOG_USECASES") {
		observer = engine.NewSlogObserver(os.Stderr)
	}

	return engine.New(engine.WithBaselineDir(baselineDir), engine.WithObserver(observer))
}

func envEnabled(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// exitCodeFor maps a command error to spec.md §6's exit-code contract: 1 for
// any diagnostic-driven Error (structural or policy), 2 for everything else
// (bad flags, a missing or unparsable project file).
func exitCodeFor(err error) int {
	var structErr *diagnostic.StructuralError
	if errors.As(err, &structErr) {
		return 1
	}
	var polErr *diagnostic.PolicyError
	if errors.As(err, &polErr) {
		return 1
	}
	return 2
}
