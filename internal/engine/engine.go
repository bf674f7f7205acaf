// Package engine is the single external-facing surface over the scheduling
// core (spec.md §6): it sequences validate → depgraph → cpm → leveling →
// baseline, emits one UseCaseEvent per operation, and converts the core's
// diagnostic-driven failures into the Go errors spec.md §7 describes.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/alanbld/utf8proj/internal/baseline"
	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/classify"
	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
	"github.com/alanbld/utf8proj/internal/engineconfig"
	"github.com/alanbld/utf8proj/internal/leveling"
	"github.com/alanbld/utf8proj/internal/validate"
)

// Engine is the stateless (per-call) scheduling facade. Its only
// process-wide state is the baseline store directory (spec.md §5).
type Engine struct {
	observer    Observer
	baselineDir string
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithObserver installs obs as the Engine's use-case observer.
func WithObserver(obs Observer) Option {
	return func(e *Engine) { e.observer = obs }
}

// WithBaselineDir sets the directory baseline side-files are written under,
// one file per project id. Defaults to the current working directory.
func WithBaselineDir(dir string) Option {
	return func(e *Engine) { e.baselineDir = dir }
}

// New constructs an Engine. With no options it logs nothing and writes
// baseline side-files next to the process's working directory.
func New(opts ...Option) *Engine {
	e := &Engine{observer: NoopObserver{}, baselineDir: "."}
	for _, opt := range opts {
		opt(e)
	}
	e.observer = observerOrNoop(e.observer)
	return e
}

func (e *Engine) baselineStore(project *domain.Project) *baseline.Store {
	return baseline.NewStore(filepath.Join(e.baselineDir, project.ID+".baselines"))
}

// resolveOptions fills zero-valued fields of opts from the environment
// (internal/engineconfig), the same KAIROS_*-style env-var-as-default
// convention the teacher's cmd/kairos/main.go uses.
func resolveOptions(opts ScheduleOptions) ScheduleOptions {
	if opts.Leveling == "" {
		opts.Leveling = engineconfig.LevelingDefault()
	}
	if opts.MaxDelayFactor == 0 {
		if f, ok := engineconfig.MaxDelayFactorDefault(); ok {
			opts.MaxDelayFactor = f
		}
	}
	return opts
}

func (e *Engine) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	e.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name: name, Duration: time.Since(started), Success: err == nil,
		Err: err, Fields: fields, StartedAt: started,
	})
}

// Schedule runs the full pipeline (validate → depgraph → cpm forward →
// optional leveling → cpm backward/float/critical-path/containers) and
// returns the resulting bundle. A *diagnostic.StructuralError is returned
// if validation or graph-building produces any Error-severity diagnostic.
func (e *Engine) Schedule(ctx context.Context, project *domain.Project, opts ScheduleOptions) (bundle *ScheduleBundle, err error) {
	started := time.Now()
	opts = resolveOptions(opts)
	fields := map[string]any{}

	defer func() {
		if p := recover(); p != nil {
			err = &diagnostic.PolicyError{Code: diagnostic.CodeInternalError, Message: fmt.Sprintf("internal error: %v", p)}
		}
		e.observe(ctx, "Schedule", started, err, fields)
	}()

	bag := validate.Validate(project)
	if bag.HasErrors() {
		return nil, &diagnostic.StructuralError{Bag: bag}
	}

	graph, graphBag := depgraph.Build(project)
	bag.Merge(graphBag)
	if bag.HasErrors() {
		return nil, &diagnostic.StructuralError{Bag: bag}
	}

	calendars := calendar.NewRegistry(project.Calendars)
	var asOf *time.Time
	if opts.AsOf != nil {
		asOf = opts.AsOf
	}

	result, runBag := cpm.Run(project, graph, calendars, cpm.Options{AsOf: asOf})
	bag.Merge(runBag)
	if bag.HasErrors() {
		return nil, &diagnostic.StructuralError{Bag: bag}
	}

	if opts.Leveling != domain.LevelingWarn {
		conflicts := leveling.DetectConflicts(project, graph, calendars, result.Tasks)
		switch opts.Leveling {
		case domain.LevelingAuto:
			levelBag := leveling.Level(project, graph, calendars, result.Tasks, leveling.Options{
				Mode: opts.Leveling, MaxDelayFactor: opts.MaxDelayFactor,
			})
			bag.Merge(levelBag)
			// Recompute (not Run): Level already shifted victims' early dates
			// and re-propagated them forward in place. Re-running the forward
			// pass here would recompute early dates from scratch and discard
			// those delays.
			result, runBag = cpm.Recompute(project, graph, calendars, result.Tasks)
			bag.Merge(runBag)
		case domain.LevelingError:
			if len(conflicts) > 0 {
				return nil, diagnostic.NewPolicyError(diagnostic.CodeResourceOverAllocated, fmt.Sprintf("%d resource conflict(s) detected under leveling=error", len(conflicts)))
			}
		}
	} else {
		conflicts := leveling.DetectConflicts(project, graph, calendars, result.Tasks)
		for _, c := range conflicts {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeResourceOverAllocated, Severity: diagnostic.Warning,
				Phase: diagnostic.PhaseLeveling,
				Message: fmt.Sprintf("resource %q is over-allocated", c.ResourceID),
				Details: map[string]any{"day": c.Day, "resource": c.ResourceID, "tasks": c.TaskFQIDs},
			})
		}
	}

	fields["diagnostic_counts"] = bag.CountBySeverity()
	fields["critical_path_length"] = len(result.CriticalPath)

	return &ScheduleBundle{
		RunID:         uuid.New(),
		Tasks:         result.Tasks,
		CriticalPath:  result.CriticalPath,
		ProjectStart:  result.ProjectStart,
		ProjectFinish: result.ProjectFinish,
		Diagnostics:   bag.Sorted(),
	}, nil
}

// Level re-invokes Schedule with leveling=auto regardless of opts.Leveling,
// returning the post-leveling bundle. base is accepted for interface
// symmetry with spec.md §6's level(project, base_schedule, options)
// signature; the solver recomputes from project rather than diffing base,
// since the schedule is a pure function of project + options.
func (e *Engine) Level(ctx context.Context, project *domain.Project, base *ScheduleBundle, opts ScheduleOptions) (*ScheduleBundle, error) {
	opts.Leveling = domain.LevelingAuto
	return e.Schedule(ctx, project, opts)
}

// Compare loads baselineName from the project's baseline store and computes
// variance against current.
func (e *Engine) Compare(ctx context.Context, project *domain.Project, current *ScheduleBundle, baselineName string) (bundle *ComparisonBundle, err error) {
	started := time.Now()
	defer func() { e.observe(ctx, "Compare", started, err, nil) }()

	store := e.baselineStore(project)
	result := &cpm.Result{Tasks: current.Tasks, CriticalPath: current.CriticalPath, ProjectStart: current.ProjectStart, ProjectFinish: current.ProjectFinish}
	cmp, bag, err := store.Compare(baselineName, result)
	if err != nil {
		return nil, fmt.Errorf("comparing baseline %q: %w", baselineName, err)
	}
	if bag.HasErrors() {
		return nil, diagnostic.NewPolicyError(bag.All()[0].Code, bag.All()[0].Message)
	}
	return cmp, nil
}

// SaveBaseline snapshots current's leaf early-dates under name.
func (e *Engine) SaveBaseline(ctx context.Context, project *domain.Project, current *ScheduleBundle, name string, description, parent *string) (err error) {
	started := time.Now()
	defer func() { e.observe(ctx, "SaveBaseline", started, err, map[string]any{"baseline": name}) }()

	graph, bag := depgraph.Build(project)
	if bag.HasErrors() {
		return &diagnostic.StructuralError{Bag: bag}
	}
	store := e.baselineStore(project)
	result := &cpm.Result{Tasks: current.Tasks, CriticalPath: current.CriticalPath, ProjectStart: current.ProjectStart, ProjectFinish: current.ProjectFinish}
	saveBag, err := store.Save(graph, result, name, description, parent, time.Now())
	if err != nil {
		return fmt.Errorf("saving baseline %q: %w", name, err)
	}
	if saveBag.HasErrors() {
		return diagnostic.NewPolicyError(saveBag.All()[0].Code, saveBag.All()[0].Message)
	}
	return nil
}

// ListBaselines returns every baseline's metadata for project, sorted by name.
func (e *Engine) ListBaselines(ctx context.Context, project *domain.Project) (summaries []baseline.Summary, err error) {
	started := time.Now()
	defer func() { e.observe(ctx, "ListBaselines", started, err, nil) }()

	summaries, err = e.baselineStore(project).List()
	return summaries, err
}

// RemoveBaseline deletes a baseline by name.
func (e *Engine) RemoveBaseline(ctx context.Context, project *domain.Project, name string) (err error) {
	started := time.Now()
	defer func() { e.observe(ctx, "RemoveBaseline", started, err, map[string]any{"baseline": name}) }()

	removeBag, err := e.baselineStore(project).Remove(name)
	if err != nil {
		return fmt.Errorf("removing baseline %q: %w", name, err)
	}
	if removeBag.HasErrors() {
		return diagnostic.NewPolicyError(removeBag.All()[0].Code, removeBag.All()[0].Message)
	}
	return nil
}

// Classify groups bundle's leaf tasks using classifier (nil selects the
// built-in StatusClassifier), so callers don't need to rebuild the
// dependency graph themselves just to bucket a schedule they already have.
func (e *Engine) Classify(project *domain.Project, bundle *ScheduleBundle, classifier classify.Classifier) ([]classify.Bucket, error) {
	graph, bag := depgraph.Build(project)
	if bag.HasErrors() {
		return nil, &diagnostic.StructuralError{Bag: bag}
	}
	return classify.GroupBy(graph, bundle.Tasks, classifierOrDefault(classifier)), nil
}

func classifierOrDefault(c classify.Classifier) classify.Classifier {
	if c == nil {
		return classify.StatusClassifier
	}
	return c
}
