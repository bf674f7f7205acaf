package leveling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
)

func durP(n int) *int { return &n }

func mondayStart() time.Time {
	return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
}

func buildAndSchedule(t *testing.T, project *domain.Project) (*depgraph.Graph, *calendar.Registry, map[string]*cpm.ScheduledTask) {
	t.Helper()
	graph, bag := depgraph.Build(project)
	require.False(t, bag.HasErrors(), "unexpected diagnostics: %+v", bag.All())
	calendars := calendar.NewRegistry(project.Calendars)
	result, bag := cpm.Run(project, graph, calendars, cpm.Options{})
	require.False(t, bag.HasErrors(), "unexpected diagnostics: %+v", bag.All())
	return graph, calendars, result.Tasks
}

// TestLevel_SingleResourceConflictDelaysLowerPriorityTask reproduces the
// classic single-resource overlap: two same-duration, same-start tasks both
// need the one unit of "dev", so the lower-priority task is pushed out by
// one working day per day of overlap until the conflict clears.
func TestLevel_SingleResourceConflictDelaysLowerPriorityTask(t *testing.T) {
	a := &domain.Task{ID: "a", Duration: durP(5), Priority: 900,
		Assignments: []domain.ResourceAssignment{{ResourceID: "dev", Units: 1}}}
	b := &domain.Task{ID: "b", Duration: durP(5), Priority: 100,
		Assignments: []domain.ResourceAssignment{{ResourceID: "dev", Units: 1}}}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a, b},
		Resources: []*domain.Resource{{ID: "dev", Capacity: 1}},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph, calendars, tasks := buildAndSchedule(t, project)

	before := DetectConflicts(project, graph, calendars, tasks)
	require.NotEmpty(t, before, "fixture should start with an overlap")

	bag := Level(project, graph, calendars, tasks, Options{})

	after := DetectConflicts(project, graph, calendars, tasks)
	assert.Empty(t, after, "leveling should clear every resource conflict")
	assert.True(t, tasks["b"].EarlyStart.After(tasks["a"].EarlyStart),
		"the lower-priority task should be the one delayed")

	foundDelay := false
	for _, d := range bag.All() {
		if d.Code == diagnostic.CodeLevelingDelayApplied && d.TaskID == "b" {
			foundDelay = true
		}
	}
	assert.True(t, foundDelay, "expected an L001 delay diagnostic for task b")
}

// TestLevel_InviolableConstraintCannotResolve covers the case where every
// candidate in a conflict is pinned (by a must_start_on constraint or
// anchoring) so none may be delayed: leveling must report CannotResolve
// rather than silently leaving the over-allocation in place.
func TestLevel_InviolableConstraintCannotResolve(t *testing.T) {
	pinned := mondayStart()
	a := &domain.Task{ID: "a", Duration: durP(5), Priority: 900,
		Constraint:  &domain.Constraint{Kind: domain.MustStartOn, Date: pinned},
		Assignments: []domain.ResourceAssignment{{ResourceID: "dev", Units: 1}}}
	b := &domain.Task{ID: "b", Duration: durP(5), Priority: 100,
		Constraint:  &domain.Constraint{Kind: domain.MustStartOn, Date: pinned},
		Assignments: []domain.ResourceAssignment{{ResourceID: "dev", Units: 1}}}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a, b},
		Resources: []*domain.Resource{{ID: "dev", Capacity: 1}},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph, calendars, tasks := buildAndSchedule(t, project)

	bag := Level(project, graph, calendars, tasks, Options{})

	foundCannotResolve := false
	for _, d := range bag.All() {
		if d.Code == diagnostic.CodeLevelingCannotResolve {
			foundCannotResolve = true
		}
	}
	assert.True(t, foundCannotResolve, "expected an L005 CannotResolve diagnostic")
	assert.True(t, tasks["a"].EarlyStart.Equal(pinned))
	assert.True(t, tasks["b"].EarlyStart.Equal(pinned), "a must_start_on task is never moved by leveling")
}

func TestLevel_NoConflictsIsANoOp(t *testing.T) {
	a := &domain.Task{ID: "a", Duration: durP(5)}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph, calendars, tasks := buildAndSchedule(t, project)

	bag := Level(project, graph, calendars, tasks, Options{})
	assert.Empty(t, bag.All())
}
