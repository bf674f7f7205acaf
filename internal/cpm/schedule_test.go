package cpm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/domain"
)

func durP(n int) *int { return &n }

func mondayStart() time.Time {
	return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
}

func buildGraph(t *testing.T, project *domain.Project) *depgraph.Graph {
	t.Helper()
	g, bag := depgraph.Build(project)
	require.False(t, bag.HasErrors(), "unexpected diagnostics: %+v", bag.All())
	return g
}

func TestRun_SimpleFSChain(t *testing.T) {
	a := &domain.Task{ID: "a", Duration: durP(10)}
	c := &domain.Task{ID: "c", Duration: durP(3), Dependencies: []domain.Dependency{{PredecessorRef: "a", Kind: domain.FinishToStart}}}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a, c},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph := buildGraph(t, project)
	calendars := calendar.NewRegistry(project.Calendars)

	result, bag := Run(project, graph, calendars, Options{})
	require.False(t, bag.HasErrors())

	ta, tc := result.Tasks["a"], result.Tasks["c"]
	require.NotNil(t, ta)
	require.NotNil(t, tc)
	assert.True(t, ta.EarlyStart.Before(ta.EarlyFinish) || ta.EarlyStart.Equal(ta.EarlyFinish))
	assert.True(t, tc.EarlyStart.After(ta.EarlyFinish))
	assert.True(t, ta.IsCritical)
	assert.True(t, tc.IsCritical)
	assert.Equal(t, 0, ta.TotalFloat)
	assert.Equal(t, 0, tc.TotalFloat)
	assert.Contains(t, result.CriticalPath, "a")
	assert.Contains(t, result.CriticalPath, "c")
}

func TestRun_ParallelPathsLowerDurationHasPositiveFloat(t *testing.T) {
	a := &domain.Task{ID: "a", Duration: durP(10)}
	b := &domain.Task{ID: "b", Duration: durP(5)}
	c := &domain.Task{ID: "c", Duration: durP(3), Dependencies: []domain.Dependency{
		{PredecessorRef: "a", Kind: domain.FinishToStart},
		{PredecessorRef: "b", Kind: domain.FinishToStart},
	}}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a, b, c},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph := buildGraph(t, project)
	calendars := calendar.NewRegistry(project.Calendars)

	result, bag := Run(project, graph, calendars, Options{})
	require.False(t, bag.HasErrors())

	ta, tb := result.Tasks["a"], result.Tasks["b"]
	assert.True(t, ta.IsCritical)
	assert.False(t, tb.IsCritical)
	assert.Greater(t, tb.TotalFloat, 0)
	assert.Equal(t, []string{"a", "c"}, result.CriticalPath)
}

func TestRun_ActualFinishPinsZeroEffectiveDuration(t *testing.T) {
	finish := mondayStart().AddDate(0, 0, 3)
	a := &domain.Task{ID: "a", Duration: durP(10), PercentComplete: 100, ActualStart: ptrTime(mondayStart()), ActualFinish: &finish}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph := buildGraph(t, project)
	calendars := calendar.NewRegistry(project.Calendars)

	result, bag := Run(project, graph, calendars, Options{})
	assert.False(t, bag.HasErrors())
	assert.Equal(t, finish, result.Tasks["a"].EarlyFinish)
}

func TestRun_Percent100WithoutActualFinishWarns(t *testing.T) {
	a := &domain.Task{ID: "a", Duration: durP(5), PercentComplete: 100}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph := buildGraph(t, project)
	calendars := calendar.NewRegistry(project.Calendars)

	_, bag := Run(project, graph, calendars, Options{})
	found := false
	for _, d := range bag.All() {
		if d.Code == "P006" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeriveContainers_WeightedPercentComplete(t *testing.T) {
	fe := &domain.Task{ID: "fe", Duration: durP(10), PercentComplete: 100}
	be := &domain.Task{ID: "be", Duration: durP(20), PercentComplete: 50}
	qa := &domain.Task{ID: "qa", Duration: durP(5), PercentComplete: 0}
	dev := &domain.Task{ID: "dev", Children: []*domain.Task{fe, be, qa}}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{dev},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph := buildGraph(t, project)
	calendars := calendar.NewRegistry(project.Calendars)

	result, bag := Run(project, graph, calendars, Options{})
	require.False(t, bag.HasErrors())

	assert.Equal(t, float64(57), result.Tasks["dev"].PercentComplete)
}

func ptrTime(t time.Time) *time.Time { return &t }
