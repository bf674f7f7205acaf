package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/domain"
)

func TestFixtures_BuildASchedulableProject(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	dev := NewTestResource("dev", 1)
	a := NewTestTask("a", 5, WithAssignments(domain.ResourceAssignment{ResourceID: "dev", Units: 1}))
	b := NewTestTask("b", 3, WithDependencies(domain.Dependency{PredecessorRef: "a", Kind: domain.FinishToStart}))
	project := NewTestProject(start, []*domain.Task{a, b}, WithResources(dev))

	graph, bag := depgraph.Build(project)
	require.False(t, bag.HasErrors(), "unexpected diagnostics: %+v", bag.All())

	calendars := calendar.NewRegistry(project.Calendars)
	result, bag := cpm.Run(project, graph, calendars, cpm.Options{})
	require.False(t, bag.HasErrors(), "unexpected diagnostics: %+v", bag.All())

	assert.True(t, result.Tasks["b"].EarlyStart.After(result.Tasks["a"].EarlyFinish))
	assert.True(t, result.Tasks["a"].IsCritical)
}

func TestFixtures_ContainerOptionBuildsNestedWBS(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	fe := NewTestTask("fe", 10, WithPercentComplete(100))
	be := NewTestTask("be", 20, WithPercentComplete(50))
	dev := NewTestContainer("dev", []*domain.Task{fe, be})
	project := NewTestProject(start, []*domain.Task{dev})

	graph, bag := depgraph.Build(project)
	require.False(t, bag.HasErrors())
	calendars := calendar.NewRegistry(project.Calendars)
	result, bag := cpm.Run(project, graph, calendars, cpm.Options{})
	require.False(t, bag.HasErrors())

	assert.NotNil(t, result.Tasks["dev"])
	assert.Equal(t, float64(67), result.Tasks["dev"].PercentComplete)
}
