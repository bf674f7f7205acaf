package classify

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

func durP(n int) *int { return &n }

func TestStatusClassifier_BucketsByPercentComplete(t *testing.T) {
	cases := []struct {
		pc    float64
		label Label
	}{
		{0, Backlog}, {10, Ready}, {25, Ready}, {50, Doing}, {75, Doing},
		{90, Review}, {100, Done}, {-5, Invalid}, {150, Invalid},
	}
	for _, c := range cases {
		got := StatusClassifier(&domain.Task{PercentComplete: c.pc}, &cpm.ScheduledTask{})
		assert.Equal(t, c.label, got.Label, "percent_complete=%v", c.pc)
	}
}

func TestGroupBy_OrdersBucketsAndMembers(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	z := &domain.Task{ID: "z", Duration: durP(5), PercentComplete: 100}
	a := &domain.Task{ID: "a", Duration: durP(5), PercentComplete: 0}
	b := &domain.Task{ID: "b", Duration: durP(5), PercentComplete: 0}
	project := &domain.Project{
		StartDate: start,
		Tasks:     []*domain.Task{z, a, b},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph, bag := depgraph.Build(project)
	require.False(t, bag.HasErrors())
	calendars := calendar.NewRegistry(project.Calendars)
	result, bag := cpm.Run(project, graph, calendars, cpm.Options{})
	require.False(t, bag.HasErrors())

	buckets := GroupBy(graph, result.Tasks, StatusClassifier)

	require.Len(t, buckets, 2)
	assert.Equal(t, Backlog, buckets[0].Label)
	assert.Equal(t, []string{"a", "b"}, buckets[0].FQIDs)
	assert.Equal(t, Done, buckets[1].Label)
	assert.Equal(t, []string{"z"}, buckets[1].FQIDs)
}
