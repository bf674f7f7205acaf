package baseline

import (
	"path/filepath"
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
	return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
}

func scheduleSimpleProject(t *testing.T, durationA int) (*depgraph.Graph, *cpm.Result) {
	t.Helper()
	a := &domain.Task{ID: "a", Duration: durP(durationA)}
	b := &domain.Task{ID: "b", Duration: durP(3), Dependencies: []domain.Dependency{
		{PredecessorRef: "a", Kind: domain.FinishToStart},
	}}
	project := &domain.Project{
		StartDate: mondayStart(),
		Tasks:     []*domain.Task{a, b},
		Calendars: []*domain.Calendar{domain.DefaultWorkWeek("default")},
	}
	graph, bag := depgraph.Build(project)
	require.False(t, bag.HasErrors())
	calendars := calendar.NewRegistry(project.Calendars)
	result, bag := cpm.Run(project, graph, calendars, cpm.Options{})
	require.False(t, bag.HasErrors())
	return graph, result
}

func TestStore_SaveListShowRemoveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.baselines")
	store := NewStore(path)
	graph, result := scheduleSimpleProject(t, 10)
	saved := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	desc := "pre-replan snapshot"

	bag, err := store.Save(graph, result, "v1", &desc, nil, saved)
	require.NoError(t, err)
	require.False(t, bag.HasErrors())

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "v1", list[0].Name)

	shown, err := store.Show("v1")
	require.NoError(t, err)
	require.NotNil(t, shown)
	assert.Equal(t, "v1", shown.Name)
	assert.Equal(t, desc, *shown.Description)
	assert.Len(t, shown.Snapshots, 2)
	assert.Equal(t, result.Tasks["a"].EarlyStart.Format(dateLayout), shown.Snapshots["a"].EarlyStart.Format(dateLayout))

	removeBag, err := store.Remove("v1")
	require.NoError(t, err)
	require.False(t, removeBag.HasErrors())

	afterRemove, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, afterRemove)
}

func TestStore_SaveDuplicateNameFailsWithB003(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.baselines")
	store := NewStore(path)
	graph, result := scheduleSimpleProject(t, 10)
	saved := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	bag, err := store.Save(graph, result, "v1", nil, nil, saved)
	require.NoError(t, err)
	require.False(t, bag.HasErrors())

	bag2, err := store.Save(graph, result, "v1", nil, nil, saved)
	require.NoError(t, err)
	require.True(t, bag2.HasErrors())
	assert.Equal(t, diagnostic.CodeBaselineNameExists, bag2.All()[0].Code)
}

func TestStore_RemoveMissingYieldsB004WithoutMutatingStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.baselines")
	store := NewStore(path)
	graph, result := scheduleSimpleProject(t, 10)
	saved := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err := store.Save(graph, result, "v1", nil, nil, saved)
	require.NoError(t, err)

	bag, err := store.Remove("ghost")
	require.NoError(t, err)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostic.CodeBaselineNotFound, bag.All()[0].Code)

	list, err := store.List()
	require.NoError(t, err)
	assert.Len(t, list, 1, "the existing baseline must survive a failed remove")
}

// TestStore_CompareAfterDurationChange is in the spirit of scenario S5:
// baseline v1 is saved while task a has a 10-day duration, then a is
// extended to 15 days and the project rescheduled. b, which depends on a,
// should come back Delayed with a positive finish variance, and the
// project-level finish variance should move in step with it. The exact day
// count is not asserted here since it depends on how many weekends the
// extension crosses, which this fixture's fixed start date pins to one
// specific value that isn't worth hard-coding.
func TestStore_CompareAfterDurationChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.baselines")
	store := NewStore(path)
	graph, result := scheduleSimpleProject(t, 10)
	saved := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err := store.Save(graph, result, "v1", nil, nil, saved)
	require.NoError(t, err)

	_, extended := scheduleSimpleProject(t, 15)

	bundle, bag, err := store.Compare("v1", extended)
	require.NoError(t, err)
	require.False(t, bag.HasErrors())
	require.NotNil(t, bundle)

	var bVariance *TaskVariance
	for i := range bundle.Variances {
		if bundle.Variances[i].FQID == "b" {
			bVariance = &bundle.Variances[i]
		}
	}
	require.NotNil(t, bVariance)
	assert.Equal(t, Delayed, bVariance.Status)
	require.NotNil(t, bVariance.FinishVarianceDays)
	assert.Greater(t, *bVariance.FinishVarianceDays, 0)
	assert.Equal(t, *bVariance.FinishVarianceDays, bundle.Summary.ProjectVarianceDays)
}

func TestStore_CompareUnknownBaselineYieldsB004(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.baselines")
	store := NewStore(path)
	_, result := scheduleSimpleProject(t, 10)

	bundle, bag, err := store.Compare("ghost", result)
	require.NoError(t, err)
	assert.Nil(t, bundle)
	require.True(t, bag.HasErrors())
	assert.Equal(t, diagnostic.CodeBaselineNotFound, bag.All()[0].Code)
}
