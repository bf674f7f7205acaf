package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbld/utf8proj/internal/domain"
)

func durP(n int) *int { return &n }

func TestValidate_CleanProjectHasNoErrors(t *testing.T) {
	project := &domain.Project{
		Tasks: []*domain.Task{
			{ID: "a", Duration: durP(5)},
		},
	}
	bag := Validate(project)
	assert.False(t, bag.HasErrors())
}

func TestValidate_DuplicateSiblingID(t *testing.T) {
	project := &domain.Project{
		Tasks: []*domain.Task{
			{ID: "a", Duration: durP(1)},
			{ID: "a", Duration: durP(1)},
		},
	}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E001", bag.All()[0].Code)
}

func TestValidate_LeafMissingWorkSpec(t *testing.T) {
	project := &domain.Project{Tasks: []*domain.Task{{ID: "a"}}}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E002", bag.All()[0].Code)
}

func TestValidate_LeafAmbiguousWorkSpec(t *testing.T) {
	e := 5
	project := &domain.Project{Tasks: []*domain.Task{{ID: "a", Duration: durP(1), Effort: &e}}}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E003", bag.All()[0].Code)
}

func TestValidate_ContainerWithWorkSpecWarns(t *testing.T) {
	project := &domain.Project{
		Tasks: []*domain.Task{
			{ID: "parent", Duration: durP(3), Children: []*domain.Task{
				{ID: "child", Duration: durP(1)},
			}},
		},
	}
	bag := Validate(project)
	assert.False(t, bag.HasErrors())
	require.Len(t, bag.All(), 1)
	assert.Equal(t, "W001", bag.All()[0].Code)
}

func TestValidate_ActualOrderInverted(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	finish := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	project := &domain.Project{Tasks: []*domain.Task{
		{ID: "a", Duration: durP(1), ActualStart: &start, ActualFinish: &finish},
	}}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E011", bag.All()[0].Code)
}

func TestValidate_RemainingExceedsDuration(t *testing.T) {
	r := 10
	project := &domain.Project{Tasks: []*domain.Task{
		{ID: "a", Duration: durP(5), Remaining: &r},
	}}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E012", bag.All()[0].Code)
}

func TestValidate_UnknownResourceReference(t *testing.T) {
	project := &domain.Project{Tasks: []*domain.Task{
		{ID: "a", Duration: durP(1), Assignments: []domain.ResourceAssignment{{ResourceID: "dev", Units: 1}}},
	}}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E007", bag.All()[0].Code)
}

func TestValidate_UnknownCalendarReference(t *testing.T) {
	cal := "nope"
	project := &domain.Project{Tasks: []*domain.Task{
		{ID: "a", Duration: durP(1), CalendarID: &cal},
	}}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E008", bag.All()[0].Code)
}

func TestValidate_NonPositiveResourceCapacity(t *testing.T) {
	project := &domain.Project{
		Resources: []*domain.Resource{{ID: "dev", Capacity: 0}},
	}
	bag := Validate(project)
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E013", bag.All()[0].Code)
}
