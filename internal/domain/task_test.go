package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_Role(t *testing.T) {
	leaf := &Task{ID: "a"}
	container := &Task{ID: "b", Children: []*Task{leaf}}

	assert.Equal(t, RoleLeaf, leaf.Role())
	assert.Equal(t, RoleContainer, container.Role())
}

func TestTask_EffectivePriorityDefault(t *testing.T) {
	task := &Task{ID: "a"}
	assert.Equal(t, 500, task.EffectivePriority())

	task.Priority = 900
	assert.Equal(t, 900, task.EffectivePriority())
}

func TestTask_IsAnchored(t *testing.T) {
	assert.False(t, (&Task{ID: "a"}).IsAnchored())
	assert.True(t, (&Task{ID: "a", PercentComplete: 10}).IsAnchored())
}

func TestWalk_FullyQualifiedIDs(t *testing.T) {
	leaf1 := &Task{ID: "fe"}
	leaf2 := &Task{ID: "be"}
	container := &Task{ID: "dev", Children: []*Task{leaf1, leaf2}}

	var fqids []string
	Walk([]*Task{container}, func(fqid string, tsk *Task, ancestors []*Task) {
		fqids = append(fqids, fqid)
	})

	assert.Equal(t, []string{"dev", "dev.fe", "dev.be"}, fqids)
}

func TestLeaves_ExcludesContainers(t *testing.T) {
	leaf := &Task{ID: "fe"}
	container := &Task{ID: "dev", Children: []*Task{leaf}}

	refs := Leaves([]*Task{container})

	assert.Len(t, refs, 1)
	assert.Equal(t, "dev.fe", refs[0].FQID)
	assert.Same(t, leaf, refs[0].Task)
}
