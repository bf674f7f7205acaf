package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBag_HasErrors(t *testing.T) {
	b := NewBag()
	assert.False(t, b.HasErrors())
	b.Addf(CodeCyclicDependency, Error, PhaseDepGraph, "a.b", "cycle detected")
	assert.True(t, b.HasErrors())
}

func TestBag_SortedOrder(t *testing.T) {
	b := NewBag()
	b.Addf(CodeResourceOverAllocated, Warning, PhaseLeveling, "z", "w1")
	b.Addf(CodeCyclicDependency, Error, PhaseDepGraph, "a", "e1")
	b.Addf(CodeVerboseNote, Info, PhaseValidate, "a", "i1")
	b.Addf(CodeMissingActualFinish, Warning, PhaseValidate, "b", "w2")

	sorted := b.Sorted()

	// Phase order: validate(0) before depgraph(1) before leveling(4).
	assert.Equal(t, PhaseValidate, sorted[0].Phase)
	assert.Equal(t, PhaseValidate, sorted[1].Phase)
	assert.Equal(t, PhaseDepGraph, sorted[2].Phase)
	assert.Equal(t, PhaseLeveling, sorted[3].Phase)

	// Within validate phase, severity descending (Warning before Info).
	assert.Equal(t, Warning, sorted[0].Severity)
	assert.Equal(t, Info, sorted[1].Severity)
}

func TestBag_NoDeduplication(t *testing.T) {
	b := NewBag()
	b.Addf(CodeLevelingDelayApplied, Hint, PhaseLeveling, "a", "first")
	b.Addf(CodeLevelingDelayApplied, Hint, PhaseLeveling, "a", "second")
	assert.Len(t, b.All(), 2)
}

func TestStructuralError_CountsOnlyErrors(t *testing.T) {
	b := NewBag()
	b.Addf(CodeCyclicDependency, Error, PhaseDepGraph, "a", "e1")
	b.Addf(CodeVerboseNote, Info, PhaseValidate, "a", "i1")
	err := &StructuralError{Bag: b}
	assert.Contains(t, err.Error(), "1 structural error")
}
