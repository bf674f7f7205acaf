// Package depgraph builds the leaf-only dependency DAG the CPM solver walks
// (spec.md §4.3): it resolves predecessor references, expands container
// references to every leaf descendant, and rejects cycles.
package depgraph

import (
	"strings"

	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
)

// Graph is the resolved, acyclic leaf dependency graph.
type Graph struct {
	Leaves   []domain.TaskRef          // declaration order
	ByFQID   map[string]*domain.Task   // every node, leaves and containers
	Ancestry map[string][]*domain.Task // fqid -> ancestor chain, root-first
	Edges    []domain.Edge
	Order    []string // topological order of leaf fqids
}

// Predecessors returns the edges for which fqid is the successor.
func (g *Graph) Predecessors(fqid string) []domain.Edge {
	var out []domain.Edge
	for _, e := range g.Edges {
		if e.SuccessorFQID == fqid {
			out = append(out, e)
		}
	}
	return out
}

// Successors returns the edges for which fqid is the predecessor.
func (g *Graph) Successors(fqid string) []domain.Edge {
	var out []domain.Edge
	for _, e := range g.Edges {
		if e.PredecessorFQID == fqid {
			out = append(out, e)
		}
	}
	return out
}

// Build extracts the leaf-only scheduling DAG from project's WBS. It
// returns a nil Graph if any Error-severity diagnostic was emitted —
// callers must check bag.HasErrors() before using the result.
func Build(project *domain.Project) (*Graph, *diagnostic.Bag) {
	bag := diagnostic.NewBag()

	g := &Graph{
		ByFQID:   make(map[string]*domain.Task),
		Ancestry: make(map[string][]*domain.Task),
	}

	fqidOf := make(map[*domain.Task]string)
	domain.Walk(project.Tasks, func(fqid string, t *domain.Task, ancestors []*domain.Task) {
		g.ByFQID[fqid] = t
		g.Ancestry[fqid] = ancestors
		fqidOf[t] = fqid
		if t.Role() == domain.RoleLeaf {
			g.Leaves = append(g.Leaves, domain.TaskRef{FQID: fqid, Task: t, Ancestors: ancestors})
		}
	})

	for _, leafRef := range g.Leaves {
		ancestors := g.Ancestry[leafRef.FQID]
		for _, dep := range leafRef.Task.Dependencies {
			targetFQID, ok := resolveRef(dep.PredecessorRef, ancestors, fqidOf, g.ByFQID)
			if !ok {
				bag.Add(diagnostic.Diagnostic{
					Code: diagnostic.CodeUnresolvedReference, Severity: diagnostic.Error,
					Phase: diagnostic.PhaseDepGraph, TaskID: leafRef.FQID,
					Message: "dependency reference " + dep.PredecessorRef + " did not resolve",
					Details: map[string]any{"reference": dep.PredecessorRef},
				})
				continue
			}

			target := g.ByFQID[targetFQID]
			var predecessorLeafFQIDs []string
			if target.Role() == domain.RoleLeaf {
				predecessorLeafFQIDs = []string{targetFQID}
			} else {
				predecessorLeafFQIDs = leavesUnder(targetFQID, g.Leaves)
			}

			for _, predFQID := range predecessorLeafFQIDs {
				g.Edges = append(g.Edges, domain.Edge{
					PredecessorFQID: predFQID,
					SuccessorFQID:   leafRef.FQID,
					Kind:            dep.Kind,
					Lag:             dep.Lag,
				})
				crossRegimeCheck(bag, predFQID, leafRef.FQID, g.ByFQID)
			}
		}
	}

	if bag.HasErrors() {
		return nil, bag
	}

	order, cycleBag := topologicalOrder(g)
	bag.Merge(cycleBag)
	if bag.HasErrors() {
		return nil, bag
	}
	g.Order = order

	return g, bag
}

// leavesUnder returns the fully-qualified ids of every leaf in leaves that
// descends from the container at containerFQID, in declaration order.
func leavesUnder(containerFQID string, leaves []domain.TaskRef) []string {
	prefix := containerFQID + "."
	var out []string
	for _, l := range leaves {
		if strings.HasPrefix(l.FQID, prefix) {
			out = append(out, l.FQID)
		}
	}
	return out
}

func crossRegimeCheck(bag *diagnostic.Bag, predFQID, succFQID string, byFQID map[string]*domain.Task) {
	pred, succ := byFQID[predFQID], byFQID[succFQID]
	if pred == nil || succ == nil {
		return
	}
	if pred.EffectiveRegime() != succ.EffectiveRegime() {
		bag.Add(diagnostic.Diagnostic{
			Code: diagnostic.CodeCrossRegimeDependency, Severity: diagnostic.Warning,
			Phase: diagnostic.PhaseDepGraph, TaskID: succFQID,
			Message: "dependency crosses work/event regimes; date arithmetic on either side uses a different calendar rule",
			Details: map[string]any{"predecessor": predFQID, "successor": succFQID},
		})
	}
}
