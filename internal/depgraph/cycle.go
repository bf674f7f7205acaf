package depgraph

import (
	"sort"

	"github.com/alanbld/utf8proj/internal/diagnostic"
)

// topologicalOrder computes a topological order over g's leaves using
// Kahn's algorithm with a stable smallest-fqid-first tie-break. If any leaf
// is left undischarged, a cycle exists; it is reported via DFS back-edge
// detection in canonical (smallest-id-first rotation) form (spec.md §4.3).
func topologicalOrder(g *Graph) ([]string, *diagnostic.Bag) {
	bag := diagnostic.NewBag()

	indegree := make(map[string]int, len(g.Leaves))
	adjacency := make(map[string][]string)
	for _, l := range g.Leaves {
		indegree[l.FQID] = 0
	}
	for _, e := range g.Edges {
		adjacency[e.PredecessorFQID] = append(adjacency[e.PredecessorFQID], e.SuccessorFQID)
		indegree[e.SuccessorFQID]++
	}
	for fqid := range adjacency {
		sort.Strings(adjacency[fqid])
	}

	var ready []string
	for fqid, d := range indegree {
		if d == 0 {
			ready = append(ready, fqid)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, succ := range adjacency[next] {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	if len(order) == len(g.Leaves) {
		return order, bag
	}

	cycle := findCycle(g, adjacency)
	bag.Add(diagnostic.Diagnostic{
		Code: diagnostic.CodeCyclicDependency, Severity: diagnostic.Error,
		Phase: diagnostic.PhaseDepGraph,
		Message: "dependency cycle detected: " + joinArrow(cycle),
		Details: map[string]any{"cycle": cycle},
	})
	return nil, bag
}

// findCycle runs DFS back-edge detection over the leaf graph and returns
// one cycle, rotated so its lexicographically smallest fqid comes first,
// for deterministic reporting.
func findCycle(g *Graph, adjacency map[string][]string) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.Leaves))
	parent := make(map[string]string)
	fqids := make([]string, 0, len(g.Leaves))
	for _, l := range g.Leaves {
		color[l.FQID] = white
		fqids = append(fqids, l.FQID)
	}
	sort.Strings(fqids)

	var cyclePath []string
	var dfs func(u string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, v := range adjacency[u] {
			if color[v] == white {
				parent[v] = u
				if dfs(v) {
					return true
				}
			} else if color[v] == gray {
				// Back edge found: reconstruct the cycle from v..u then close with v.
				path := []string{v}
				cur := u
				for cur != v {
					path = append(path, cur)
					cur = parent[cur]
				}
				reverse(path)
				cyclePath = path
				return true
			}
		}
		color[u] = black
		return false
	}

	for _, fqid := range fqids {
		if color[fqid] == white {
			if dfs(fqid) {
				break
			}
		}
	}
	return canonicalRotation(cyclePath)
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// canonicalRotation rotates cycle so its lexicographically smallest element
// is first, yielding a deterministic report regardless of where DFS
// happened to enter the cycle.
func canonicalRotation(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	minIdx := 0
	for i, v := range cycle {
		if v < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[minIdx:]...)
	out = append(out, cycle[:minIdx]...)
	return out
}

func joinArrow(cycle []string) string {
	s := ""
	for i, c := range cycle {
		if i > 0 {
			s += " -> "
		}
		s += c
	}
	if len(cycle) > 0 {
		s += " -> " + cycle[0]
	}
	return s
}
