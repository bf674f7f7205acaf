package cpm

import (
	"sort"

	"github.com/alanbld/utf8proj/internal/depgraph"
)

// CriticalPath finds the unique longest chain of critical leaves, by sum of
// effective durations, in topological order. Ties are broken greedily: at
// each task the smallest predecessor id among equally long chains is kept,
// and among equally long chains overall the one ending at the smallest
// fully-qualified id is returned. This is not always the lexicographically
// smallest whole sequence of ids.
func CriticalPath(graph *depgraph.Graph, tasks map[string]*ScheduledTask) []string {
	critical := make(map[string]bool)
	for fqid, sched := range tasks {
		if sched.IsCritical {
			critical[fqid] = true
		}
	}
	if len(critical) == 0 {
		return nil
	}

	// chainLength[f] = length (in effective-duration days) of the longest
	// critical chain ending at f; predecessor[f] records the chain.
	chainLength := make(map[string]int, len(critical))
	predecessor := make(map[string]string, len(critical))

	for _, fqid := range graph.Order {
		if !critical[fqid] {
			continue
		}
		t := graph.ByFQID[fqid]
		dur := EffectiveDuration(t)
		best := dur
		bestPred := ""
		preds := graph.Predecessors(fqid)
		sort.Slice(preds, func(i, j int) bool { return preds[i].PredecessorFQID < preds[j].PredecessorFQID })
		for _, e := range preds {
			if !critical[e.PredecessorFQID] {
				continue
			}
			candidate := chainLength[e.PredecessorFQID] + dur
			if candidate > best || (candidate == best && (bestPred == "" || e.PredecessorFQID < bestPred)) {
				best = candidate
				bestPred = e.PredecessorFQID
			}
		}
		chainLength[fqid] = best
		predecessor[fqid] = bestPred
	}

	var end string
	bestLen := -1
	var endIDs []string
	for fqid := range critical {
		endIDs = append(endIDs, fqid)
	}
	sort.Strings(endIDs)
	for _, fqid := range endIDs {
		if chainLength[fqid] > bestLen {
			bestLen = chainLength[fqid]
			end = fqid
		}
	}

	var chain []string
	for cur := end; cur != ""; cur = predecessor[cur] {
		chain = append([]string{cur}, chain...)
	}
	return chain
}
