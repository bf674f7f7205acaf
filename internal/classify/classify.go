package classify

import (
	"sort"

	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
)

// Bucket is one group of leaf task ids sharing a Classification, with its
// members sorted by fully-qualified id.
type Bucket struct {
	Label Label
	Order int
	FQIDs []string
}

// GroupBy applies classifier to every leaf in graph and returns buckets
// ordered by Order, each bucket's members ordered by fully-qualified id
// (spec.md §4.7 invariants).
func GroupBy(graph *depgraph.Graph, tasks map[string]*cpm.ScheduledTask, classifier Classifier) []Bucket {
	byLabel := make(map[Label]*Bucket)

	for _, leaf := range graph.Leaves {
		sched := tasks[leaf.FQID]
		if sched == nil {
			continue
		}
		c := classifier(leaf.Task, sched)
		b, ok := byLabel[c.Label]
		if !ok {
			b = &Bucket{Label: c.Label, Order: c.Order}
			byLabel[c.Label] = b
		}
		b.FQIDs = append(b.FQIDs, leaf.FQID)
	}

	out := make([]Bucket, 0, len(byLabel))
	for _, b := range byLabel {
		sort.Strings(b.FQIDs)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
