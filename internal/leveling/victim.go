package leveling

import (
	"sort"

	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
)

// priorityKey is the ordered tuple spec.md §4.5 step 4 ranks victims by,
// lower first = more deserving of keeping. Built as a struct rather than a
// packed scalar so each component stays independently readable.
type priorityKey struct {
	anchored   bool // true sorts before false: anchored tasks are never delayed
	critical   bool // true sorts before false: critical tasks are kept
	priority   int  // higher user priority sorts first, so compared inverted
	totalFloat int
	earlyStart int64 // unix seconds, earlier sorts first
	fqid       string
}

// rankForDelay orders candidates from least- to most-deserving-of-delay:
// the LAST element in the returned slice is the one to delay.
func rankForDelay(fqids []string, graph *depgraph.Graph, tasks map[string]*cpm.ScheduledTask) []string {
	keys := make(map[string]priorityKey, len(fqids))
	for _, fqid := range fqids {
		t := graph.ByFQID[fqid]
		sched := tasks[fqid]
		keys[fqid] = priorityKey{
			anchored:   t.IsAnchored(),
			critical:   sched.IsCritical,
			priority:   t.EffectivePriority(),
			totalFloat: sched.TotalFloat,
			earlyStart: sched.EarlyStart.Unix(),
			fqid:       fqid,
		}
	}

	out := make([]string, len(fqids))
	copy(out, fqids)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := keys[out[i]], keys[out[j]]
		if a.anchored != b.anchored {
			return a.anchored // anchored sorts first: never delayed, so never the victim
		}
		if a.critical != b.critical {
			return a.critical // critical sorts first: kept over non-critical
		}
		if a.priority != b.priority {
			return a.priority > b.priority // higher priority kept first
		}
		if a.totalFloat != b.totalFloat {
			return a.totalFloat < b.totalFloat
		}
		if a.earlyStart != b.earlyStart {
			return a.earlyStart < b.earlyStart
		}
		return a.fqid < b.fqid
	})
	return out
}
