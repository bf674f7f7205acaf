package cpm

import (
	"sort"

	"github.com/alanbld/utf8proj/internal/calendar"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/diagnostic"
	"github.com/alanbld/utf8proj/internal/domain"
)

// Run executes the full CPM pipeline over an already-validated project and
// its resolved dependency graph: forward pass, backward pass, float and
// critical path, and container derivation (spec.md §4.4). Callers are
// expected to have run internal/validate and internal/depgraph first and
// confirmed neither produced an Error-severity diagnostic.
func Run(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, opts Options) (*Result, *diagnostic.Bag) {
	bag := diagnostic.NewBag()

	tasks, forwardBag := Forward(project, graph, calendars, opts)
	bag.Merge(forwardBag)

	result, recomputeBag := Recompute(project, graph, calendars, tasks)
	bag.Merge(recomputeBag)

	return result, bag
}

// Recompute re-derives backward pass, float, critical path, and container
// aggregation from an already-forward-passed tasks map, without touching
// EarlyStart/EarlyFinish on any leaf. This is the re-entry point
// internal/leveling uses after shifting victims in place (spec.md §4.5): a
// second call to Forward would recompute early dates purely from
// durations/dependencies and silently undo the applied delay, so only the
// downstream derivations are redone here.
func Recompute(project *domain.Project, graph *depgraph.Graph, calendars *calendar.Registry, tasks map[string]*ScheduledTask) (*Result, *diagnostic.Bag) {
	bag := diagnostic.NewBag()

	target := ProjectTarget(project, graph, tasks)
	Backward(project, graph, calendars, tasks, target)
	ComputeFloat(project, graph, calendars, tasks)

	containerBag := DeriveContainers(project.Tasks, tasks)
	bag.Merge(containerBag)

	checkActualFinishPresence(bag, graph)
	for _, ref := range graph.Leaves {
		tasks[ref.FQID].Dependencies = nil
	}
	fillDependencySatisfaction(graph, tasks)

	criticalPath := CriticalPath(graph, tasks)

	return &Result{
		Tasks:         tasks,
		CriticalPath:  criticalPath,
		ProjectStart:  project.StartDate,
		ProjectFinish: target,
	}, bag
}

// checkActualFinishPresence implements T2: a leaf reported 100% complete
// without an actual_finish warns (spec.md §3).
func checkActualFinishPresence(bag *diagnostic.Bag, graph *depgraph.Graph) {
	for _, ref := range graph.Leaves {
		if ref.Task.PercentComplete >= 100 && ref.Task.ActualFinish == nil {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeActualFinishMissingDespiteDone, Severity: diagnostic.Warning,
				Phase: diagnostic.PhaseForward, TaskID: ref.FQID,
				Message: "percent_complete is 100 but actual_finish is not set",
			})
		}
	}
}

// fillDependencySatisfaction records, per leaf, the realized lag of each
// incoming edge once both ends have been scheduled (spec.md §3).
func fillDependencySatisfaction(graph *depgraph.Graph, tasks map[string]*ScheduledTask) {
	for _, ref := range graph.Leaves {
		sched := tasks[ref.FQID]
		preds := graph.Predecessors(ref.FQID)
		sort.Slice(preds, func(i, j int) bool { return preds[i].PredecessorFQID < preds[j].PredecessorFQID })
		for _, e := range preds {
			pred := tasks[e.PredecessorFQID]
			if pred == nil {
				continue
			}
			realized := realizedLagDays(e, pred, sched)
			sched.Dependencies = append(sched.Dependencies, SatisfiedDependency{
				PredecessorFQID: e.PredecessorFQID,
				Kind:            string(e.Kind),
				Lag:             e.Lag,
				RealizedLagDays: realized,
			})
		}
	}
}

func realizedLagDays(e domain.Edge, pred, succ *ScheduledTask) int {
	switch e.Kind {
	case domain.FinishToStart:
		return int(succ.EarlyStart.Sub(pred.EarlyFinish).Hours() / 24)
	case domain.StartToStart:
		return int(succ.EarlyStart.Sub(pred.EarlyStart).Hours() / 24)
	case domain.FinishToFinish:
		return int(succ.EarlyFinish.Sub(pred.EarlyFinish).Hours() / 24)
	case domain.StartToFinish:
		return int(succ.EarlyFinish.Sub(pred.EarlyStart).Hours() / 24)
	default:
		return 0
	}
}
