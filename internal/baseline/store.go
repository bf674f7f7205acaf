package baseline

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alanbld/utf8proj/internal/cpm"
	"github.com/alanbld/utf8proj/internal/depgraph"
	"github.com/alanbld/utf8proj/internal/diagnostic"
)

// Store is the side-file-backed baseline store for one project. Path is the
// ".baselines" file colocated with the project (spec.md §6); it need not
// exist yet — the first Save creates it.
type Store struct {
	Path string
}

// NewStore returns a Store rooted at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) readAll() ([]Baseline, error) {
	f, err := os.Open(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening baseline side-file %s: %w", s.Path, err)
	}
	defer f.Close()
	return Decode(f)
}

func (s *Store) writeAll(baselines []Baseline) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("writing baseline side-file %s: %w", s.Path, err)
	}
	defer f.Close()
	return Encode(f, baselines)
}

// Save extracts leaf early-dates from result and graph and records them
// under name. Fails with B003 (no error return, per the diagnostic-driven
// PolicyError convention) if name already exists; no force-overwrite exists
// (spec.md §4.6 Immutability).
func (s *Store) Save(graph *depgraph.Graph, result *cpm.Result, name string, description, parent *string, saved time.Time) (*diagnostic.Bag, error) {
	bag := diagnostic.NewBag()
	err := withLock(s.Path, func() error {
		existing, err := s.readAll()
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.Name == name {
				bag.Add(diagnostic.Diagnostic{
					Code: diagnostic.CodeBaselineNameExists, Severity: diagnostic.Error,
					Phase: diagnostic.PhaseBaseline, Message: fmt.Sprintf("baseline %q already exists", name),
				})
				return nil
			}
		}

		snapshots := make(map[string]Snapshot, len(graph.Leaves))
		for _, leaf := range graph.Leaves {
			sched := result.Tasks[leaf.FQID]
			if sched == nil {
				continue
			}
			snapshots[leaf.FQID] = Snapshot{EarlyStart: sched.EarlyStart, EarlyFinish: sched.EarlyFinish}
		}

		containerCount := 0
		for fqid := range graph.ByFQID {
			if _, isLeaf := snapshots[fqid]; !isLeaf {
				containerCount++
			}
		}
		if containerCount > 0 {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeBaselineContainerExcluded, Severity: diagnostic.Info,
				Phase: diagnostic.PhaseBaseline,
				Message: fmt.Sprintf("%d container task(s) excluded from baseline %q; only leaves are snapshotted", containerCount, name),
			})
		}

		b := Baseline{
			Metadata:      Metadata{Name: name, Saved: saved.UTC(), Description: description, Parent: parent},
			Snapshots:     snapshots,
			ProjectFinish: result.ProjectFinish,
		}
		existing = append(existing, b)

		bag.Add(diagnostic.Diagnostic{
			Code: diagnostic.CodeBaselineSaved, Severity: diagnostic.Info,
			Phase: diagnostic.PhaseBaseline, Message: fmt.Sprintf("baseline %q saved", name),
		})
		return s.writeAll(existing)
	})
	if err != nil {
		return bag, err
	}
	return bag, nil
}

// List returns every baseline's metadata, sorted by name.
func (s *Store) List() ([]Summary, error) {
	baselines, err := s.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(baselines))
	for _, b := range baselines {
		out = append(out, b.Metadata)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Show returns the full content of one baseline, or nil if it doesn't
// exist (callers distinguish "not found" by a nil return with no error).
func (s *Store) Show(name string) (*Baseline, error) {
	baselines, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, b := range baselines {
		if b.Name == name {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

// Remove deletes a baseline by name with no tombstone. Returns B004 in the
// bag (not an error) if name was never present, matching spec.md §4.6.
func (s *Store) Remove(name string) (*diagnostic.Bag, error) {
	bag := diagnostic.NewBag()
	err := withLock(s.Path, func() error {
		existing, err := s.readAll()
		if err != nil {
			return err
		}
		kept := existing[:0:0]
		found := false
		for _, b := range existing {
			if b.Name == name {
				found = true
				continue
			}
			kept = append(kept, b)
		}
		if !found {
			bag.Add(diagnostic.Diagnostic{
				Code: diagnostic.CodeBaselineNotFound, Severity: diagnostic.Error,
				Phase: diagnostic.PhaseBaseline, Message: fmt.Sprintf("baseline %q not found", name),
			})
			return nil
		}
		return s.writeAll(kept)
	})
	if err != nil {
		return bag, err
	}
	return bag, nil
}
