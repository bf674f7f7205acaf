package baseline

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the side-file's DATE production (spec.md §6): a bare
// calendar date, regime-agnostic.
const dateLayout = "2006-01-02"

// Encode writes baselines to w in the grammar spec.md §6 defines, plus a
// "project_finish: DATE" line in each block, sorted by name with snapshots
// sorted by id within each block.
func Encode(w io.Writer, baselines []Baseline) error {
	sorted := make([]Baseline, len(baselines))
	copy(sorted, baselines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	bw := bufio.NewWriter(w)
	for _, b := range sorted {
		if err := encodeOne(bw, b); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encodeOne(bw *bufio.Writer, b Baseline) error {
	if _, err := fmt.Fprintf(bw, "baseline %s {\n", b.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "saved: %s\n", b.Saved.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if b.Description != nil {
		if _, err := fmt.Fprintf(bw, "description: %s\n", strconv.Quote(*b.Description)); err != nil {
			return err
		}
	}
	if b.Parent != nil {
		if _, err := fmt.Fprintf(bw, "parent: %s\n", *b.Parent); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "project_finish: %s\n", b.ProjectFinish.Format(dateLayout)); err != nil {
		return err
	}

	ids := make([]string, 0, len(b.Snapshots))
	for id := range b.Snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := b.Snapshots[id]
		if _, err := fmt.Fprintf(bw, "%s: %s->%s\n", id, s.EarlyStart.Format(dateLayout), s.EarlyFinish.Format(dateLayout)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(bw, "}\n")
	return err
}

// Decode reads the side-file format from r. A malformed file yields a
// descriptive error rather than a partial result: the store treats the
// whole file as a single unit of trust.
func Decode(r io.Reader) ([]Baseline, error) {
	scanner := bufio.NewScanner(r)
	var out []Baseline
	var cur *Baseline
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case cur == nil && strings.HasPrefix(line, "baseline "):
			name, ok := parseBaselineHeader(line)
			if !ok {
				return nil, fmt.Errorf("baseline side-file line %d: malformed baseline header %q", lineNo, line)
			}
			cur = &Baseline{Metadata: Metadata{Name: name}, Snapshots: make(map[string]Snapshot)}
		case cur != nil && line == "}":
			out = append(out, *cur)
			cur = nil
		case cur != nil && strings.HasPrefix(line, "saved:"):
			ts := strings.TrimSpace(strings.TrimPrefix(line, "saved:"))
			t, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, fmt.Errorf("baseline side-file line %d: bad saved timestamp %q: %w", lineNo, ts, err)
			}
			cur.Saved = t.UTC()
		case cur != nil && strings.HasPrefix(line, "description:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "description:"))
			desc, err := strconv.Unquote(raw)
			if err != nil {
				return nil, fmt.Errorf("baseline side-file line %d: bad description %q: %w", lineNo, raw, err)
			}
			cur.Description = &desc
		case cur != nil && strings.HasPrefix(line, "parent:"):
			parent := strings.TrimSpace(strings.TrimPrefix(line, "parent:"))
			cur.Parent = &parent
		case cur != nil && strings.HasPrefix(line, "project_finish:") && !strings.Contains(line, "->"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "project_finish:"))
			finish, err := time.Parse(dateLayout, raw)
			if err != nil {
				return nil, fmt.Errorf("baseline side-file line %d: bad project_finish date %q: %w", lineNo, raw, err)
			}
			cur.ProjectFinish = finish
		case cur != nil:
			id, snap, err := parseSnapshotLine(line)
			if err != nil {
				return nil, fmt.Errorf("baseline side-file line %d: %w", lineNo, err)
			}
			cur.Snapshots[id] = snap
		default:
			return nil, fmt.Errorf("baseline side-file line %d: unexpected content outside a baseline block: %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading baseline side-file: %w", err)
	}
	if cur != nil {
		return nil, fmt.Errorf("baseline side-file: unterminated baseline block %q", cur.Name)
	}
	return out, nil
}

func parseBaselineHeader(line string) (string, bool) {
	rest := strings.TrimPrefix(line, "baseline ")
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, "{") {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimSuffix(rest, "{"))
	if name == "" {
		return "", false
	}
	return name, true
}

func parseSnapshotLine(line string) (string, Snapshot, error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", Snapshot{}, fmt.Errorf("malformed snapshot line %q", line)
	}
	id := strings.TrimSpace(line[:colon])
	span := strings.TrimSpace(line[colon+1:])
	parts := strings.SplitN(span, "->", 2)
	if len(parts) != 2 {
		return "", Snapshot{}, fmt.Errorf("malformed snapshot span %q", span)
	}
	start, err := time.Parse(dateLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return "", Snapshot{}, fmt.Errorf("bad snapshot start date %q: %w", parts[0], err)
	}
	finish, err := time.Parse(dateLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return "", Snapshot{}, fmt.Errorf("bad snapshot finish date %q: %w", parts[1], err)
	}
	return id, Snapshot{EarlyStart: start, EarlyFinish: finish}, nil
}
