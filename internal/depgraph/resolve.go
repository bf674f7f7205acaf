package depgraph

import (
	"strings"

	"github.com/alanbld/utf8proj/internal/domain"
)

// splitLeadingUp counts leading ".." path segments (each either followed by
// "/" or ending the reference) and returns the remaining suffix.
func splitLeadingUp(ref string) (int, string) {
	up := 0
	rest := ref
	for {
		switch {
		case rest == "..":
			return up + 1, ""
		case strings.HasPrefix(rest, "../"):
			up++
			rest = rest[len("../"):]
		case strings.HasPrefix(rest, "..."):
			// not a valid up-segment; stop to avoid infinite loop on odd input
			return up, rest
		default:
			return up, rest
		}
	}
}

// resolveRef resolves a dependency reference declared by a leaf at the
// given ancestor chain (root-first, leaf excluded). Resolution tries, in
// order: the sibling scope, then each enclosing ancestor scope walking up,
// then the absolute path from the project root — first match wins
// (spec.md §4.3).
func resolveRef(ref string, ancestors []*domain.Task, fqidOf map[*domain.Task]string, index map[string]*domain.Task) (string, bool) {
	upCount, suffix := splitLeadingUp(ref)
	if suffix == "" {
		return "", false
	}

	base := ancestors
	if upCount > len(base) {
		return "", false
	}
	base = base[:len(base)-upCount]

	for i := len(base) - 1; i >= 0; i-- {
		candidate := fqidOf[base[i]] + "." + suffix
		if _, ok := index[candidate]; ok {
			return candidate, true
		}
	}
	// Final fallback: absolute path from the project root.
	if _, ok := index[suffix]; ok {
		return suffix, true
	}
	return "", false
}
