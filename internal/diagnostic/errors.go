package diagnostic

import "fmt"

// StructuralError wraps a Bag containing at least one Error-severity
// diagnostic. Returned by the validator/depgraph builder when scheduling
// cannot proceed (spec.md §7).
type StructuralError struct {
	Bag *Bag
}

func (e *StructuralError) Error() string {
	n := 0
	if e.Bag != nil {
		for _, d := range e.Bag.All() {
			if d.Severity == Error {
				n++
			}
		}
	}
	return fmt.Sprintf("utf8proj: %d structural error(s); see diagnostics", n)
}

// PolicyError reports a failed operation that is not a structural defect in
// the project — e.g. a duplicate baseline name, an unknown baseline, or
// leveling=error encountering a conflict (spec.md §7).
type PolicyError struct {
	Code    string
	Message string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewPolicyError constructs a PolicyError with the given stable code.
func NewPolicyError(code, message string) *PolicyError {
	return &PolicyError{Code: code, Message: message}
}
