package domain

// Resource is a capacity-bounded assignable identity (spec.md §3). Capacity
// is a positive rational with 1.0 meaning one full-time unit; represented as
// float64 since no fixed-point/rational library appears anywhere in the
// retrieved example pack (see DESIGN.md).
type Resource struct {
	ID         string
	Capacity   float64
	CalendarID *string
	UnitCost   *float64
}

// ResourceAssignment binds a task to a resource at a percent allocation in
// (0, capacity].
type ResourceAssignment struct {
	ResourceID string
	Units      float64
}
