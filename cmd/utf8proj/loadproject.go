package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alanbld/utf8proj/internal/domain"
)

// loadProject reads a *domain.Project from a JSON file. This is a minimal
// demonstration loader, not a parser: it decodes straight into the domain
// types using their exported field names as JSON keys. Turning real project
// surface syntax into a *domain.Project is explicitly out of scope (spec.md
// §1) and belongs to a caller that embeds this module, not to utf8proj
// itself.
func loadProject(path string) (*domain.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var project domain.Project
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&project); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(project.Calendars) == 0 {
		project.Calendars = []*domain.Calendar{domain.DefaultWorkWeek("default")}
	}
	if project.DefaultCalendarID == "" {
		project.DefaultCalendarID = project.Calendars[0].ID
	}
	return &project, nil
}
