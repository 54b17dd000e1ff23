package validator

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Summary aggregates the shape of a flattened outline.
type Summary struct {
	Entries  int
	Roots    int
	MaxDepth int
}

// Summarize computes outline totals for reporting.
func Summarize(entries []domain.Entry) Summary {
	s := Summary{Entries: len(entries)}
	for _, e := range entries {
		if !e.HasParent {
			s.Roots++
		}
		if e.Depth > s.MaxDepth {
			s.MaxDepth = e.Depth
		}
	}
	return s
}

// Check inspects a flattened outline for suspicious shapes that load
// cleanly but usually indicate an authoring mistake. Structural errors
// (duplicate or empty ids, unknown parents) never reach this point
// because document validation rejects them at load time.
func Check(entries []domain.Entry) []string {
	var warnings []string

	for _, e := range entries {
		if e.Title == "" {
			warnings = append(warnings, fmt.Sprintf("entry '%s' has no title, viewers fall back to the id", e.ID))
		}

		switch e.Kind {
		case domain.KindSection:
			if e.ChildCount == 0 {
				warnings = append(warnings, fmt.Sprintf("section '%s' is empty", e.ID))
			}
		case domain.KindNote:
			if e.ChildCount > 0 {
				warnings = append(warnings, fmt.Sprintf("note '%s' has children of its own", e.ID))
			}
		}
	}

	return warnings
}
