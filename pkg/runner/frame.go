package runner

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Frame is one rendered view of the browsing session: a window of the
// (possibly filtered) outline plus everything a presenter needs to draw it.
type Frame struct {
	// Entries holds the visible rows, in outline order.
	Entries []domain.Entry `json:"entries"`

	// Offset is the index of Entries[0] within the full filtered outline.
	Offset int `json:"offset"`

	// Total is the size of the full filtered outline.
	Total int `json:"total"`

	// Cursor is the index within Entries of the focused row, -1 when the
	// focused entry is offscreen or no entry is focused yet.
	Cursor int `json:"cursor"`

	// Query is the active search filter, empty when unfiltered.
	Query string `json:"query,omitempty"`

	// Status is a one-line summary (row range, session hints).
	Status string `json:"status,omitempty"`
}

// foldEntries hides the descendants of entries that are not expanded.
// Roots are always visible. Preorder guarantees a parent is decided before
// its children, so one pass with a visibility map suffices.
func foldEntries(entries []domain.Entry, expanded map[string]bool) []domain.Entry {
	visible := make(map[string]bool, len(entries))
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.HasParent && !(expanded[e.ParentID] && visible[e.ParentID]) {
			continue
		}
		visible[e.ID] = true
		out = append(out, e)
	}
	return out
}

// clampWindow normalizes a desired top row against the list size so the
// window never starts past the end or before the beginning.
func clampWindow(offset, total, height int) (start, end int) {
	if total == 0 || height <= 0 {
		return 0, 0
	}
	start = offset
	if max := total - 1; start > max {
		start = max
	}
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > total {
		end = total
	}
	return start, end
}
