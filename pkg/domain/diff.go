package domain

import (
	"reflect"
)

// StateDiff represents the changes between two session states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// CursorID changed?
	CursorID *string `json:"cursor_id,omitempty"`

	// Query changed?
	Query *string `json:"query,omitempty"`

	// Scroll carries the full scroll block when any of its fields moved.
	// It is small enough that per-field deltas are not worth the bookkeeping.
	Scroll *Scroll `json:"scroll,omitempty"`

	// Expanded contains only changed, added or deleted entry ids.
	// For deletions (a collapse), the key is present with a nil value.
	// Clients should merge these updates into their local state.
	Expanded map[string]any `json:"expanded,omitempty"`

	// Attrs follows the same merge semantics as Expanded.
	Attrs map[string]any `json:"attrs,omitempty"`

	// HistoryParams contains *new* items appended to the visit trail.
	// History is append-only in practice, so a rewrite is not detected.
	HistoryParams *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta represents changes to the visit trail.
type HistoryDelta struct {
	Appended []string `json:"appended"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState
// (initial load). A nil return means nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	// 1. Scalar fields
	if oldState == nil {
		if newState.CursorID != "" {
			diff.CursorID = &newState.CursorID
		}
		if newState.Query != "" {
			diff.Query = &newState.Query
		}
		sc := newState.Scroll
		diff.Scroll = &sc
	} else {
		if oldState.CursorID != newState.CursorID {
			diff.CursorID = &newState.CursorID
		}
		if oldState.Query != newState.Query {
			diff.Query = &newState.Query
		}
		if oldState.Scroll != newState.Scroll {
			sc := newState.Scroll
			diff.Scroll = &sc
		}
	}

	// 2. Map deltas
	diff.Expanded = diffExpanded(oldState, newState)
	diff.Attrs = diffAttrs(oldState, newState)

	// 3. History
	diff.HistoryParams = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffExpanded(old *State, new *State) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Expanded {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	for k, newVal := range new.Expanded {
		oldVal, exists := old.Expanded[k]
		if !exists || oldVal != newVal {
			delta[k] = newVal
		}
	}
	for k := range old.Expanded {
		if _, exists := new.Expanded[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffAttrs(old *State, new *State) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Attrs {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	// Check for added or modified
	for k, newVal := range new.Attrs {
		oldVal, exists := old.Attrs[k]
		if !exists {
			delta[k] = newVal
		} else if !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	// Check for deletions
	for k := range old.Attrs {
		if _, exists := new.Attrs[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffHistory assumes append-only behavior for the visit trail.
func diffHistory(old *State, new *State) *HistoryDelta {
	if len(new.History) == 0 {
		return nil
	}

	if old == nil {
		return &HistoryDelta{Appended: new.History}
	}

	oldLen := len(old.History)
	newLen := len(new.History)

	if newLen > oldLen {
		return &HistoryDelta{
			Appended: new.History[oldLen:],
		}
	}

	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CursorID == nil &&
		d.Query == nil &&
		d.Scroll == nil &&
		len(d.Expanded) == 0 &&
		len(d.Attrs) == 0 &&
		d.HistoryParams == nil
}
