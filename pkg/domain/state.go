package domain

// Scroll is the kinetic viewport position of a session, in row units.
// Offset stays fractional while a glide is running; hosts round at render
// time. Velocity is in rows per millisecond. Min and Max are derived from
// the outline length by the runtime, not chosen by callers.
type Scroll struct {
	Offset   float64 `json:"offset"`
	Velocity float64 `json:"velocity,omitempty"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// State represents the snapshot of one browsing session.
type State struct {
	// SessionID identifies the session in a StateStore.
	SessionID string `json:"session_id"`

	// CursorID is the id of the focused entry, empty before the first move.
	CursorID string `json:"cursor_id,omitempty"`

	// Query is the active search filter. Empty means unfiltered.
	Query string `json:"query,omitempty"`

	// Expanded tracks which entries are opened in collapsed-tree hosts.
	// Collapsing deletes the key rather than storing false.
	Expanded map[string]bool `json:"expanded,omitempty"`

	// Scroll is the kinetic viewport position.
	Scroll Scroll `json:"scroll"`

	// History records visited entry ids in order.
	History []string `json:"history,omitempty"`

	// Attrs holds host-attached session attributes (user, prefs, form
	// answers). The engine never reads it; persistence middleware may
	// redact or encrypt it.
	Attrs map[string]any `json:"attrs,omitempty"`
}

// NewState creates a clean session state.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Expanded:  make(map[string]bool),
		Attrs:     make(map[string]any),
	}
}

// Clone returns a copy safe to mutate without aliasing the maps and the
// history slice of the receiver.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Expanded = make(map[string]bool, len(s.Expanded))
	for k, v := range s.Expanded {
		next.Expanded[k] = v
	}
	next.Attrs = make(map[string]any, len(s.Attrs))
	for k, v := range s.Attrs {
		next.Attrs[k] = v
	}
	next.History = append([]string(nil), s.History...)
	return &next
}

// Visit moves the cursor and appends to the history. Consecutive visits to
// the same entry collapse into one history record.
func (s *State) Visit(entryID string) {
	if entryID == "" {
		return
	}
	s.CursorID = entryID
	if n := len(s.History); n > 0 && s.History[n-1] == entryID {
		return
	}
	s.History = append(s.History, entryID)
}
