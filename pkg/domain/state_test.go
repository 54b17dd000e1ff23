package domain

import (
	"reflect"
	"testing"
)

func TestNewState(t *testing.T) {
	s := NewState("sess-1")
	if s.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want %q", s.SessionID, "sess-1")
	}
	if s.Expanded == nil || s.Attrs == nil {
		t.Error("NewState should allocate Expanded and Attrs")
	}
	if s.CursorID != "" || s.Query != "" || len(s.History) != 0 {
		t.Errorf("NewState should start clean, got %+v", s)
	}
}

func TestCloneIsolation(t *testing.T) {
	orig := NewState("sess-1")
	orig.CursorID = "fruits"
	orig.Expanded["fruits"] = true
	orig.Attrs["user"] = "ada"
	orig.History = []string{"fruits"}

	clone := orig.Clone()
	clone.CursorID = "citrus"
	clone.Expanded["citrus"] = true
	delete(clone.Expanded, "fruits")
	clone.Attrs["user"] = "grace"
	clone.History = append(clone.History, "citrus")

	if orig.CursorID != "fruits" {
		t.Errorf("original CursorID mutated to %q", orig.CursorID)
	}
	if !reflect.DeepEqual(orig.Expanded, map[string]bool{"fruits": true}) {
		t.Errorf("original Expanded mutated: %v", orig.Expanded)
	}
	if orig.Attrs["user"] != "ada" {
		t.Errorf("original Attrs mutated: %v", orig.Attrs)
	}
	if !reflect.DeepEqual(orig.History, []string{"fruits"}) {
		t.Errorf("original History mutated: %v", orig.History)
	}
}

func TestCloneNil(t *testing.T) {
	var s *State
	if s.Clone() != nil {
		t.Error("Clone of nil state should be nil")
	}
}

func TestVisit(t *testing.T) {
	s := NewState("sess-1")

	s.Visit("fruits")
	s.Visit("fruits") // consecutive repeat collapses
	s.Visit("citrus")
	s.Visit("fruits") // non-consecutive repeat records again
	s.Visit("")       // ignored

	if s.CursorID != "fruits" {
		t.Errorf("CursorID = %q, want %q", s.CursorID, "fruits")
	}
	want := []string{"fruits", "citrus", "fruits"}
	if !reflect.DeepEqual(s.History, want) {
		t.Errorf("History = %v, want %v", s.History, want)
	}
}
