package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestCheck(t *testing.T) {
	// Scenario A: clean outline, no warnings.
	clean := domain.FlattenItems([]domain.Item{
		{ID: "guide", Title: "Guide", Kind: domain.KindSection, Items: []domain.Item{
			{ID: "intro", Title: "Intro", Kind: domain.KindPage},
		}},
	})

	if warnings := Check(clean); len(warnings) != 0 {
		t.Errorf("Scenario A (clean) produced warnings: %v", warnings)
	}

	// Scenario B: untitled entry.
	untitled := domain.FlattenItems([]domain.Item{
		{ID: "mystery"},
	})

	warnings := Check(untitled)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "'mystery' has no title") {
		t.Errorf("Scenario B (untitled) warnings = %v", warnings)
	}

	// Scenario C: empty section and a note with children.
	odd := domain.FlattenItems([]domain.Item{
		{ID: "hollow", Title: "Hollow", Kind: domain.KindSection},
		{ID: "aside", Title: "Aside", Kind: domain.KindNote, Items: []domain.Item{
			{ID: "nested", Title: "Nested"},
		}},
	})

	joined := strings.Join(Check(odd), "\n")
	if !strings.Contains(joined, "section 'hollow' is empty") {
		t.Errorf("Scenario C missing empty-section warning: %s", joined)
	}
	if !strings.Contains(joined, "note 'aside' has children") {
		t.Errorf("Scenario C missing note-with-children warning: %s", joined)
	}
}

func TestSummarize(t *testing.T) {
	entries := domain.FlattenItems([]domain.Item{
		{ID: "a", Title: "A", Items: []domain.Item{
			{ID: "b", Title: "B", Items: []domain.Item{
				{ID: "c", Title: "C"},
			}},
		}},
		{ID: "d", Title: "D"},
	})

	s := Summarize(entries)
	if s.Entries != 4 {
		t.Errorf("Entries = %d, want 4", s.Entries)
	}
	if s.Roots != 2 {
		t.Errorf("Roots = %d, want 2", s.Roots)
	}
	if s.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", s.MaxDepth)
	}
}
