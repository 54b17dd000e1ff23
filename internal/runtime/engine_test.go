package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
)

func orchardSource(t *testing.T) *memory.Source {
	t.Helper()
	source, err := memory.NewSource(
		domain.Item{
			ID:    "fruits",
			Title: "Fruits",
			Kind:  "section",
			Items: []domain.Item{
				{ID: "pear", Title: "Pear", Fields: map[string]any{"color": "green"}},
				{ID: "citrus", Title: "Citrus", Items: []domain.Item{
					{ID: "lime", Title: "Lime"},
				}},
			},
		},
		domain.Item{ID: "veg", Title: "Vegetables"},
	)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	return source
}

func TestEngine_ReloadAndReads(t *testing.T) {
	engine := runtime.NewEngine(orchardSource(t))
	ctx := context.Background()

	// Empty before the first reload.
	entries, err := engine.Outline(ctx)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty outline before reload, got %d entries", len(entries))
	}

	if err := engine.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	t.Run("Outline Preorder", func(t *testing.T) {
		entries, err := engine.Outline(ctx)
		if err != nil {
			t.Fatalf("Outline: %v", err)
		}
		wantIDs := []string{"fruits", "pear", "citrus", "lime", "veg"}
		if len(entries) != len(wantIDs) {
			t.Fatalf("expected %d entries, got %d", len(wantIDs), len(entries))
		}
		for i, want := range wantIDs {
			if entries[i].ID != want {
				t.Errorf("entry %d = %q, want %q", i, entries[i].ID, want)
			}
		}
		if engine.Len() != len(wantIDs) {
			t.Errorf("Len() = %d, want %d", engine.Len(), len(wantIDs))
		}
	})

	t.Run("Roots", func(t *testing.T) {
		roots, err := engine.Roots(ctx)
		if err != nil {
			t.Fatalf("Roots: %v", err)
		}
		if len(roots) != 2 || roots[0].ID != "fruits" || roots[1].ID != "veg" {
			t.Errorf("roots = %+v", roots)
		}
	})

	t.Run("Children", func(t *testing.T) {
		kids, err := engine.Children(ctx, "fruits")
		if err != nil {
			t.Fatalf("Children: %v", err)
		}
		if len(kids) != 2 || kids[0].ID != "pear" || kids[1].ID != "citrus" {
			t.Errorf("children = %+v", kids)
		}

		leaf, err := engine.Children(ctx, "lime")
		if err != nil {
			t.Fatalf("Children(lime): %v", err)
		}
		if len(leaf) != 0 {
			t.Errorf("expected no children for a leaf, got %+v", leaf)
		}

		if _, err := engine.Children(ctx, "nope"); !errors.Is(err, domain.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("Entry", func(t *testing.T) {
		citrus, err := engine.Entry(ctx, "citrus")
		if err != nil {
			t.Fatalf("Entry: %v", err)
		}
		if citrus.ChildCount != 1 || citrus.ParentID != "fruits" || citrus.Depth != 1 {
			t.Errorf("citrus = %+v", citrus)
		}

		if _, err := engine.Entry(ctx, "nope"); !errors.Is(err, domain.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})
}

func TestEngine_ReloadSwapsSnapshot(t *testing.T) {
	source := orchardSource(t)
	engine := runtime.NewEngine(source)
	ctx := context.Background()

	if err := engine.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if err := source.Swap([]domain.Item{{ID: "solo", Title: "Solo"}}); err != nil {
		t.Fatalf("Swap: %v", err)
	}

	// The engine keeps serving the old snapshot until the next reload.
	if engine.Len() != 5 {
		t.Errorf("expected stale snapshot of 5 entries, got %d", engine.Len())
	}

	if err := engine.Reload(ctx); err != nil {
		t.Fatalf("Reload after swap: %v", err)
	}
	entries, err := engine.Outline(ctx)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "solo" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestEngine_Search(t *testing.T) {
	engine := runtime.NewEngine(orchardSource(t))
	ctx := context.Background()
	if err := engine.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	t.Run("Nested Match Drags Ancestors", func(t *testing.T) {
		entries, err := engine.Search(ctx, "lim")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		wantIDs := []string{"fruits", "citrus", "lime"}
		if len(entries) != len(wantIDs) {
			t.Fatalf("expected %d entries, got %+v", len(wantIDs), entries)
		}
		for i, want := range wantIDs {
			if entries[i].ID != want {
				t.Errorf("entry %d = %q, want %q", i, entries[i].ID, want)
			}
		}
	})

	t.Run("Root Match Drags Subtree", func(t *testing.T) {
		entries, err := engine.Search(ctx, "fruits")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(entries) != 4 || entries[0].ID != "fruits" || entries[3].ID != "lime" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("Empty Query Returns All", func(t *testing.T) {
		entries, err := engine.Search(ctx, "  ")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(entries) != 5 {
			t.Errorf("expected the unfiltered outline, got %d entries", len(entries))
		}
	})

	t.Run("No Match", func(t *testing.T) {
		entries, err := engine.Search(ctx, "zzz")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %+v", entries)
		}
	})
}

func TestEngine_InspectReturnsDocument(t *testing.T) {
	engine := runtime.NewEngine(orchardSource(t))
	ctx := context.Background()
	if err := engine.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	items, err := engine.Inspect()
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(items) != 2 || items[0].ID != "fruits" || len(items[0].Items) != 2 {
		t.Errorf("items = %+v", items)
	}
}
