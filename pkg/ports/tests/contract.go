package tests

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// TreeSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.TreeSource.
// wantIDs is the preorder id sequence the source's document is expected to flatten to.
func TreeSourceContractTest(t *testing.T, source ports.TreeSource, wantIDs []string) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Load (Success)
	t.Run("Load_Success", func(t *testing.T) {
		items, err := source.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading document: %v", err)
		}
		if len(items) == 0 {
			t.Fatal("expected a non-empty document")
		}
	})

	// 2. Test preorder shape
	t.Run("Load_Preorder", func(t *testing.T) {
		items, err := source.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading document: %v", err)
		}

		entries := domain.FlattenItems(items)
		if len(entries) != len(wantIDs) {
			t.Fatalf("expected %d entries, got %d", len(wantIDs), len(entries))
		}
		for i, want := range wantIDs {
			if entries[i].ID != want {
				t.Errorf("entry %d: got id %q, want %q", i, entries[i].ID, want)
			}
		}
	})

	// 3. Test id integrity
	t.Run("Load_UniqueIDs", func(t *testing.T) {
		items, err := source.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading document: %v", err)
		}

		seen := make(map[string]bool)
		for _, e := range domain.FlattenItems(items) {
			if e.ID == "" {
				t.Error("entry with empty id")
				continue
			}
			if seen[e.ID] {
				t.Errorf("duplicate id %q", e.ID)
			}
			seen[e.ID] = true
		}
	})
}
