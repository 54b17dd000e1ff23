package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	contract "github.com/aretw0/arbor/pkg/ports/tests"
)

func testDoc() []domain.Item {
	return []domain.Item{
		{ID: "fruits", Title: "Fruits", Items: []domain.Item{
			{ID: "pear", Title: "Pear"},
			{ID: "citrus", Title: "Citrus", Items: []domain.Item{
				{ID: "lime", Title: "Lime"},
			}},
		}},
		{ID: "veg", Title: "Vegetables"},
	}
}

func TestMemorySource_Contract(t *testing.T) {
	source, err := memory.NewSource(testDoc()...)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	contract.TreeSourceContractTest(t, source, []string{"fruits", "pear", "citrus", "lime", "veg"})
}

func TestMemorySource_RejectsBrokenDocument(t *testing.T) {
	_, err := memory.NewSource(domain.Item{ID: "a"}, domain.Item{ID: "a"})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	source, _ := memory.NewSource(domain.Item{ID: "a"})
	if err := source.Swap([]domain.Item{{Title: "nameless"}}); !errors.Is(err, domain.ErrEmptyID) {
		t.Errorf("expected ErrEmptyID from Swap, got %v", err)
	}
}

func TestMemorySource_LoadIsolation(t *testing.T) {
	source, err := memory.NewSource(testDoc()...)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	ctx := context.Background()
	first, _ := source.Load(ctx)
	first[0].Title = "Mutated"
	first[0].Items[0].ID = "mutated"

	second, _ := source.Load(ctx)
	if second[0].Title != "Fruits" || second[0].Items[0].ID != "pear" {
		t.Errorf("mutating a loaded document leaked into the source: %+v", second[0])
	}
}

func TestMemorySource_WatchSeesSwap(t *testing.T) {
	source, err := memory.NewSource(testDoc()...)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := source.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := source.Swap([]domain.Item{{ID: "solo"}}); err != nil {
		t.Fatalf("Swap: %v", err)
	}

	select {
	case reason := <-ch:
		if reason == "" {
			t.Error("expected a non-empty change reason")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for watch notification")
	}

	cancel()
	select {
	case _, open := <-ch:
		if open {
			// A buffered notification may still drain; the next receive must
			// observe the close.
			if _, open := <-ch; open {
				t.Error("watch channel should close after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for watch channel to close")
	}
}
