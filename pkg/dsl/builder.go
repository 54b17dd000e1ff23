package dsl

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder manages the document construction.
type Builder struct {
	roots []*ItemBuilder
	index map[string]*ItemBuilder
}

// New creates a new document builder.
func New() *Builder {
	return &Builder{
		index: make(map[string]*ItemBuilder),
	}
}

// Add creates a new root item in the document.
// If the root already exists, it returns the existing builder.
func (b *Builder) Add(id string) *ItemBuilder {
	if ib, ok := b.index[id]; ok {
		return ib
	}
	ib := &ItemBuilder{
		item: domain.Item{ID: id},
	}
	b.roots = append(b.roots, ib)
	b.index[id] = ib
	return ib
}

// Items materializes the nested item tree in insertion order.
func (b *Builder) Items() []domain.Item {
	items := make([]domain.Item, 0, len(b.roots))
	for _, ib := range b.roots {
		items = append(items, ib.materialize())
	}
	return items
}

// Build compiles the document into a memory Source.
func (b *Builder) Build() (*memory.Source, error) {
	source, err := memory.NewSource(b.Items()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory source: %w", err)
	}

	return source, nil
}
