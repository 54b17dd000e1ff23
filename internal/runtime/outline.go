package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/flatten"
)

// Outline returns the full flattened outline in preorder.
func (e *Engine) Outline(ctx context.Context) ([]domain.Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.EntriesFromNodes(e.nodes), nil
}

// Roots returns the top-level entries in document order.
func (e *Engine) Roots(ctx context.Context) ([]domain.Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.EntriesFromNodes(flatten.Roots(e.nodes)), nil
}

// Children returns the direct children of an entry, never deeper
// descendants. Unknown ids are an error; a leaf yields an empty list.
func (e *Engine) Children(ctx context.Context, entryID string) ([]domain.Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, ok := e.index[entryID]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrEntryNotFound, entryID)
	}
	return domain.EntriesFromNodes(flatten.Children(e.nodes, entryID)), nil
}

// Entry looks up one entry by id.
func (e *Engine) Entry(ctx context.Context, entryID string) (domain.Entry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i, ok := e.index[entryID]
	if !ok {
		return domain.Entry{}, fmt.Errorf("%w: %q", domain.ErrEntryNotFound, entryID)
	}
	return domain.EntryFromNode(e.nodes[i]), nil
}

// Search filters the outline by a prefix-word query, keeping ancestor
// context for nested matches and whole subtrees for matching roots. An
// empty query returns the unfiltered outline and emits no search event.
func (e *Engine) Search(ctx context.Context, query string) ([]domain.Entry, error) {
	e.mu.RLock()
	nodes := e.nodes
	e.mu.RUnlock()

	found := flatten.Search(nodes, domain.ItemAccessor().Text, query)
	if strings.TrimSpace(query) != "" {
		e.emitSearch(ctx, query, len(found))
	}
	return domain.EntriesFromNodes(found), nil
}
