package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// Outliner defines the interface for outline engines that keep no session
// state of their own. This is the primary interface used by adapters (e.g.,
// HTTP, MCP) that manage session state externally or per-request.
type Outliner interface {
	// Outline returns the full flattened document in preorder.
	Outline(ctx context.Context) ([]domain.Entry, error)

	// Roots returns the top-level entries only.
	Roots(ctx context.Context) ([]domain.Entry, error)

	// Children returns the direct children of the given entry.
	// Returns domain.ErrEntryNotFound if the entry does not exist.
	Children(ctx context.Context, entryID string) ([]domain.Entry, error)

	// Search filters the outline, pulling in the ancestor context of each
	// match. An empty query returns the full outline.
	Search(ctx context.Context, query string) ([]domain.Entry, error)

	// Step advances a kinetic scroll by elapsed milliseconds. The boolean
	// reports whether the glide is still in motion.
	Step(scroll domain.Scroll, elapsed float64) (domain.Scroll, bool)

	// Reload re-reads the document from its source and swaps the outline.
	Reload(ctx context.Context) error

	// Inspect returns the nested document for introspection and
	// visualization tools (e.g. 'arbor graph').
	Inspect() ([]domain.Item, error)
}
