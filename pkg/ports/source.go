package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// TreeSource defines how the engine retrieves a nested outline document.
// This allows the storage layer (FS, Memory, remote APIs) to be decoupled.
type TreeSource interface {
	// Load retrieves the full nested document. Implementations should
	// return the tree in source order, since flattening preserves it.
	Load(ctx context.Context) ([]domain.Item, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that receives a short description of each
	// change (usually the path that was touched). Receiving a value means a
	// reload is required; the channel closes when ctx is canceled.
	Watch(ctx context.Context) (<-chan string, error)
}
