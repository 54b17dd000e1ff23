package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/flatten"
	"github.com/aretw0/arbor/pkg/motion"
	"github.com/aretw0/arbor/pkg/ports"
)

// Engine is the core outline engine. It keeps the flattened projection of
// one document and serves reads against that snapshot; only Reload touches
// the source. All methods are safe for concurrent use.
type Engine struct {
	source ports.TreeSource
	motion motion.Config
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	mu    sync.RWMutex
	items []domain.Item
	nodes []flatten.Node[domain.Item, string]
	index map[string]int // entry id -> position in nodes
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMotion overrides the scroll inertia tuning.
func WithMotion(cfg motion.Config) EngineOption {
	return func(e *Engine) {
		e.motion = cfg
	}
}

// NewEngine creates a new engine over the given source. The outline is
// empty until the first Reload.
func NewEngine(source ports.TreeSource, opts ...EngineOption) *Engine {
	e := &Engine{
		source: source,
		motion: motion.DefaultConfig(),
		logger: logging.NewNop(),
		index:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reload pulls the document from the source, validates it and swaps in a
// fresh flattened snapshot.
func (e *Engine) Reload(ctx context.Context) error {
	items, err := e.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if err := domain.ValidateItems(items); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	started := time.Now()
	nodes := flatten.Tree(items, domain.ItemAccessor())
	elapsed := time.Since(started)

	index := make(map[string]int, len(nodes))
	maxDepth, roots := 0, 0
	for i, n := range nodes {
		index[n.ID] = i
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
		if !n.HasParent {
			roots++
		}
	}

	e.mu.Lock()
	e.items = items
	e.nodes = nodes
	e.index = index
	e.mu.Unlock()

	e.logger.Debug("outline reloaded",
		"entries", len(nodes),
		"roots", roots,
		"max_depth", maxDepth,
	)
	e.emitReload(ctx, len(nodes), roots, maxDepth, elapsed)
	return nil
}

// Inspect returns the nested document behind the current snapshot, for
// export and visualization tools. Callers must not modify the result.
func (e *Engine) Inspect() ([]domain.Item, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.items, nil
}

// Len reports the number of entries in the current outline.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.nodes)
}
