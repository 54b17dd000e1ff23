package arbor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/motion"
	"github.com/aretw0/arbor/pkg/ports"
)

// Engine is the high-level entry point for the Arbor library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime    *runtime.Engine
	source     ports.TreeSource
	sourceOpts []file.Option
	motion     motion.Config
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	Name       string
}

var _ ports.Outliner = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSource injects a custom TreeSource, bypassing the default file adapter.
func WithSource(s ports.TreeSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMotion overrides the kinetic scrolling defaults (friction, rest
// threshold, smoothing).
func WithMotion(cfg motion.Config) Option {
	return func(e *Engine) {
		e.motion = cfg
	}
}

// WithIDKey configures the id key used by the default file source.
func WithIDKey(key string) Option {
	return func(e *Engine) {
		e.sourceOpts = append(e.sourceOpts, file.WithIDKey(key))
	}
}

// WithTitleKey configures the title key used by the default file source.
func WithTitleKey(key string) Option {
	return func(e *Engine) {
		e.sourceOpts = append(e.sourceOpts, file.WithTitleKey(key))
	}
}

// WithKindKey configures the kind key used by the default file source.
func WithKindKey(key string) Option {
	return func(e *Engine) {
		e.sourceOpts = append(e.sourceOpts, file.WithKindKey(key))
	}
}

// WithChildrenKey configures the children key used by the default file source.
func WithChildrenKey(key string) Option {
	return func(e *Engine) {
		e.sourceOpts = append(e.sourceOpts, file.WithChildrenKey(key))
	}
}

// WithDebounce configures the watch debounce window of the default file source.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		e.sourceOpts = append(e.sourceOpts, file.WithDebounce(d))
	}
}

// New initializes a new Arbor Engine.
// By default, it reads the nested document at the given path through the file
// adapter. If the WithSource option is provided, path can be empty and the
// file adapter is skipped.
//
// The outline is empty until the first call to Reload.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{motion: motion.DefaultConfig()}

	// Apply options first to check if a source is provided
	for _, opt := range opts {
		opt(eng)
	}

	// If no source was injected, initialize the default file adapter
	if eng.source == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom source is provided")
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		eng.Name = filepath.Base(absPath)
		eng.source = file.NewSource(absPath, eng.sourceOpts...)
	} else {
		// A custom source still benefits from a descriptive label.
		if path != "" {
			eng.Name = filepath.Base(path)
		}
	}

	// Ensure a logger exists before enriching it below.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Enrich logger with the outline name if available
	if eng.Name != "" {
		eng.logger = eng.logger.With("outline", eng.Name)
	}

	eng.runtime = runtime.NewEngine(
		eng.source,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithMotion(eng.motion),
	)

	return eng, nil
}

// Reload loads the document from the source and rebuilds the flattened
// outline. Call it once after New and again whenever the source changes.
func (e *Engine) Reload(ctx context.Context) error {
	return e.runtime.Reload(ctx)
}

// Outline returns the full flattened outline in preorder.
func (e *Engine) Outline(ctx context.Context) ([]domain.Entry, error) {
	return e.runtime.Outline(ctx)
}

// Roots returns the top-level entries of the outline.
func (e *Engine) Roots(ctx context.Context) ([]domain.Entry, error) {
	return e.runtime.Roots(ctx)
}

// Children returns the direct children of the given entry.
func (e *Engine) Children(ctx context.Context, entryID string) ([]domain.Entry, error) {
	return e.runtime.Children(ctx, entryID)
}

// Entry returns a single entry by id.
func (e *Engine) Entry(ctx context.Context, entryID string) (domain.Entry, error) {
	return e.runtime.Entry(ctx, entryID)
}

// Search filters the outline by a space-separated prefix query, keeping the
// ancestor chain of every match so results stay navigable.
func (e *Engine) Search(ctx context.Context, query string) ([]domain.Entry, error) {
	return e.runtime.Search(ctx, query)
}

// Step advances a kinetic scroll by elapsed milliseconds against the current
// outline bounds. It reports whether the scroll is still moving.
func (e *Engine) Step(scroll domain.Scroll, elapsed float64) (domain.Scroll, bool) {
	return e.runtime.Step(scroll, elapsed)
}

// Len returns the number of entries in the current outline.
func (e *Engine) Len() int {
	return e.runtime.Len()
}

// Inspect returns the nested document for visualization or export tools.
func (e *Engine) Inspect() ([]domain.Item, error) {
	return e.runtime.Inspect()
}

// Watch returns a channel that signals when the underlying document changes.
// Returns error if the source does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.source.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current source does not support watching")
}

// Source returns the underlying TreeSource used by the engine.
func (e *Engine) Source() ports.TreeSource {
	return e.source
}
