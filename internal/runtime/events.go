package runtime

import (
	"context"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
)

func (e *Engine) emitReload(ctx context.Context, entries, roots, maxDepth int, elapsed time.Duration) {
	if e.hooks.OnReload == nil {
		return
	}
	e.hooks.OnReload(ctx, &domain.OutlineEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventOutlineReload},
		Entries:   entries,
		Roots:     roots,
		MaxDepth:  maxDepth,
		Elapsed:   elapsed,
	})
}

func (e *Engine) emitSearch(ctx context.Context, query string, matches int) {
	if e.hooks.OnSearch == nil {
		return
	}
	e.hooks.OnSearch(ctx, &domain.SearchEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSearch},
		Query:     query,
		Matches:   matches,
	})
}

func (e *Engine) emitStep(ctx context.Context, scroll domain.Scroll, moving bool) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventScrollStep},
		Offset:    scroll.Offset,
		Velocity:  scroll.Velocity,
		Moving:    moving,
	})
}
