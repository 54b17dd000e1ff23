package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventOutlineReload EventType = "outline_reload"
	EventSearch        EventType = "search"
	EventScrollStep    EventType = "scroll_step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// OutlineEvent is emitted after a document load or reload.
type OutlineEvent struct {
	EventBase
	Entries  int           `json:"entries"`
	Roots    int           `json:"roots"`
	MaxDepth int           `json:"max_depth"`
	Elapsed  time.Duration `json:"elapsed"`
}

// SearchEvent is emitted after each search.
type SearchEvent struct {
	EventBase
	Query   string `json:"query"`
	Matches int    `json:"matches"`
}

// StepEvent is emitted after each kinetic scroll step.
type StepEvent struct {
	EventBase
	Offset   float64 `json:"offset"`
	Velocity float64 `json:"velocity"`
	Moving   bool    `json:"moving"`
}

// LifecycleHooks defines callbacks for engine observability. Any hook may
// be nil. Hooks run synchronously on the calling goroutine; keep them fast.
type LifecycleHooks struct {
	OnReload func(context.Context, *OutlineEvent)
	OnSearch func(context.Context, *SearchEvent)
	OnStep   func(context.Context, *StepEvent)
}

// Merge combines two hook sets; both callbacks fire when both are set.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnReload: mergeHook(h.OnReload, other.OnReload),
		OnSearch: mergeHook(h.OnSearch, other.OnSearch),
		OnStep:   mergeHook(h.OnStep, other.OnStep),
	}
}

func mergeHook[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, ev *E) {
		a(ctx, ev)
		b(ctx, ev)
	}
}
