package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	// Capture events
	var reloads []*domain.OutlineEvent
	var searches []*domain.SearchEvent
	var steps []*domain.StepEvent

	hooks := domain.LifecycleHooks{
		OnReload: func(ctx context.Context, e *domain.OutlineEvent) {
			reloads = append(reloads, e)
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			searches = append(searches, e)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			steps = append(steps, e)
		},
	}

	engine := runtime.NewEngine(orchardSource(t), runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	if err := engine.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if len(reloads) != 1 {
		t.Fatalf("expected 1 reload event, got %d", len(reloads))
	}
	ev := reloads[0]
	if ev.Entries != 5 || ev.Roots != 2 || ev.MaxDepth != 2 {
		t.Errorf("reload event = %+v", ev)
	}
	if ev.Type != domain.EventOutlineReload || ev.Timestamp.IsZero() {
		t.Errorf("reload event base = %+v", ev.EventBase)
	}

	// Search events carry the query and the result size.
	if _, err := engine.Search(ctx, "lim"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(searches) != 1 || searches[0].Query != "lim" || searches[0].Matches != 3 {
		t.Errorf("search events = %+v", searches)
	}

	// An empty query is not a search.
	if _, err := engine.Search(ctx, ""); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(searches) != 1 {
		t.Errorf("empty query should not emit an event, got %d events", len(searches))
	}

	// Step events fire for moving and stopped frames alike.
	next, moving := engine.Step(domain.Scroll{Velocity: 0.05}, 16)
	if !moving {
		t.Fatalf("expected a moving step, got %+v", next)
	}
	engine.Step(domain.Scroll{Offset: next.Offset}, 16)

	if len(steps) != 2 {
		t.Fatalf("expected 2 step events, got %d", len(steps))
	}
	if !steps[0].Moving || steps[0].Offset <= 0 {
		t.Errorf("first step event = %+v", steps[0])
	}
	if steps[1].Moving {
		t.Errorf("second step event should be stopped, got %+v", steps[1])
	}
}

func TestEngine_MergedHooksBothFire(t *testing.T) {
	var first, second int
	a := domain.LifecycleHooks{
		OnReload: func(ctx context.Context, e *domain.OutlineEvent) { first++ },
	}
	b := domain.LifecycleHooks{
		OnReload: func(ctx context.Context, e *domain.OutlineEvent) { second++ },
	}

	engine := runtime.NewEngine(orchardSource(t), runtime.WithLifecycleHooks(a.Merge(b)))
	if err := engine.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if first != 1 || second != 1 {
		t.Errorf("merged hooks fired %d/%d times, want 1/1", first, second)
	}
}
