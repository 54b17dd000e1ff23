package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/motion"
)

func loadedEngine(t *testing.T, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	engine := runtime.NewEngine(orchardSource(t), opts...)
	if err := engine.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return engine
}

func TestEngine_StepGlidesToBound(t *testing.T) {
	engine := loadedEngine(t)

	// 5 rows make the bounds [0, 4].
	scroll := domain.Scroll{Velocity: 0.05}
	frames := 0
	for {
		var moving bool
		scroll, moving = engine.Step(scroll, 16)
		if !moving {
			break
		}
		frames++
		if frames > 1000 {
			t.Fatal("glide never stopped")
		}
	}

	if scroll.Offset != 4 {
		t.Errorf("glide should land exactly on the bound, got offset %v", scroll.Offset)
	}
	if scroll.Velocity != 0 {
		t.Errorf("stopped glide should settle with zero velocity, got %v", scroll.Velocity)
	}
	if scroll.Min != 0 || scroll.Max != 4 {
		t.Errorf("bounds = [%v, %v], want [0, 4]", scroll.Min, scroll.Max)
	}
	if frames == 0 {
		t.Error("expected at least one moving frame")
	}
}

func TestEngine_StepBlockedAtBound(t *testing.T) {
	engine := loadedEngine(t)

	next, moving := engine.Step(domain.Scroll{Offset: 4, Velocity: 0.05}, 16)
	if moving {
		t.Errorf("expected a blocked step at the max bound, got %+v", next)
	}
	if next.Offset != 4 || next.Velocity != 0 {
		t.Errorf("blocked step should settle in place, got %+v", next)
	}

	next, moving = engine.Step(domain.Scroll{Offset: 0, Velocity: -0.05}, 16)
	if moving || next.Offset != 0 {
		t.Errorf("expected a blocked step at the min bound, got %+v", next)
	}
}

func TestEngine_StepClampsAfterShrink(t *testing.T) {
	engine := loadedEngine(t)

	// A session persisted against a longer outline may carry an offset
	// beyond the current bounds.
	next, moving := engine.Step(domain.Scroll{Offset: 10, Velocity: 0.05}, 16)
	if moving {
		t.Errorf("expected a blocked step after clamping, got %+v", next)
	}
	if next.Offset != 4 {
		t.Errorf("offset should clamp to the bound, got %v", next.Offset)
	}

	// Gliding back inward from the clamp still works.
	next, moving = engine.Step(domain.Scroll{Offset: 10, Velocity: -0.05}, 16)
	if !moving {
		t.Fatalf("expected inward motion after clamping, got %+v", next)
	}
	if next.Offset >= 4 {
		t.Errorf("offset should move inward from the clamp, got %v", next.Offset)
	}
}

func TestEngine_StepEmptyOutline(t *testing.T) {
	source, err := memory.NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	engine := runtime.NewEngine(source)
	if err := engine.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	next, moving := engine.Step(domain.Scroll{Velocity: 0.05}, 16)
	if moving {
		t.Errorf("an empty outline has nowhere to scroll, got %+v", next)
	}
	if next.Min != 0 || next.Max != 0 {
		t.Errorf("bounds = [%v, %v], want [0, 0]", next.Min, next.Max)
	}
}

func TestEngine_WithMotion(t *testing.T) {
	engine := loadedEngine(t, runtime.WithMotion(motion.Config{
		Friction:    0.002,
		MinVelocity: 0.2,
	}))

	// Under the raised rest threshold this velocity counts as stopped.
	_, moving := engine.Step(domain.Scroll{Velocity: 0.1}, 16)
	if moving {
		t.Error("expected the raised rest threshold to stop the glide")
	}
}
