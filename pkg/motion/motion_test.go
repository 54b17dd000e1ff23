package motion

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		delta float64
		min   float64
		max   float64
		want  float64
		moved bool
	}{
		{"full consumption downward", 50, -10, 0, 100, 40, true},
		{"full consumption upward", 50, 10, 0, 100, 60, true},
		{"partial consumption clamps to min", 5, -20, 0, 100, 0, true},
		{"partial consumption clamps to max", 95, 20, 0, 100, 100, true},
		{"blocked at lower bound", 0, -10, 0, 100, 0, false},
		{"blocked at upper bound", 100, 10, 0, 100, 100, false},
		{"zero delta is blocked", 50, 0, 0, 100, 50, false},
		{"degenerate range blocks both directions", 0, 5, 0, 0, 0, false},
		{"negative range", -50, -60, -100, 0, -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := Resolve(tt.value, tt.delta, tt.min, tt.max)
			if moved != tt.moved {
				t.Fatalf("Resolve(%v, %v, %v, %v) moved = %v, want %v",
					tt.value, tt.delta, tt.min, tt.max, moved, tt.moved)
			}
			if got != tt.want {
				t.Errorf("Resolve(%v, %v, %v, %v) = %v, want %v",
					tt.value, tt.delta, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestResolveNaNDelta(t *testing.T) {
	got, moved := Resolve(50, math.NaN(), 0, 100)
	if moved {
		t.Fatal("NaN delta must not report movement")
	}
	if got != 50 {
		t.Errorf("NaN delta changed the value: got %v, want 50", got)
	}
}

func TestStepAdvancesValue(t *testing.T) {
	// No friction: one 16ms step at 1 unit/ms moves 16 units and keeps
	// the velocity intact.
	s := State{Value: 0, Min: -100, Max: 100, Velocity: 1}
	next, moving := Step(s, 16, Config{})
	if !moving {
		t.Fatal("expected motion to continue")
	}
	if next.Value != 16 {
		t.Errorf("value = %v, want 16", next.Value)
	}
	if next.Velocity != 1 {
		t.Errorf("velocity = %v, want 1", next.Velocity)
	}
	if next.Min != -100 || next.Max != 100 {
		t.Errorf("bounds changed: [%v, %v]", next.Min, next.Max)
	}
}

func TestStepStops(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		s    State
	}{
		{"velocity under rest threshold", State{Value: 10, Min: 0, Max: 100, Velocity: 0.005}},
		{"pushing against upper bound", State{Value: 100, Min: 0, Max: 100, Velocity: 2}},
		{"pushing against lower bound", State{Value: 0, Min: 0, Max: 100, Velocity: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moving := Step(tt.s, 16, cfg)
			if moving {
				t.Fatal("expected the motion to stop")
			}
			if got != tt.s {
				t.Errorf("stopped step mutated the state: got %+v, want %+v", got, tt.s)
			}
		})
	}
}

func TestStepDecayIsMonotonic(t *testing.T) {
	cfg := Config{Friction: 0.002, MinVelocity: 0.01}
	s := State{Value: 0, Min: -1e6, Max: 1e6, Velocity: 3}

	prev := math.Abs(s.Velocity)
	for i := 0; i < 50; i++ {
		next, moving := Step(s, 16, cfg)
		if !moving {
			t.Fatalf("step %d: motion stopped early at velocity %v", i, s.Velocity)
		}
		if abs := math.Abs(next.Velocity); abs >= prev {
			t.Fatalf("step %d: |velocity| %v did not decay below %v", i, abs, prev)
		} else {
			prev = abs
		}
		s = next
	}
}

func TestStepDecayIsFrameRateIndependent(t *testing.T) {
	// Exponential decay composes: two 8ms steps land on the same velocity
	// as a single 16ms step. Smoothing is off, it deliberately trades this
	// property for a longer tail.
	cfg := Config{Friction: 0.004, MinVelocity: 0.001}
	start := State{Value: 0, Min: -1e6, Max: 1e6, Velocity: 2}

	coarse, moving := Step(start, 16, cfg)
	if !moving {
		t.Fatal("coarse step stopped unexpectedly")
	}

	half, moving := Step(start, 8, cfg)
	if !moving {
		t.Fatal("first fine step stopped unexpectedly")
	}
	fine, moving := Step(half, 8, cfg)
	if !moving {
		t.Fatal("second fine step stopped unexpectedly")
	}

	if !almostEqual(coarse.Velocity, fine.Velocity, 1e-12) {
		t.Errorf("velocity after one 16ms step = %v, after two 8ms steps = %v",
			coarse.Velocity, fine.Velocity)
	}
}

func TestStepSmoothingBlendsVelocity(t *testing.T) {
	cfg := Config{Friction: 0.002, MinVelocity: 0.01, Smoothing: 0.2}
	s := State{Value: 0, Min: -1e6, Max: 1e6, Velocity: 1}

	next, moving := Step(s, 16, cfg)
	if !moving {
		t.Fatal("expected motion to continue")
	}

	decayed := math.Exp(-0.002 * 16)
	want := 1*(1-0.2) + decayed*0.2
	if !almostEqual(next.Velocity, want, 1e-12) {
		t.Errorf("velocity = %v, want %v", next.Velocity, want)
	}
	if next.Velocity <= decayed {
		t.Errorf("smoothed velocity %v should sit above the raw decay %v", next.Velocity, decayed)
	}
}

func TestStepGlideRunsToRest(t *testing.T) {
	cfg := DefaultConfig()
	s := State{Value: 0, Min: 0, Max: 500, Velocity: 1.5}

	steps := 0
	for {
		next, moving := Step(s, 16, cfg)
		if !moving {
			break
		}
		s = next
		steps++
		if steps > 10000 {
			t.Fatal("glide never came to rest")
		}
	}

	if steps == 0 {
		t.Fatal("expected at least one moving step")
	}
	if s.Value < 0 || s.Value > 500 {
		t.Errorf("glide settled out of bounds at %v", s.Value)
	}
}
