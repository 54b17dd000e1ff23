// Package motion implements the kinetic model behind arbor's scrolling: a
// bounded delta resolver and a frame-rate independent inertia step with
// exponential friction.
//
// The package holds no state and starts no goroutines. Callers own the loop:
// feed the State returned by Step into the next call until it reports a stop.
package motion

import "math"

// Config tunes the inertia decay. The zero value disables friction and
// smoothing; DefaultConfig returns the tuning used by the CLI browser.
type Config struct {
	// Friction is the exponential decay rate, in 1/ms.
	Friction float64

	// MinVelocity is the rest threshold in units per millisecond.
	// Velocities below it (in absolute value) count as stopped.
	MinVelocity float64

	// Smoothing blends the decayed velocity with the previous one.
	// 0 disables the blend, values toward 1 stretch the glide out.
	Smoothing float64
}

// DefaultConfig returns the standard scroll tuning.
func DefaultConfig() Config {
	return Config{
		Friction:    0.002, // 1/ms
		MinVelocity: 0.01,  // units/ms
		Smoothing:   0.2,
	}
}

// State is a kinetic value between two frames. Velocity is in units per
// millisecond. The package never retains a State; callers thread it through
// successive Step calls.
type State struct {
	Value    float64
	Min      float64
	Max      float64
	Velocity float64
}

// Resolve applies delta to value inside [min, max], consuming as much of the
// delta as the bounds allow. An overshooting delta lands exactly on the
// bound. The second return is false when no movement in the requested
// direction is possible at all: zero delta, or value already sitting on the
// bound the delta pushes against. Hosts use that signal to hand the rest of
// a gesture to an outer scroller instead of overscrolling.
//
// Resolve assumes min <= value <= max and never clamps a value that is
// already outside the bounds.
func Resolve(value, delta, min, max float64) (float64, bool) {
	if delta == 0 {
		return value, false
	}
	if delta < 0 {
		if value <= min {
			return value, false
		}
		return math.Max(value+delta, min), true
	}
	if delta > 0 {
		if value >= max {
			return value, false
		}
		return math.Min(value+delta, max), true
	}
	// A NaN delta compares false against everything and ends up here.
	return value, false
}

// Step advances a kinetic state by dt milliseconds. It moves Value by
// Velocity*dt inside the bounds, then decays the velocity by
// exp(-Friction*dt) with an optional blend against the previous velocity.
// The second return is false once the motion has stopped, either because
// the velocity fell under cfg.MinVelocity or because the value hit a bound.
// Step never bounces; the caller decides how a stop settles.
//
// The continuous decay makes the trajectory independent of the frame rate:
// two 8ms steps decay a velocity exactly as far as one 16ms step.
func Step(s State, dt float64, cfg Config) (State, bool) {
	if math.Abs(s.Velocity) < cfg.MinVelocity {
		return s, false
	}

	value, ok := Resolve(s.Value, s.Velocity*dt, s.Min, s.Max)
	if !ok {
		return s, false
	}

	decayed := s.Velocity * math.Exp(-cfg.Friction*dt)
	next := decayed
	if cfg.Smoothing > 0 {
		next = s.Velocity*(1-cfg.Smoothing) + decayed*cfg.Smoothing
	}

	// Don't emit a dying velocity; report the stop now so hosts can settle.
	if math.Abs(next) < cfg.MinVelocity {
		return s, false
	}

	return State{Value: value, Min: s.Min, Max: s.Max, Velocity: next}, true
}
