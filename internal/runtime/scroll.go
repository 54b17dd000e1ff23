package runtime

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/motion"
)

// Step advances a kinetic scroll by elapsed milliseconds against the
// current outline bounds. Bounds are always derived here, [0, rows-1] in
// row units; whatever Min/Max the caller sends is overwritten. The second
// return is false once the glide has stopped, at which point the returned
// velocity is zeroed so persisted sessions settle cleanly.
func (e *Engine) Step(scroll domain.Scroll, elapsed float64) (domain.Scroll, bool) {
	scroll.Min, scroll.Max = e.bounds()

	// A document shrink can leave a persisted offset out of range.
	if scroll.Offset > scroll.Max {
		scroll.Offset = scroll.Max
	}
	if scroll.Offset < scroll.Min {
		scroll.Offset = scroll.Min
	}

	st, moving := motion.Step(motion.State{
		Value:    scroll.Offset,
		Min:      scroll.Min,
		Max:      scroll.Max,
		Velocity: scroll.Velocity,
	}, elapsed, e.motion)

	next := scroll
	next.Offset = st.Value
	next.Velocity = st.Velocity
	if !moving {
		next.Velocity = 0
	}

	e.emitStep(context.Background(), next, moving)
	return next, moving
}

func (e *Engine) bounds() (float64, float64) {
	e.mu.RLock()
	rows := len(e.nodes)
	e.mu.RUnlock()

	if rows == 0 {
		return 0, 0
	}
	return 0, float64(rows - 1)
}
