package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/session"
)

// DefaultHeight is the default number of outline rows per frame.
const DefaultHeight = 12

// DefaultFrameInterval is the default glide tick period (about 30fps).
const DefaultFrameInterval = 33 * time.Millisecond

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the Arbor engine to browse.
// This is required for the Runner to operate.
func WithEngine(engine *arbor.Engine) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithHandler configures a custom IOHandler.
func WithHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithSessions configures the session manager for persistence.
func WithSessions(sessions *session.Manager) Option {
	return func(r *Runner) {
		r.Sessions = sessions
	}
}

// WithSessionID sets the session ID for persistence context.
// This is required if WithSessions is used.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithHeadless sets the runner to headless mode.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithHeight sets the number of outline rows per frame.
func WithHeight(rows int) Option {
	return func(r *Runner) {
		if rows > 0 {
			r.Height = rows
		}
	}
}

// WithFolded renders the outline as a collapsed tree driven by the
// session's expanded set instead of the full flat projection.
func WithFolded(folded bool) Option {
	return func(r *Runner) {
		r.Folded = folded
	}
}

// WithFrameInterval sets the glide tick period.
func WithFrameInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.FrameInterval = d
		}
	}
}

// WithInitialState configures the initial state for the Runner.
// If not provided, the Runner loads or creates the session instead.
func WithInitialState(state *domain.State) Option {
	return func(r *Runner) {
		r.initialState = state
	}
}
