package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/session"
)

// maxGlideFrames caps a headless glide so a misconfigured motion model can
// never spin the loop forever.
const maxGlideFrames = 10000

// Runner handles the browsing loop over an Arbor engine using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Sessions is the persistence layer for durable browsing.
	// If nil, sessions are ephemeral.
	Sessions *session.Manager

	// SessionID keys the session in the store. Empty disables persistence.
	SessionID string

	// Headless suppresses the banner and resolves glides synchronously with
	// a fixed timestep instead of a wall-clock ticker.
	Headless bool

	// Height is the number of outline rows per frame.
	Height int

	// Folded renders the outline as a collapsed tree driven by the
	// session's expanded set.
	Folded bool

	// FrameInterval is the glide tick period.
	FrameInterval time.Duration

	engine       *arbor.Engine
	initialState *domain.State
}

// NewRunner creates a Runner with the given options applied over defaults.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Height:        DefaultHeight,
		FrameInterval: DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the browsing loop until the user quits, input ends, or an
// unrecoverable error occurs. An OS interrupt while waiting for input saves
// the session and returns nil; an interrupt during a glide only stops the
// glide.
func (r *Runner) Run(ctx context.Context) error {
	if r.engine == nil {
		return fmt.Errorf("runner requires an engine (use WithEngine)")
	}

	handler := r.resolveHandler()

	state, resumed, err := r.resolveInitialState(ctx)
	if err != nil {
		return err
	}

	signals := NewSignalManager(ctx)
	defer signals.Stop()

	if resumed {
		if err := handler.SystemOutput(ctx, fmt.Sprintf("Resumed session %s", state.SessionID)); err != nil {
			return err
		}
	}

	for {
		currentCtx := signals.Context()

		frame, err := r.buildFrame(currentCtx, state)
		if err != nil {
			return fmt.Errorf("frame error: %w", err)
		}
		if err := handler.Render(currentCtx, frame); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		val, err := handler.Input(currentCtx)
		if err != nil {
			// Check if error is due to signal cancellation
			signals.CheckRace()

			if currentCtx.Err() != nil {
				r.Logger.Debug("Runner input: context cancelled", "err", currentCtx.Err())
				// The signal context is gone; persist with a fresh one.
				if saveErr := r.saveState(context.Background(), state); saveErr != nil {
					return saveErr
				}
				return nil
			}
			if err == io.EOF {
				break
			}
			return fmt.Errorf("input error: %w", err)
		}

		cmd, err := ParseCommand(val)
		if err != nil {
			// Grammar errors are user feedback, not failures.
			if err := handler.SystemOutput(currentCtx, err.Error()); err != nil {
				return err
			}
			continue
		}

		quit, err := r.apply(currentCtx, signals, handler, state, cmd)
		if err != nil {
			return err
		}

		// A glide may have re-armed the signal context, so fetch it fresh.
		if err := r.saveState(signals.Context(), state); err != nil {
			return fmt.Errorf("critical persistence error: %w", err)
		}

		if quit {
			break
		}
	}

	return nil
}

// apply executes one parsed command against the session state.
// It reports whether the session should end.
func (r *Runner) apply(ctx context.Context, signals *SignalManager, handler IOHandler, state *domain.State, cmd Command) (bool, error) {
	switch cmd.Kind {
	case CommandNoop:
		return false, nil

	case CommandQuit:
		return true, nil

	case CommandHelp:
		return false, handler.SystemOutput(ctx, HelpText)

	case CommandQuery:
		state.Query = cmd.Query
		state.Scroll.Offset = 0
		state.Scroll.Velocity = 0
		return false, nil

	case CommandClear:
		state.Query = ""
		return false, nil

	case CommandMove:
		return false, r.moveCursor(ctx, state, cmd.Delta)

	case CommandTop:
		return false, r.cursorToEdge(ctx, state, true)

	case CommandBottom:
		return false, r.cursorToEdge(ctx, state, false)

	case CommandGoto:
		if err := r.focus(ctx, state, cmd.TargetID); err != nil {
			return false, handler.SystemOutput(ctx, err.Error())
		}
		return false, nil

	case CommandChildren:
		return false, r.listChildren(ctx, handler, state)

	case CommandOpen:
		id := cmd.TargetID
		if id == "" {
			id = state.CursorID
		}
		if id == "" {
			return false, handler.SystemOutput(ctx, "nothing focused")
		}
		if state.Expanded == nil {
			state.Expanded = make(map[string]bool)
		}
		state.Expanded[id] = true
		return false, nil

	case CommandClose:
		id := cmd.TargetID
		if id == "" {
			id = state.CursorID
		}
		delete(state.Expanded, id)
		return false, nil

	case CommandFling:
		return false, r.glide(ctx, signals, handler, state, cmd.Velocity)
	}

	return false, nil
}

// glide drives the kinetic scroll with a wall-clock ticker until the motion
// model reports a stop, rendering a frame per tick. Headless mode resolves
// the glide synchronously with a fixed timestep instead.
func (r *Runner) glide(ctx context.Context, signals *SignalManager, handler IOHandler, state *domain.State, velocity float64) error {
	// Rows per second reads naturally on the command line; the motion model
	// works in rows per millisecond.
	state.Scroll.Velocity = velocity / 1000.0

	if r.Headless {
		dt := float64(r.frameInterval().Milliseconds())
		for i := 0; i < maxGlideFrames; i++ {
			next, moving := r.engine.Step(state.Scroll, dt)
			state.Scroll = next
			if !moving {
				return nil
			}
		}
		state.Scroll.Velocity = 0
		return nil
	}

	ticker := time.NewTicker(r.frameInterval())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			// A signal stops the glide, not the session.
			state.Scroll.Velocity = 0
			signals.Reset()
			return nil
		case now := <-ticker.C:
			dt := float64(now.Sub(last).Microseconds()) / 1000.0
			last = now

			next, moving := r.engine.Step(state.Scroll, dt)
			state.Scroll = next

			frame, err := r.buildFrame(ctx, state)
			if err != nil {
				return err
			}
			if err := handler.Render(ctx, frame); err != nil {
				return err
			}

			if !moving {
				return nil
			}
		}
	}
}

func (r *Runner) moveCursor(ctx context.Context, state *domain.State, delta int) error {
	visible, err := r.visibleEntries(ctx, state)
	if err != nil {
		return err
	}
	if len(visible) == 0 {
		return nil
	}

	idx := indexOf(visible, state.CursorID)
	if idx < 0 {
		// No focus yet: land on the first or last row depending on direction.
		if delta >= 0 {
			idx = 0
		} else {
			idx = len(visible) - 1
		}
	} else {
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx >= len(visible) {
			idx = len(visible) - 1
		}
	}

	state.Visit(visible[idx].ID)
	r.followCursor(state, idx)
	return nil
}

func (r *Runner) cursorToEdge(ctx context.Context, state *domain.State, top bool) error {
	visible, err := r.visibleEntries(ctx, state)
	if err != nil {
		return err
	}
	if len(visible) == 0 {
		return nil
	}

	idx := 0
	if !top {
		idx = len(visible) - 1
	}
	state.Visit(visible[idx].ID)
	r.followCursor(state, idx)
	return nil
}

func (r *Runner) focus(ctx context.Context, state *domain.State, id string) error {
	entry, err := r.engine.Entry(ctx, id)
	if err != nil {
		return err
	}
	state.Visit(entry.ID)

	// Reveal the target in folded mode by expanding its ancestors.
	if r.Folded {
		if state.Expanded == nil {
			state.Expanded = make(map[string]bool)
		}
		for cur := entry; cur.HasParent; {
			state.Expanded[cur.ParentID] = true
			parent, err := r.engine.Entry(ctx, cur.ParentID)
			if err != nil {
				break
			}
			cur = parent
		}
	}

	visible, err := r.visibleEntries(ctx, state)
	if err != nil {
		return err
	}
	if idx := indexOf(visible, entry.ID); idx >= 0 {
		r.followCursor(state, idx)
	}
	return nil
}

func (r *Runner) listChildren(ctx context.Context, handler IOHandler, state *domain.State) error {
	if state.CursorID == "" {
		return handler.SystemOutput(ctx, "nothing focused")
	}
	kids, err := r.engine.Children(ctx, state.CursorID)
	if err != nil {
		return handler.SystemOutput(ctx, err.Error())
	}
	if len(kids) == 0 {
		return handler.SystemOutput(ctx, fmt.Sprintf("%s has no children", state.CursorID))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "children of %s:", state.CursorID)
	for _, k := range kids {
		title := k.Title
		if title == "" {
			title = k.ID
		}
		fmt.Fprintf(&b, "\n  %s", title)
		if k.ChildCount > 0 {
			fmt.Fprintf(&b, " [%d]", k.ChildCount)
		}
	}
	return handler.SystemOutput(ctx, b.String())
}

// buildFrame assembles the visible window of the session's outline view.
func (r *Runner) buildFrame(ctx context.Context, state *domain.State) (Frame, error) {
	visible, err := r.visibleEntries(ctx, state)
	if err != nil {
		return Frame{}, err
	}

	total := len(visible)
	start, end := clampWindow(int(math.Round(state.Scroll.Offset)), total, r.height())

	frame := Frame{
		Entries: visible[start:end],
		Offset:  start,
		Total:   total,
		Cursor:  -1,
		Query:   state.Query,
	}
	for i, e := range frame.Entries {
		if e.ID == state.CursorID {
			frame.Cursor = i
			break
		}
	}

	if total > 0 {
		frame.Status = fmt.Sprintf("rows %d-%d of %d", start+1, end, total)
	} else {
		frame.Status = "empty outline"
	}
	if state.SessionID != "" {
		frame.Status += " | session " + state.SessionID
	}

	return frame, nil
}

// visibleEntries returns the filtered outline, folded when folding applies.
// Folding only shapes the unfiltered view; search results always carry their
// full ancestor context.
func (r *Runner) visibleEntries(ctx context.Context, state *domain.State) ([]domain.Entry, error) {
	entries, err := r.engine.Search(ctx, state.Query)
	if err != nil {
		return nil, err
	}
	if r.Folded && strings.TrimSpace(state.Query) == "" {
		entries = foldEntries(entries, state.Expanded)
	}
	return entries, nil
}

// followCursor scrolls the window just enough to keep the focused row visible.
func (r *Runner) followCursor(state *domain.State, idx int) {
	state.Scroll.Velocity = 0
	height := r.height()
	top := int(math.Round(state.Scroll.Offset))
	if idx < top {
		state.Scroll.Offset = float64(idx)
	} else if idx >= top+height {
		state.Scroll.Offset = float64(idx - height + 1)
	}
}

func (r *Runner) saveState(ctx context.Context, state *domain.State) error {
	if r.Sessions == nil || state.SessionID == "" {
		return nil
	}
	if err := r.Sessions.Save(ctx, state.SessionID, state); err != nil {
		return err
	}
	r.Logger.Debug("state saved", "session_id", state.SessionID, "cursor_id", state.CursorID)
	return nil
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	th := NewTextHandler(os.Stdin, os.Stdout)
	if !r.Headless {
		fmt.Fprintln(th.Writer, "--- Arbor Outline Browser ---")
	}
	// Memoize to prevent creating new pumps on subsequent Run() calls
	r.Handler = th
	return th
}

func (r *Runner) resolveInitialState(ctx context.Context) (*domain.State, bool, error) {
	if r.initialState != nil {
		return r.initialState, false, nil
	}

	if r.Sessions != nil && r.SessionID != "" {
		state, err := r.Sessions.Load(ctx, r.SessionID)
		if err == nil {
			return state, true, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, false, fmt.Errorf("failed to load session %s: %w", r.SessionID, err)
		}
		state, err = r.Sessions.LoadOrCreate(ctx, r.SessionID)
		if err != nil {
			return nil, false, err
		}
		return state, false, nil
	}

	return domain.NewState(r.SessionID), false, nil
}

func (r *Runner) height() int {
	if r.Height > 0 {
		return r.Height
	}
	return DefaultHeight
}

func (r *Runner) frameInterval() time.Duration {
	if r.FrameInterval > 0 {
		return r.FrameInterval
	}
	return DefaultFrameInterval
}

func indexOf(entries []domain.Entry, id string) int {
	if id == "" {
		return -1
	}
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
