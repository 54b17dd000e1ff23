package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/runner"
	"github.com/aretw0/arbor/pkg/session"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout outline UI).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

func logSessionStatus(logger *slog.Logger, sessionID string, quiet bool) {
	if sessionID == "" {
		return
	}
	logger.Info("Session Active", "session_id", sessionID)
	if !quiet {
		printSystemMessage("Session '%s' active.", sessionID)
	}
}

// createRunnerOptions prepares the functional options for the Runner.
// A non-nil handler wins over the mode-derived one; watch mode passes its
// shared handler here so every iteration reuses one stdin pump.
func createRunnerOptions(opts RunOptions, logger *slog.Logger, sessions *session.Manager, handler runner.IOHandler) []runner.Option {
	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
		runner.WithFolded(opts.Folded),
	}

	if opts.Height > 0 {
		runnerOpts = append(runnerOpts, runner.WithHeight(opts.Height))
	}

	if opts.SessionID != "" {
		runnerOpts = append(runnerOpts,
			runner.WithSessions(sessions),
			runner.WithSessionID(opts.SessionID),
		)
	}

	switch {
	case handler != nil:
		runnerOpts = append(runnerOpts, runner.WithHandler(handler))
	case opts.JSON:
		runnerOpts = append(runnerOpts, runner.WithHandler(runner.NewJSONHandler(os.Stdin, os.Stdout)))
	case !opts.Headless:
		runnerOpts = append(runnerOpts, runner.WithHandler(newStyledHandler()))
	}

	return runnerOpts
}

// newStyledHandler builds the interactive text handler with the TUI frame
// renderer and a markdown preview sized to the terminal.
func newStyledHandler() *runner.TextHandler {
	width := tui.TerminalWidth(os.Stdout, 80)
	return runner.NewTextHandler(os.Stdin, os.Stdout, runner.WithTextHandlerRenderer(
		tui.NewFrameRenderer(tui.WithMarkdown(tui.NewMarkdownRenderer(width))),
	))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnReload: func(ctx context.Context, e *domain.OutlineEvent) {
			logger.Debug("Outline Reloaded", "entries", e.Entries, "roots", e.Roots, "max_depth", e.MaxDepth, "elapsed", e.Elapsed)
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			logger.Debug("Search", "query", e.Query, "matches", e.Matches)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Scroll Step", "offset", e.Offset, "velocity", e.Velocity, "moving", e.Moving)
		},
	}
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		(errors.Unwrap(err) != nil && isInterrupted(errors.Unwrap(err)))
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

func logCompletion(name string, err error, debug, promptActive, quiet bool, sig os.Signal) {
	if quiet {
		return
	}
	if err == nil {
		printSystemMessage("Closed '%s'.", name)
		return
	}

	if isInterrupted(err) {
		switch {
		case sig == os.Interrupt:
			// Aesthetic: echo the keypress where the prompt would have shown it
			if debug || !promptActive {
				fmt.Printf("> [CTRL+C]\n")
			} else {
				fmt.Printf("[CTRL+C]\n")
			}
			printSystemMessage("Interrupted '%s'.", name)
		case sig != nil:
			fmt.Printf("\n")
			printSystemMessage("Terminated '%s'.", name)
		default:
			fmt.Printf("\n")
			printSystemMessage("Interrupted '%s'.", name)
		}
	}
}

// setupPersistence initializes the state store and session manager. A Redis
// URL switches both the store and the session lock to Redis. The store is
// wrapped by SecureStore either way, so encryption and redaction apply to
// every backend.
func setupPersistence(opts RunOptions, logger *slog.Logger) (ports.StateStore, *session.Manager, error) {
	if opts.RedisURL != "" {
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		client := backend.NewClient(redisOpts)
		store, err := SecureStore(redis.NewFromClient(client))
		if err != nil {
			return nil, nil, err
		}
		locker := redis.NewLocker(client, "arbor:")
		return store, session.NewManager(store, session.WithLocker(locker), session.WithLogger(logger)), nil
	}

	store, err := SecureStore(file.NewStore(""))
	if err != nil {
		return nil, nil, err
	}
	return store, session.NewManager(store, session.WithLogger(logger)), nil
}

// ResetSession clears the session data for the given ID.
func ResetSession(ctx context.Context, store ports.StateStore, sessionID string) {
	if sessionID == "" {
		return
	}
	_ = store.Delete(ctx, sessionID)
}
