package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/runner"
)

// RunSession executes a single interactive browsing session.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	if !opts.JSON && !opts.Headless {
		tui.PrintBanner()
	}

	engine, err := createEngine(opts, logger)
	if err != nil {
		return err
	}

	// Setup Persistence
	store, sessions, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}

	// Setup signal handling
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if opts.Fresh {
		ResetSession(sigCtx, store, opts.SessionID)
	}

	if err := engine.Reload(sigCtx); err != nil {
		return fmt.Errorf("failed to load outline: %w", err)
	}

	logSessionStatus(logger, opts.SessionID, opts.JSON || opts.Headless)

	r := runner.NewRunner(append(
		createRunnerOptions(opts, logger, sessions, nil),
		runner.WithEngine(engine),
	)...)

	runErr := r.Run(sigCtx)

	// A signal exit returns nil from the runner; surface it for the
	// completion message, handleExecutionError maps it back to exit 0.
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	logCompletion(engine.Name, runErr, opts.Debug, true, opts.JSON || opts.Headless, sigCtx.Signal())

	return handleExecutionError(runErr)
}
