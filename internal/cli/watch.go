package cli

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/runner"
	"github.com/aretw0/arbor/pkg/session"
)

// RunWatch executes Arbor in development mode, reloading on file changes.
func RunWatch(opts RunOptions) error {
	logger := createLogger(opts.Debug)
	tui.PrintBanner()

	// Default session for watch mode to enable stateful hot reload by default.
	// Scoped by path hash to prevent collisions between documents.
	if opts.SessionID == "" {
		hash := md5.Sum([]byte(opts.DirPath))
		opts.SessionID = fmt.Sprintf("watch-%x", hash[:4])
	}

	store, sessions, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}

	if opts.Fresh {
		ResetSession(context.Background(), store, opts.SessionID)
	}

	logger.Info("Starting Watcher", "path", opts.DirPath, "session_id", opts.SessionID)
	printSystemMessage("Watcher at '%s' session.", opts.SessionID)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	// Reuse the same IO handler across iterations to avoid ghost stdin pumps.
	handler := newStyledHandler()

	for {
		if !runWatchIteration(sigCtx, opts, logger, sessions, handler) {
			break
		}
		logger.Info("Watcher restarting")
	}

	return nil
}

func runWatchIteration(parentCtx *SignalContext, opts RunOptions, logger *slog.Logger, sessions *session.Manager, handler runner.IOHandler) bool {
	// A child context lets reloads cancel the iteration without touching the
	// parent signal context.
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	// 1. Initialize Engine
	engine, err := createEngine(opts, logger)
	if err != nil {
		logger.Error("Engine initialization failed", "err", err)
		select {
		case <-parentCtx.Done():
			return false
		case <-time.After(2 * time.Second):
			return true
		}
	}

	// 2. Load the document. A broken save should not kill watch mode; wait
	// for the next change instead.
	if err := engine.Reload(ctx); err != nil {
		logger.Error("Outline load failed", "err", err)
		printSystemMessage("Load error: %v", err)

		watchCh, werr := engine.Watch(ctx)
		if werr != nil {
			logger.Error("Watch unavailable", "err", werr)
			return false
		}
		select {
		case <-parentCtx.Done():
			return false
		case _, ok := <-watchCh:
			return ok
		}
	}

	// 3. Setup Watcher & Runner
	watchCh, _ := engine.Watch(ctx)

	r := runner.NewRunner(append(
		createRunnerOptions(opts, logger, sessions, handler),
		runner.WithEngine(engine),
	)...)

	// 4. Start Watcher Routine
	reloadCh := make(chan struct{}, 1)
	go func() {
		if watchCh == nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watchCh:
			if ok {
				logger.Info("Change detected, triggering reload", "event", event)
				if !opts.Debug {
					fmt.Printf("\n")
				}
				printSystemMessage("Change detected in '%s'.", event)
				// Delay slightly to ensure the file system is stable
				time.Sleep(100 * time.Millisecond)
				reloadCh <- struct{}{}
				cancel()
			}
		}
	}()

	// 5. Run
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	doneCh := make(chan error, 1)
	go func() {
		doneCh <- r.Run(runCtx)
	}()

	select {
	case <-parentCtx.Done():
		runCancel() // Stop the runner
		<-doneCh    // Wait for it to exit
		logCompletion(engine.Name, context.Canceled, opts.Debug, true, false, parentCtx.Signal())
		logger.Info("Stopping watcher (signal received)", "signal", parentCtx.Signal())
		return false
	case <-reloadCh:
		runCancel() // Stop the runner
		<-doneCh    // Wait for it to exit
		return true // Continue to next iteration
	case runErr := <-doneCh:
		return handleRunCompletion(runCtx, engine.Name, runErr, watchCh, parentCtx, logger, opts.Debug)
	}
}

func handleRunCompletion(ctx context.Context, name string, err error, watchCh <-chan string, parentCtx *SignalContext, logger *slog.Logger, debug bool) bool {
	if err != nil {
		// If the context was cancelled, it's a reload request
		if errors.Is(err, context.Canceled) {
			return true
		}
		if isInterrupted(err) {
			return false // User stop
		}
		logger.Error("Runtime error", "err", err)
	}

	if watchCh != nil {
		if err == nil {
			logCompletion(name, nil, debug, false, false, nil)
			printSystemMessage("Waiting for changes...")
		}
		logger.Info("Session finished, waiting for changes")
		select {
		case <-parentCtx.Done():
			logCompletion(name, context.Canceled, debug, false, false, parentCtx.Signal())
			logger.Info("Stopping watcher (signal received)")
			return false
		case <-ctx.Done():
			return true
		}
	}
	return true
}
