package runner

import (
	"context"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Render presents one frame of the browsing session to the user.
	Render(ctx context.Context, frame Frame) error

	// Input reads the next command line from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (status updates,
	// recoverable errors, help). This is distinct from frame rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// FrameRenderer transforms a frame into its final textual form before output.
// This allows for TUI rendering (styled rows, highlights) without coupling
// the core package to a styling library.
type FrameRenderer func(Frame) (string, error)
