package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewMarkdownRenderer returns a function that renders markdown using glamour.
// It detects light/dark backgrounds automatically; width > 0 wraps the output.
func NewMarkdownRenderer(width int) func(string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		// Style resolution failed; pass markdown through untouched.
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// TerminalWidth reports the column width of f, or fallback when f is not a
// terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}
