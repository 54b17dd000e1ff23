package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	source      io.Reader
	interactive bool // true when reading a terminal, where EOF should not end the pump
	Reader      *bufio.Reader
	Writer      io.Writer
	Renderer    FrameRenderer

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the frame renderer.
func WithTextHandlerRenderer(renderer FrameRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		source: r,
		Writer: w,
	}

	// Terminal reads can be interrupted by signals without the stream being
	// finished, so EOF handling differs between a terminal and a pipe.
	h.interactive = isTerminalReader(r)
	h.Reader = bufio.NewReader(h.source)

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			h.inputChan <- inputResult{text: text, err: nil}
		}

		if err != nil {
			if err == io.EOF {
				if h.interactive {
					// On a terminal, EOF usually means a signal interrupted
					// the read while the stream itself stays valid. Pass the
					// EOF so the consumer knows this read failed, but keep
					// the channel open for reads after signal handling.
					h.inputChan <- inputResult{text: "", err: io.EOF}
					// Prevent busy loop if EOFs are generated rapidly (e.g. holding Ctrl+C)
					time.Sleep(50 * time.Millisecond)
					continue
				}
				close(h.inputChan)
				return
			}
			// Send non-EOF errors
			h.inputChan <- inputResult{text: "", err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func (h *TextHandler) Render(ctx context.Context, frame Frame) error {
	text := plainFrame(frame)
	if h.Renderer != nil {
		rendered, err := h.Renderer(frame)
		if err == nil {
			text = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimRight(text, "\n"))
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	// Ensure the pump is running
	h.initPump()

	for {
		// Only show prompt if context is not yet done
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			// Important: don't print anything here, just exit silently
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			text := strings.TrimSpace(res.text)

			// Sanitize Input (Limit + Control Chars)
			clean, err := SanitizeInput(text)
			if err != nil {
				// User Feedback: Prompt retry
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "\n[System] %s\n", msg)
	return err
}

// plainFrame renders a frame without any styling: a status header, then one
// row per entry with depth indentation, a cursor marker, and a child badge.
func plainFrame(f Frame) string {
	var b strings.Builder

	if f.Query != "" {
		fmt.Fprintf(&b, "filter: %s\n", f.Query)
	}
	if f.Status != "" {
		fmt.Fprintf(&b, "%s\n", f.Status)
	}

	for i, e := range f.Entries {
		marker := "  "
		if i == f.Cursor {
			marker = "> "
		}
		title := e.Title
		if title == "" {
			title = e.ID
		}
		badge := ""
		if e.ChildCount > 0 {
			badge = fmt.Sprintf(" [%d]", e.ChildCount)
		}
		fmt.Fprintf(&b, "%s%s%s%s\n", marker, strings.Repeat("  ", e.Depth), title, badge)
	}

	if len(f.Entries) == 0 {
		b.WriteString("(no entries)\n")
	}

	return b.String()
}

// isTerminalReader reports whether the reader is an interactive terminal.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
