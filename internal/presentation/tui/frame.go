package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/muesli/termenv"

	"github.com/aretw0/arbor/pkg/runner"
)

// Option configures the frame renderer.
type Option func(*frameRenderer)

// WithProfile overrides the detected color profile. Tests pass termenv.Ascii
// to get plain output.
func WithProfile(p termenv.Profile) Option {
	return func(fr *frameRenderer) { fr.profile = p }
}

// WithMarkdown enables a preview pane: when the focused entry carries a
// "body" field, render renders it under the list.
func WithMarkdown(render func(string) (string, error)) Option {
	return func(fr *frameRenderer) { fr.markdown = render }
}

type frameRenderer struct {
	profile  termenv.Profile
	markdown func(string) (string, error)
}

// NewFrameRenderer builds a styled runner.FrameRenderer: cursor marker and
// filter line in accent colors, child count badges dimmed, query matches
// underlined inside titles. The row geometry matches the plain text handler,
// so scripted sessions look the same with styling off.
func NewFrameRenderer(opts ...Option) runner.FrameRenderer {
	fr := &frameRenderer{profile: termenv.ColorProfile()}
	for _, opt := range opts {
		opt(fr)
	}
	return fr.render
}

func (fr *frameRenderer) render(frame runner.Frame) (string, error) {
	var sb strings.Builder

	if frame.Query != "" {
		sb.WriteString(fr.dim("filter: ") + fr.accent(frame.Query) + "\n")
	}

	if len(frame.Entries) == 0 {
		sb.WriteString(fr.dim("(no entries)") + "\n")
	}

	for i, entry := range frame.Entries {
		marker := "  "
		if i == frame.Cursor {
			marker = fr.accent("> ")
		}

		title := entry.Title
		if title == "" {
			title = entry.ID
		}

		line := marker + strings.Repeat("  ", entry.Depth) + fr.highlight(title, frame.Query)
		if entry.ChildCount > 0 {
			line += fr.dim(fmt.Sprintf(" [%d]", entry.ChildCount))
		}
		sb.WriteString(line + "\n")
	}

	if fr.markdown != nil {
		if body := focusedBody(frame); body != "" {
			out, err := fr.markdown(body)
			if err != nil {
				return "", fmt.Errorf("markdown render failed: %w", err)
			}
			sb.WriteString("\n" + strings.TrimRight(out, "\n") + "\n")
		}
	}

	if frame.Status != "" {
		sb.WriteString(fr.dim(frame.Status) + "\n")
	}

	return sb.String(), nil
}

// focusedBody returns the markdown body of the cursor entry, if any.
func focusedBody(frame runner.Frame) string {
	if frame.Cursor < 0 || frame.Cursor >= len(frame.Entries) {
		return ""
	}
	body, _ := frame.Entries[frame.Cursor].Fields["body"].(string)
	return body
}

// highlight underlines the prefix of every title word a query word matches,
// mirroring how the search filter compares.
func (fr *frameRenderer) highlight(title, query string) string {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return title
	}

	var sb strings.Builder
	for _, seg := range splitWords(title) {
		n := 0
		if !seg.space {
			n = matchLen(seg.text, words)
		}
		if n == 0 {
			sb.WriteString(seg.text)
			continue
		}
		rs := []rune(seg.text)
		sb.WriteString(fr.match(string(rs[:n])))
		sb.WriteString(string(rs[n:]))
	}
	return sb.String()
}

type segment struct {
	text  string
	space bool
}

// splitWords cuts s into alternating word and whitespace runs, preserving
// the original spacing.
func splitWords(s string) []segment {
	var segs []segment
	var cur []rune
	curSpace := false

	flush := func() {
		if len(cur) > 0 {
			segs = append(segs, segment{text: string(cur), space: curSpace})
			cur = cur[:0]
		}
	}

	for _, r := range s {
		isSpace := unicode.IsSpace(r)
		if len(cur) > 0 && isSpace != curSpace {
			flush()
		}
		curSpace = isSpace
		cur = append(cur, r)
	}
	flush()
	return segs
}

// matchLen returns the rune count of the longest query word that
// case-insensitively prefixes word, 0 when none does.
func matchLen(word string, queryWords []string) int {
	lower := strings.ToLower(word)
	best := 0
	for _, q := range queryWords {
		if strings.HasPrefix(lower, q) {
			if n := len([]rune(q)); n > best {
				best = n
			}
		}
	}
	return best
}

func (fr *frameRenderer) accent(s string) string {
	return fr.profile.String(s).Foreground(fr.profile.Color("#818cf8")).Bold().String()
}

func (fr *frameRenderer) dim(s string) string {
	return fr.profile.String(s).Faint().String()
}

func (fr *frameRenderer) match(s string) string {
	return fr.profile.String(s).Foreground(fr.profile.Color("#e879f9")).Underline().String()
}
