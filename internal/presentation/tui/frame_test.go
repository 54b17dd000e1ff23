package tui

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/runner"
)

func plainFrame() runner.Frame {
	return runner.Frame{
		Entries: []domain.Entry{
			{ID: "fruits", Title: "Fruits", Depth: 0, ChildCount: 2},
			{ID: "pear", Title: "Pear", ParentID: "fruits", HasParent: true, Depth: 1},
		},
		Cursor: 1,
		Total:  5,
		Status: "rows 1-2 of 5",
	}
}

func TestFrameRendererPlain(t *testing.T) {
	render := NewFrameRenderer(WithProfile(termenv.Ascii))

	out, err := render(plainFrame())
	require.NoError(t, err)

	want := "  Fruits [2]\n" +
		">   Pear\n" +
		"rows 1-2 of 5\n"
	assert.Equal(t, want, out)
}

func TestFrameRendererFilterLine(t *testing.T) {
	render := NewFrameRenderer(WithProfile(termenv.Ascii))
	frame := plainFrame()
	frame.Query = "pe"

	out, err := render(frame)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "filter: pe\n"), out)
}

func TestFrameRendererEmpty(t *testing.T) {
	render := NewFrameRenderer(WithProfile(termenv.Ascii))

	out, err := render(runner.Frame{Status: "empty outline"})
	require.NoError(t, err)
	assert.Equal(t, "(no entries)\nempty outline\n", out)
}

func TestFrameRendererPreview(t *testing.T) {
	render := NewFrameRenderer(
		WithProfile(termenv.Ascii),
		WithMarkdown(func(markdown string) (string, error) {
			return "[md] " + markdown, nil
		}),
	)

	frame := plainFrame()
	frame.Entries[1].Fields = map[string]any{"body": "# Pears"}

	out, err := render(frame)
	require.NoError(t, err)
	assert.Contains(t, out, "\n[md] # Pears\n")
}

func TestFrameRendererPreviewOnlyForCursor(t *testing.T) {
	render := NewFrameRenderer(
		WithProfile(termenv.Ascii),
		WithMarkdown(func(markdown string) (string, error) {
			return markdown, nil
		}),
	)

	frame := plainFrame()
	frame.Entries[0].Fields = map[string]any{"body": "# Fruits"}

	out, err := render(frame)
	require.NoError(t, err)
	assert.NotContains(t, out, "# Fruits", "only the focused entry gets a preview")
}

func TestHighlightStylesMatchedPrefixes(t *testing.T) {
	fr := &frameRenderer{profile: termenv.ANSI}

	out := fr.highlight("Lime Tree", "li tr")

	assert.Contains(t, out, "\x1b[", "matched prefixes should carry escape codes")
	assert.Contains(t, out, "me", "the unmatched tail stays plain")
	assert.Contains(t, out, "ee")
}

func TestHighlightAsciiIsIdentity(t *testing.T) {
	fr := &frameRenderer{profile: termenv.Ascii}

	assert.Equal(t, "Lime Tree", fr.highlight("Lime Tree", "li"))
	assert.Equal(t, "Lime Tree", fr.highlight("Lime Tree", ""))
}

func TestMatchLenPicksLongestWord(t *testing.T) {
	assert.Equal(t, 0, matchLen("Pear", []string{"li"}))
	assert.Equal(t, 2, matchLen("Lime", []string{"li"}))
	assert.Equal(t, 3, matchLen("Lime", []string{"li", "lim"}))
}
