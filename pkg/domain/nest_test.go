package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNestEntriesRoundTrip(t *testing.T) {
	items := []Item{
		{
			ID:    "fruits",
			Title: "Fruits",
			Kind:  "section",
			Items: []Item{
				{ID: "pear", Title: "Pear", Fields: map[string]any{"color": "green"}},
				{
					ID:    "citrus",
					Title: "Citrus",
					Items: []Item{
						{ID: "lime", Title: "Lime"},
					},
				},
			},
		},
		{ID: "veg", Title: "Vegetables"},
	}

	flat := FlattenItems(items)
	rebuilt, err := NestEntries(flat)
	require.NoError(t, err)

	// The rebuilt document flattens back to the identical projection.
	assert.Equal(t, flat, FlattenItems(rebuilt))
	assert.Equal(t, items, rebuilt)
}

func TestNestEntriesImplicitParentFlag(t *testing.T) {
	// Hand-written flat files may set parent_id without has_parent.
	entries := []Entry{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B", ParentID: "a"},
	}

	items, err := NestEntries(entries)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].Items, 1)
	assert.Equal(t, "b", items[0].Items[0].ID)
}

func TestNestEntriesErrors(t *testing.T) {
	t.Run("Unknown Parent", func(t *testing.T) {
		_, err := NestEntries([]Entry{
			{ID: "a"},
			{ID: "b", ParentID: "missing", HasParent: true},
		})
		assert.ErrorIs(t, err, ErrUnknownParent)
	})

	t.Run("Child Before Parent", func(t *testing.T) {
		_, err := NestEntries([]Entry{
			{ID: "b", ParentID: "a", HasParent: true},
			{ID: "a"},
		})
		assert.ErrorIs(t, err, ErrUnknownParent)
	})

	t.Run("Duplicate ID", func(t *testing.T) {
		_, err := NestEntries([]Entry{
			{ID: "a"},
			{ID: "a"},
		})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("Empty ID", func(t *testing.T) {
		_, err := NestEntries([]Entry{
			{Title: "nameless"},
		})
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("Empty List", func(t *testing.T) {
		items, err := NestEntries(nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
