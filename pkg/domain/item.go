package domain

import "github.com/aretw0/arbor/pkg/flatten"

// Kind constants label what an outline entry represents. The set is
// advisory: sources may carry any string, and an empty kind is valid.
// Presentation layers use these for shaping (graph export, row badges).
const (
	// KindSection groups other entries (a chapter, a directory).
	KindSection = "section"
	// KindPage is a readable leaf.
	KindPage = "page"
	// KindTask is an actionable leaf.
	KindTask = "task"
	// KindNote is an annotation attached to its parent.
	KindNote = "note"
)

// Item is one node of a nested outline document as loaded by a TreeSource.
// Fields collects every document key that is not one of the declared ones,
// so arbitrary front-matter survives the trip through a source untouched.
type Item struct {
	ID     string         `json:"id" yaml:"id" mapstructure:"id"`
	Title  string         `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Kind   string         `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:",remain"`
	Items  []Item         `json:"items,omitempty" yaml:"items,omitempty" mapstructure:"items"`
}

// Entry is the flat projection of an Item: the original record minus its
// children, plus the placement metadata renderers need. ParentID is empty
// and HasParent false on root entries.
type Entry struct {
	ID         string         `json:"id" mapstructure:"id"`
	ParentID   string         `json:"parent_id,omitempty" mapstructure:"parent_id"`
	HasParent  bool           `json:"has_parent,omitempty" mapstructure:"has_parent"`
	Depth      int            `json:"depth" mapstructure:"depth"`
	ChildCount int            `json:"child_count" mapstructure:"child_count"`
	Title      string         `json:"title,omitempty" mapstructure:"title"`
	Kind       string         `json:"kind,omitempty" mapstructure:"kind"`
	Fields     map[string]any `json:"fields,omitempty" mapstructure:"fields"`
}

// ItemAccessor adapts Item to the generic flatten functions.
func ItemAccessor() flatten.Accessor[Item, string] {
	return flatten.Accessor[Item, string]{
		ID:       func(it Item) string { return it.ID },
		Children: func(it Item) []Item { return it.Items },
		Text:     func(it Item) string { return it.Title },
	}
}

// EntryFromNode projects one flattened node onto the Entry shape.
func EntryFromNode(n flatten.Node[Item, string]) Entry {
	return Entry{
		ID:         n.ID,
		ParentID:   n.ParentID,
		HasParent:  n.HasParent,
		Depth:      n.Depth,
		ChildCount: n.ChildCount,
		Title:      n.Item.Title,
		Kind:       n.Item.Kind,
		Fields:     n.Item.Fields,
	}
}

// EntriesFromNodes projects a flattened node list onto entries.
func EntriesFromNodes(nodes []flatten.Node[Item, string]) []Entry {
	out := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, EntryFromNode(n))
	}
	return out
}

// FlattenItems flattens a nested document into preorder entries.
func FlattenItems(items []Item) []Entry {
	return EntriesFromNodes(flatten.Tree(items, ItemAccessor()))
}
