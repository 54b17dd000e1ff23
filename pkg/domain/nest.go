package domain

import "fmt"

// NestEntries rebuilds a nested document from a flat entry list, the
// inverse of FlattenItems. Entries must arrive in preorder: every parent
// before all of its children. Each entry contributes its ID, Title, Kind
// and Fields; Depth and ChildCount are derived values and are ignored
// here, the next flatten recomputes them.
//
// An entry counts as a child when HasParent is set or ParentID is
// non-empty, so hand-written flat files can omit the has_parent flag.
func NestEntries(entries []Entry) ([]Item, error) {
	type node struct {
		item     Item
		children []*node
	}

	roots := make([]*node, 0)
	byID := make(map[string]*node, len(entries))

	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w (title %q)", ErrEmptyID, e.Title)
		}
		if _, dup := byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
		}

		n := &node{item: Item{ID: e.ID, Title: e.Title, Kind: e.Kind, Fields: e.Fields}}
		byID[e.ID] = n

		if !e.HasParent && e.ParentID == "" {
			roots = append(roots, n)
			continue
		}

		parent, ok := byID[e.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: entry %q references %q", ErrUnknownParent, e.ID, e.ParentID)
		}
		parent.children = append(parent.children, n)
	}

	var materialize func(n *node) Item
	materialize = func(n *node) Item {
		item := n.item
		if len(n.children) > 0 {
			item.Items = make([]Item, 0, len(n.children))
			for _, c := range n.children {
				item.Items = append(item.Items, materialize(c))
			}
		}
		return item
	}

	items := make([]Item, 0, len(roots))
	for _, r := range roots {
		items = append(items, materialize(r))
	}
	return items, nil
}
