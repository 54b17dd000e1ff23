package flatten

// Accessor tells the package how to read the caller's node type. ID and
// Children are required by Tree; Text is only consulted by Search, where an
// empty string marks a node as unsearchable.
type Accessor[T any, ID comparable] struct {
	ID       func(T) ID
	Children func(T) []T
	Text     func(T) string
}

// Node is one entry of the flattened list: the original item plus the
// placement metadata a flat renderer needs. ParentID is only meaningful
// when HasParent is true; roots carry the zero ID and HasParent false.
type Node[T any, ID comparable] struct {
	Item       T
	ID         ID
	ParentID   ID
	HasParent  bool
	Depth      int
	ChildCount int
}

// Tree flattens a nested hierarchy into preorder: each node is emitted
// before any of its descendants, siblings keep their input order, and every
// non-root entry points at an earlier entry via ParentID. A nil Children
// result counts as zero children. A nil or empty items slice flattens to an
// empty list.
//
// The input is never mutated; Item keeps the original record as given,
// including its nested children.
func Tree[T any, ID comparable](items []T, acc Accessor[T, ID]) []Node[T, ID] {
	var out []Node[T, ID]

	var walk func(item T, parentID ID, hasParent bool, depth int)
	walk = func(item T, parentID ID, hasParent bool, depth int) {
		children := acc.Children(item)
		node := Node[T, ID]{
			Item:       item,
			ID:         acc.ID(item),
			ParentID:   parentID,
			HasParent:  hasParent,
			Depth:      depth,
			ChildCount: len(children),
		}
		out = append(out, node)
		for _, child := range children {
			walk(child, node.ID, true, depth+1)
		}
	}

	var root ID
	for _, item := range items {
		walk(item, root, false, 0)
	}
	return out
}

// Filter narrows Children to nodes it reports true for.
type Filter[T any, ID comparable] func(Node[T, ID]) bool

// Children returns the direct children of parentID as a subsequence of
// list, in list order, keeping only nodes every filter accepts. It never
// recurses into deeper descendants.
func Children[T any, ID comparable](list []Node[T, ID], parentID ID, filters ...Filter[T, ID]) []Node[T, ID] {
	var out []Node[T, ID]
next:
	for _, n := range list {
		if !n.HasParent || n.ParentID != parentID {
			continue
		}
		for _, keep := range filters {
			if !keep(n) {
				continue next
			}
		}
		out = append(out, n)
	}
	return out
}

// Roots returns the top-level entries of list, in list order.
func Roots[T any, ID comparable](list []Node[T, ID]) []Node[T, ID] {
	var out []Node[T, ID]
	for _, n := range list {
		if !n.HasParent {
			out = append(out, n)
		}
	}
	return out
}
