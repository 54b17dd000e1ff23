package flatten

import "strings"

// Search filters a flattened list down to the entries matching query, with
// enough surrounding context to keep the hierarchy readable: a matching
// non-root entry drags its full ancestor chain in ahead of it, a matching
// root drags its entire subtree in behind it. text extracts the searchable
// value from an item; entries whose text is empty never match. An empty or
// whitespace-only query returns list itself, unfiltered and uncopied.
//
// The query is split into lowercase words. An entry matches when every
// query word is a case-insensitive prefix of at least one word of the
// entry's text.
//
// The ancestor walk is skipped when the last appended entry shares the
// matching entry's parent, so sibling matches do not repeat their parent.
// That check looks only at the last appended entry, never the whole result,
// which means interleaved matches under different parents can append an
// ancestor a second time. Callers that key rows by id should dedupe; the
// CLI and HTTP hosts render positionally and keep the raw shape.
func Search[T any, ID comparable](list []Node[T, ID], text func(T) string, query string) []Node[T, ID] {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return list
	}

	index := make(map[ID]int, len(list))
	for i, n := range list {
		index[n.ID] = i
	}

	var out []Node[T, ID]
	seen := make(map[ID]bool, len(list))

	push := func(n Node[T, ID]) {
		out = append(out, n)
		seen[n.ID] = true
	}

	// pushSubtree appends parentID's descendants in preorder, skipping
	// entries that already made it into the result.
	var pushSubtree func(parentID ID)
	pushSubtree = func(parentID ID) {
		for _, child := range list {
			if !child.HasParent || child.ParentID != parentID {
				continue
			}
			if !seen[child.ID] {
				push(child)
			}
			pushSubtree(child.ID)
		}
	}

	for _, n := range list {
		value := text(n.Item)
		if value == "" {
			continue
		}
		if seen[n.ID] {
			continue
		}
		if !matches(value, words) {
			continue
		}

		if !n.HasParent {
			push(n)
			pushSubtree(n.ID)
			continue
		}

		prev, ok := lastOf(out)
		if !ok || !prev.HasParent || prev.ParentID != n.ParentID {
			for _, ancestor := range ancestors(list, index, n) {
				push(ancestor)
			}
		}
		push(n)
	}
	return out
}

// ancestors returns n's ancestor chain ordered root first.
func ancestors[T any, ID comparable](list []Node[T, ID], index map[ID]int, n Node[T, ID]) []Node[T, ID] {
	var out []Node[T, ID]
	cur := n
	for cur.HasParent {
		i, ok := index[cur.ParentID]
		if !ok {
			break
		}
		cur = list[i]
		out = append(out, cur)
	}
	// Walked leaf to root; callers want root first.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

func lastOf[T any, ID comparable](list []Node[T, ID]) (Node[T, ID], bool) {
	if len(list) == 0 {
		var zero Node[T, ID]
		return zero, false
	}
	return list[len(list)-1], true
}

func matches(value string, queryWords []string) bool {
	valueWords := strings.Fields(strings.ToLower(value))
	for _, q := range queryWords {
		found := false
		for _, w := range valueWords {
			if strings.HasPrefix(w, q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
