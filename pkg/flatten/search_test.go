package flatten

import (
	"reflect"
	"testing"
)

func searchIDs(list []Node[item, string], query string) []string {
	return ids(Search(list, itemAcc.Text, query))
}

func TestSearchIdentityOnEmptyQuery(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	for _, query := range []string{"", "   ", "\t \n"} {
		got := Search(list, itemAcc.Text, query)
		if !reflect.DeepEqual(got, list) {
			t.Errorf("Search(%q) filtered the list: got %v", query, ids(got))
		}
	}
}

func TestSearchAncestorChain(t *testing.T) {
	// Only the deepest node matches; the whole chain above it comes along,
	// root first.
	chain := []item{
		{id: "pear", name: "Pear", kids: []item{
			{id: "banana", name: "Banana", kids: []item{
				{id: "pineapple", name: "Pineapple"},
			}},
		}},
	}
	list := Tree(chain, itemAcc)

	want := []string{"pear", "banana", "pineapple"}
	if got := searchIDs(list, "Pine"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(Pine) = %v, want %v", got, want)
	}
	// Matching is case-insensitive on both sides.
	if got := searchIDs(list, "PINE"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(PINE) = %v, want %v", got, want)
	}
}

func TestSearchRootMatchPullsSubtree(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	// "fru" matches only the Fruits root; its entire subtree follows in
	// preorder, and the unrelated veg root stays out.
	want := []string{"fruits", "pear", "banana", "pineapple", "citrus", "orange", "lime", "lemon", "blood"}
	if got := searchIDs(list, "fru"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(fru) = %v, want %v", got, want)
	}
}

func TestSearchAllQueryWordsMustMatch(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	// Both words prefix-match words of "Blood Orange"; the plain Orange
	// node fails the "blo" word and is excluded.
	want := []string{"fruits", "citrus", "blood"}
	if got := searchIDs(list, "blo or"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(blo or) = %v, want %v", got, want)
	}

	if got := searchIDs(list, "blo pe"); len(got) != 0 {
		t.Errorf("Search(blo pe) = %v, want no matches", got)
	}
}

func TestSearchSiblingMatchesShareParent(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	// Lime and Lemon are siblings; the second match must not repeat the
	// citrus/fruits chain.
	want := []string{"fruits", "citrus", "lime", "lemon"}
	if got := searchIDs(list, "l"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(l) = %v, want %v", got, want)
	}
}

func TestSearchInterleavedMatchesReappendAncestors(t *testing.T) {
	// The ancestor walk dedupes against the last appended entry only. With
	// matches alternating between nesting levels the shared ancestor is
	// appended again each time the walk runs. Pinned on purpose: renderers
	// consume this positionally.
	kit := []item{
		{id: "kit", name: "Kit", kids: []item{
			{id: "saw-a", name: "Saw"},
			{id: "box", name: "Box", kids: []item{
				{id: "saw-b", name: "Saw blade"},
			}},
			{id: "saw-c", name: "Sawhorse"},
		}},
	}
	list := Tree(kit, itemAcc)

	want := []string{"kit", "saw-a", "kit", "box", "saw-b", "kit", "saw-c"}
	if got := searchIDs(list, "saw"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(saw) = %v, want %v", got, want)
	}
}

func TestSearchSkipsEntriesAlreadyInResult(t *testing.T) {
	// Toolbox is pulled in by the root's subtree expansion before the scan
	// reaches it; its own match must not append it a second time.
	tools := []item{
		{id: "tools", name: "Tools", kids: []item{
			{id: "toolbox", name: "Toolbox"},
		}},
	}
	list := Tree(tools, itemAcc)

	want := []string{"tools", "toolbox"}
	if got := searchIDs(list, "tool"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(tool) = %v, want %v", got, want)
	}
}

func TestSearchUnsearchableEntriesStayReachableAsContext(t *testing.T) {
	// Entries with empty text never match themselves but still ride along
	// in subtree and ancestor expansion.
	group := []item{
		{id: "group", name: "Garden", kids: []item{
			{id: "unnamed", name: "", kids: []item{
				{id: "rose", name: "Rose"},
			}},
		}},
	}
	list := Tree(group, itemAcc)

	if got := searchIDs(list, "gar"); !reflect.DeepEqual(got, []string{"group", "unnamed", "rose"}) {
		t.Errorf("Search(gar) = %v, want subtree with unnamed entry", got)
	}
	if got := searchIDs(list, "ros"); !reflect.DeepEqual(got, []string{"group", "unnamed", "rose"}) {
		t.Errorf("Search(ros) = %v, want ancestor chain with unnamed entry", got)
	}
}

func TestSearchNoMatches(t *testing.T) {
	list := Tree(orchard(), itemAcc)
	if got := searchIDs(list, "zzz"); len(got) != 0 {
		t.Errorf("Search(zzz) = %v, want empty", got)
	}
}
