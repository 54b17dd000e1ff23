package flatten

import (
	"reflect"
	"strings"
	"testing"
)

type item struct {
	id   string
	name string
	kids []item
}

var itemAcc = Accessor[item, string]{
	ID:       func(it item) string { return it.id },
	Children: func(it item) []item { return it.kids },
	Text:     func(it item) string { return it.name },
}

// orchard is the shared fixture: two roots, four levels on the deepest
// branch, one multi-word name.
func orchard() []item {
	return []item{
		{id: "fruits", name: "Fruits", kids: []item{
			{id: "pear", name: "Pear", kids: []item{
				{id: "banana", name: "Banana", kids: []item{
					{id: "pineapple", name: "Pineapple"},
				}},
			}},
			{id: "citrus", name: "Citrus", kids: []item{
				{id: "orange", name: "Orange"},
				{id: "lime", name: "Lime"},
				{id: "lemon", name: "Lemon"},
				{id: "blood", name: "Blood Orange"},
			}},
		}},
		{id: "veg", name: "Vegetables", kids: []item{
			{id: "carrot", name: "Carrot"},
		}},
	}
}

func ids[T any, ID comparable](list []Node[T, ID]) []ID {
	out := make([]ID, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestTreePreorder(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	want := []struct {
		id         string
		parentID   string
		hasParent  bool
		depth      int
		childCount int
	}{
		{"fruits", "", false, 0, 2},
		{"pear", "fruits", true, 1, 1},
		{"banana", "pear", true, 2, 1},
		{"pineapple", "banana", true, 3, 0},
		{"citrus", "fruits", true, 1, 4},
		{"orange", "citrus", true, 2, 0},
		{"lime", "citrus", true, 2, 0},
		{"lemon", "citrus", true, 2, 0},
		{"blood", "citrus", true, 2, 0},
		{"veg", "", false, 0, 1},
		{"carrot", "veg", true, 1, 0},
	}

	if len(list) != len(want) {
		t.Fatalf("flattened %d nodes, want %d: %v", len(list), len(want), ids(list))
	}
	for i, w := range want {
		n := list[i]
		if n.ID != w.id || n.ParentID != w.parentID || n.HasParent != w.hasParent ||
			n.Depth != w.depth || n.ChildCount != w.childCount {
			t.Errorf("node %d = {id:%s parent:%s hasParent:%v depth:%d children:%d}, want %+v",
				i, n.ID, n.ParentID, n.HasParent, n.Depth, n.ChildCount, w)
		}
	}
}

func TestTreeParentsPrecedeChildren(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	pos := make(map[string]int, len(list))
	for i, n := range list {
		pos[n.ID] = i
	}
	for _, n := range list {
		if !n.HasParent {
			continue
		}
		pi, ok := pos[n.ParentID]
		if !ok {
			t.Fatalf("node %s points at parent %s which is not in the list", n.ID, n.ParentID)
		}
		if pi >= pos[n.ID] {
			t.Errorf("parent %s (index %d) does not precede child %s (index %d)",
				n.ParentID, pi, n.ID, pos[n.ID])
		}
	}
}

func TestTreeNumericIDs(t *testing.T) {
	type rec struct {
		id   int
		name string
		kids []rec
	}
	acc := Accessor[rec, int]{
		ID:       func(r rec) int { return r.id },
		Children: func(r rec) []rec { return r.kids },
		Text:     func(r rec) string { return r.name },
	}

	list := Tree([]rec{
		{id: 1, name: "Apple", kids: []rec{
			{id: 2, name: "Pear"},
			{id: 3, name: "Banana"},
		}},
	}, acc)

	if len(list) != 3 {
		t.Fatalf("flattened %d nodes, want 3", len(list))
	}
	root := list[0]
	if root.ID != 1 || root.HasParent || root.Depth != 0 || root.ChildCount != 2 {
		t.Errorf("root = %+v", root)
	}
	for i, id := range []int{2, 3} {
		n := list[i+1]
		if n.ID != id || n.ParentID != 1 || !n.HasParent || n.Depth != 1 || n.ChildCount != 0 {
			t.Errorf("child %d = %+v", id, n)
		}
		if n.Item.name == "" {
			t.Errorf("child %d lost its original fields", id)
		}
	}
}

func TestTreeEmptyInput(t *testing.T) {
	if got := Tree(nil, itemAcc); len(got) != 0 {
		t.Errorf("Tree(nil) = %v, want empty", ids(got))
	}
	if got := Tree([]item{}, itemAcc); len(got) != 0 {
		t.Errorf("Tree([]) = %v, want empty", ids(got))
	}
}

func TestTreeDoesNotMutateInput(t *testing.T) {
	input := orchard()
	Tree(input, itemAcc)
	if !reflect.DeepEqual(input, orchard()) {
		t.Error("flattening mutated the input hierarchy")
	}
}

func TestTreeKeepsItem(t *testing.T) {
	list := Tree(orchard(), itemAcc)
	for _, n := range list {
		if n.ID == "pineapple" {
			if n.Item.name != "Pineapple" {
				t.Errorf("Item.name = %q, want Pineapple", n.Item.name)
			}
			return
		}
	}
	t.Fatal("pineapple missing from flattened list")
}

func TestChildren(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	tests := []struct {
		parentID string
		want     []string
	}{
		{"citrus", []string{"orange", "lime", "lemon", "blood"}},
		{"fruits", []string{"pear", "citrus"}},
		{"pineapple", []string{}},
		{"missing", []string{}},
	}
	for _, tt := range tests {
		got := ids(Children(list, tt.parentID))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Children(%q) = %v, want %v", tt.parentID, got, tt.want)
		}
	}
}

func TestChildrenFilter(t *testing.T) {
	list := Tree(orchard(), itemAcc)

	leaves := Children(list, "fruits", func(n Node[item, string]) bool {
		return n.ChildCount == 0
	})
	if got := ids(leaves); len(got) != 0 {
		t.Errorf("no direct child of fruits is a leaf, got %v", got)
	}

	oranges := Children(list, "citrus",
		func(n Node[item, string]) bool { return n.Item.name != "" },
		func(n Node[item, string]) bool { return strings.Contains(n.Item.name, "Orange") },
	)
	if got, want := ids(oranges), []string{"orange", "blood"}; !reflect.DeepEqual(got, want) {
		t.Errorf("filtered children = %v, want %v", got, want)
	}
}

func TestRoots(t *testing.T) {
	list := Tree(orchard(), itemAcc)
	got := ids(Roots(list))
	if want := []string{"fruits", "veg"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Roots = %v, want %v", got, want)
	}
}
